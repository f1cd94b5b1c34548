package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// TargetFAQs is the number of FAQ pairs each record is generated with.
const TargetFAQs = 5

// ErrIncompleteRecord marks a record missing a required field after repair.
var ErrIncompleteRecord = errors.New("incomplete content record")

var (
	groupedAmount = regexp.MustCompile(`^[0-9]{1,3}(,[0-9]{3})*$`)
	rawAmount     = regexp.MustCompile(`^[0-9][0-9,]*(\.[0-9]+)?$`)
)

// NormalizeAmount strips currency symbols and whitespace from a monetary string and
// regroups the integer part with thousands commas. It reports false when no plain amount
// can be recovered (for example "1.2m" or "TBC").
func NormalizeAmount(s string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '£', '$', '€', ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, s)
	if !rawAmount.MatchString(cleaned) {
		return s, false
	}
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		cleaned = cleaned[:i]
	}
	digits := strings.TrimLeft(strings.ReplaceAll(cleaned, ",", ""), "0")
	if digits == "" {
		digits = "0"
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String(), true
}

// Repair normalizes a freshly generated record in place: it trims every field, drops blank
// FAQ pairs, caps the FAQ list at TargetFAQs, and normalizes monetary strings.
func Repair(r *Record) {
	r.Narrative = strings.TrimSpace(r.Narrative)
	r.SEOTitle = strings.TrimSpace(r.SEOTitle)
	r.SEODescription = strings.TrimSpace(r.SEODescription)

	faqs := r.FAQs[:0]
	for _, f := range r.FAQs {
		f.Question = strings.TrimSpace(f.Question)
		f.Answer = strings.TrimSpace(f.Answer)
		if f.Question == "" || f.Answer == "" {
			continue
		}
		faqs = append(faqs, f)
	}
	if len(faqs) > TargetFAQs {
		faqs = faqs[:TargetFAQs]
	}
	r.FAQs = faqs

	if d := r.DealExample; d != nil {
		d.Title = strings.TrimSpace(d.Title)
		d.Description = strings.TrimSpace(d.Description)
		d.Leverage = strings.TrimSpace(d.Leverage)
		d.Product = strings.TrimSpace(d.Product)
		if v, ok := NormalizeAmount(d.LoanAmount); ok {
			d.LoanAmount = v
		}
		if v, ok := NormalizeAmount(d.PropertyValue); ok {
			d.PropertyValue = v
		}
	}
	if rt := r.Rates; rt != nil {
		rt.RateFrom = strings.TrimSpace(rt.RateFrom)
		rt.RateTo = strings.TrimSpace(rt.RateTo)
		rt.MaxLeverage = strings.TrimSpace(rt.MaxLeverage)
		rt.Term = strings.TrimSpace(rt.Term)
		rt.Fee = strings.TrimSpace(rt.Fee)
	}
}

// Validate checks the generated fields of a record. It does not look at Key, ID, Model or
// GeneratedAt, which are stamped after generation. A short FAQ list is not an error; callers
// compare len(FAQs) with TargetFAQs to decide whether to warn.
func Validate(r Record) error {
	var missing []string
	need := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	need("narrative", r.Narrative)
	need("seo_title", r.SEOTitle)
	need("seo_description", r.SEODescription)
	if len(r.FAQs) == 0 {
		missing = append(missing, "faqs")
	}
	for i, f := range r.FAQs {
		need(fmt.Sprintf("faqs[%d].question", i), f.Question)
		need(fmt.Sprintf("faqs[%d].answer", i), f.Answer)
	}

	if d := r.DealExample; d == nil {
		missing = append(missing, "deal_example")
	} else {
		need("deal_example.title", d.Title)
		need("deal_example.description", d.Description)
		need("deal_example.leverage", d.Leverage)
		need("deal_example.product", d.Product)
		if !groupedAmount.MatchString(d.LoanAmount) {
			missing = append(missing, "deal_example.loan_amount")
		}
		if !groupedAmount.MatchString(d.PropertyValue) {
			missing = append(missing, "deal_example.property_value")
		}
	}

	if rt := r.Rates; rt == nil {
		missing = append(missing, "rates")
	} else {
		need("rates.rate_from", rt.RateFrom)
		need("rates.rate_to", rt.RateTo)
		need("rates.max_leverage", rt.MaxLeverage)
		need("rates.term", rt.Term)
		need("rates.fee", rt.Fee)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteRecord, strings.Join(missing, ", "))
	}
	return nil
}
