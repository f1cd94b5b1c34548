package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JakeFAU/areapages/internal/content"
)

// payload mirrors the JSON document requested in the prompt. Identity and provenance
// fields are stamped later and are deliberately absent.
type payload struct {
	Narrative      string               `json:"narrative"`
	FAQs           []content.FAQ        `json:"faqs"`
	DealExample    *content.DealExample `json:"deal_example"`
	Rates          *content.Rates       `json:"rates"`
	SEOTitle       string               `json:"seo_title"`
	SEODescription string               `json:"seo_description"`
}

// StripFence removes a leading ``` or ```json token and a trailing ``` token, then trims.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseRecord decodes the (possibly fenced) model output. Any failure wraps ErrMalformedResponse.
func ParseRecord(raw string) (content.Record, error) {
	body := StripFence(raw)
	if body == "" {
		return content.Record{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return content.Record{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return content.Record{
		Narrative:      p.Narrative,
		FAQs:           p.FAQs,
		DealExample:    p.DealExample,
		Rates:          p.Rates,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
	}, nil
}
