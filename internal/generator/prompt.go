package generator

import (
	"fmt"
	"strings"

	"github.com/JakeFAU/areapages/internal/content"
)

// SystemInstruction tells the model to answer with the JSON document only.
const SystemInstruction = "You write location pages for a UK specialist property finance broker. " +
	"Respond with a single valid JSON object and nothing else: no prose, no markdown."

// Prompt is the built request text for one task.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt embeds the location and service attributes plus the output contract.
func BuildPrompt(task content.Task) Prompt {
	loc, svc := task.Location, task.Service
	var b strings.Builder

	fmt.Fprintf(&b, "Write unique page content for %s in %s, %s.\n\n", svc.Name, loc.Town, loc.County)

	b.WriteString("Location:\n")
	fmt.Fprintf(&b, "- Town: %s\n", loc.Town)
	fmt.Fprintf(&b, "- County: %s\n", loc.County)
	if loc.Region != "" {
		fmt.Fprintf(&b, "- Region: %s\n", loc.Region)
	}
	if loc.Population > 0 {
		fmt.Fprintf(&b, "- Population: %s\n", groupThousands(loc.Population))
	}

	b.WriteString("\nService:\n")
	fmt.Fprintf(&b, "- Name: %s\n", svc.Name)
	fmt.Fprintf(&b, "- Description: %s\n", svc.Description)
	if svc.RateGuide != "" {
		fmt.Fprintf(&b, "- Typical rates: %s\n", svc.RateGuide)
	}
	if svc.LeverageGuide != "" {
		fmt.Fprintf(&b, "- Typical leverage: %s\n", svc.LeverageGuide)
	}
	if svc.TermGuide != "" {
		fmt.Fprintf(&b, "- Typical term: %s\n", svc.TermGuide)
	}

	fmt.Fprintf(&b, `
Return JSON with exactly these fields:
{
  "narrative": "3-4 paragraphs about %[1]s in %[2]s: local market, typical projects, how lenders view the area",
  "faqs": [{"question": "...", "answer": "..."}],
  "deal_example": {
    "title": "short title of an illustrative %[2]s deal",
    "description": "2-3 sentences describing the deal",
    "loan_amount": "1,250,000",
    "property_value": "2,000,000",
    "leverage": "62.5%% LTV",
    "product": "%[1]s"
  },
  "rates": {
    "rate_from": "...",
    "rate_to": "...",
    "max_leverage": "...",
    "term": "...",
    "fee": "..."
  },
  "seo_title": "under 60 characters, includes %[1]s and %[2]s",
  "seo_description": "under 155 characters"
}

Rules:
- "faqs" must contain exactly %[3]d question/answer pairs specific to %[2]s.
- "loan_amount" and "property_value" are plain numbers with comma thousands separators: no currency symbols, no "k" or "m" suffixes, no decimals.
- Every field must be present and non-empty.
- Do not invent named lenders, named developments or named people.
`, svc.Name, loc.Town, content.TargetFAQs)

	return Prompt{System: SystemInstruction, User: b.String()}
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if v, ok := content.NormalizeAmount(s); ok {
		return v
	}
	return s
}
