package generator

import (
	"context"
	"sync"

	"github.com/JakeFAU/areapages/internal/content"
)

const validPayload = `{
  "narrative": "Guildford is a busy Surrey market for small schemes.",
  "faqs": [
    {"question": "How fast?", "answer": "Two to three weeks."},
    {"question": "How much?", "answer": "Up to 70% LTGDV."},
    {"question": "First-time developers?", "answer": "Yes, with an experienced team."},
    {"question": "Planning needed?", "answer": "Usually implemented planning."},
    {"question": "Fees?", "answer": "Arrangement fee around 2%."}
  ],
  "deal_example": {
    "title": "Four townhouses near the station",
    "description": "Ground-up build funded at 65% LTGDV.",
    "loan_amount": "£1,250,000",
    "property_value": "2400000",
    "leverage": "65% LTGDV",
    "product": "Development Finance"
  },
  "rates": {
    "rate_from": "0.55%",
    "rate_to": "1.1%",
    "max_leverage": "70% LTGDV",
    "term": "6-24 months",
    "fee": "2%"
  },
  "seo_title": "Development Finance Guildford",
  "seo_description": "Development finance for Guildford schemes of every size."
}`

var testTask = content.Task{
	Location: content.Location{
		CountyKey:  "surrey",
		County:     "Surrey",
		TownKey:    "guildford",
		Town:       "Guildford",
		Region:     content.RegionSouthEast,
		Population: 77057,
	},
	Service: content.Service{
		Key:           "development-finance",
		Name:          "Development Finance",
		Description:   "Staged funding for ground-up schemes.",
		RateGuide:     "0.55% to 1.1% per month",
		LeverageGuide: "up to 70% LTGDV",
		TermGuide:     "6 to 24 months",
	},
}

type reply struct {
	text string
	err  error
}

// scriptedCompleter returns replies in order, repeating the last one once exhausted.
type scriptedCompleter struct {
	mu       sync.Mutex
	replies  []reply
	requests []Request
	deadline []bool
}

func (s *scriptedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	s.deadline = append(s.deadline, hasDeadline)
	s.requests = append(s.requests, req)
	i := len(s.requests) - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	r := s.replies[i]
	return r.text, r.err
}

func (s *scriptedCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
