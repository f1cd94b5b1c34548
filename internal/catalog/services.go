// Package catalog holds the reference data the generation pipeline works over: the static
// finance-product catalog and the location list read from a YAML file.
package catalog

import "github.com/JakeFAU/areapages/internal/content"

var services = []content.Service{
	{
		Key:           "development-finance",
		Name:          "Development Finance",
		Description:   "Staged funding for ground-up residential and mixed-use schemes, released against build milestones.",
		RateGuide:     "0.55% to 1.1% per month",
		LeverageGuide: "up to 70% LTGDV",
		TermGuide:     "6 to 24 months",
	},
	{
		Key:           "bridging-loans",
		Name:          "Bridging Loans",
		Description:   "Short-term secured lending to complete a purchase quickly or bridge a gap before refinance or sale.",
		RateGuide:     "0.45% to 0.95% per month",
		LeverageGuide: "up to 75% LTV",
		TermGuide:     "1 to 18 months",
	},
	{
		Key:           "refurbishment-finance",
		Name:          "Refurbishment Finance",
		Description:   "Light and heavy refurbishment funding, including conversions that need planning or building regulations sign-off.",
		RateGuide:     "0.55% to 1.0% per month",
		LeverageGuide: "up to 75% LTV and 100% of works",
		TermGuide:     "6 to 18 months",
	},
	{
		Key:           "commercial-mortgages",
		Name:          "Commercial Mortgages",
		Description:   "Long-term lending against offices, retail, industrial units and mixed-use buildings, owner-occupied or let.",
		RateGuide:     "5.5% to 8.5% per annum",
		LeverageGuide: "up to 70% LTV",
		TermGuide:     "3 to 25 years",
	},
	{
		Key:           "auction-finance",
		Name:          "Auction Finance",
		Description:   "Fast bridging arranged to meet the 28-day completion deadline that follows the fall of the hammer.",
		RateGuide:     "0.55% to 0.99% per month",
		LeverageGuide: "up to 75% LTV",
		TermGuide:     "3 to 12 months",
	},
	{
		Key:           "buy-to-let-mortgages",
		Name:          "Buy-to-Let Mortgages",
		Description:   "Term lending for single lets, HMOs and multi-unit freehold blocks held personally or in a limited company.",
		RateGuide:     "4.5% to 7.0% per annum",
		LeverageGuide: "up to 75% LTV",
		TermGuide:     "2 to 30 years",
	},
}

// Services returns a copy of the service catalog in display order.
func Services() []content.Service {
	return append([]content.Service(nil), services...)
}

// ServiceByKey looks up a catalog entry.
func ServiceByKey(key string) (content.Service, bool) {
	for _, s := range services {
		if s.Key == key {
			return s, true
		}
	}
	return content.Service{}, false
}
