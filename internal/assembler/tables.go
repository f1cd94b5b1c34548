package assembler

import "github.com/JakeFAU/areapages/internal/content"

// DefaultTables returns the built-in variant tables. Appending a variant to any list
// reshuffles which pages render which variant; add new lists instead of growing old ones.
func DefaultTables() Tables {
	return Tables{
		Commentary: map[string][][]string{
			"development-finance": {
				{
					"Development lenders active around {town} are pricing schemes on build cost certainty first and GDV second. A fixed-price contract and a realistic contingency do more for terms than an optimistic exit valuation.",
					"Most {service} facilities here release funds monthly against a monitoring surveyor's report, so a clean drawdown schedule keeps interest roll-up predictable.",
				},
				{
					"In {town}, smaller schemes of two to ten units remain the sweet spot for specialist development lenders, with appetite strongest where planning is implemented and the site is cleared.",
					"Experienced developers can typically secure stretched senior debt; first-timers should expect lenders to look harder at the professional team.",
				},
				{
					"Demand for new-build stock across {county} has held up better than the wider market, which keeps {service} lenders comfortable with exit assumptions on well-located schemes.",
					"Lenders will still stress-test sales values against local comparables, so evidence from the last twelve months matters.",
				},
				{
					"Funding a scheme in {town} usually starts with land: many lenders will advance against the site value on day one and then fund up to the full build cost in stages.",
					"Arrangement and exit fees vary widely between lenders, so comparing total cost of funds matters more than the headline monthly rate.",
				},
			},
			"bridging-loans": {
				{
					"Bridging in {town} is most often used to secure a purchase before a sale completes or to buy a property that is not yet mortgageable.",
					"Because interest is usually retained or rolled up, the headline monthly rate tells only part of the story; the exit route drives the lender's decision.",
				},
				{
					"Speed is the reason most {town} borrowers choose bridging finance, and valuations are often the longest step. Desktop or drive-by valuations can shorten that where the loan size allows.",
				},
				{
					"{service} lenders covering {county} will lend against most property types, including land with planning and semi-commercial buildings, provided the exit is credible.",
					"Regulated bridging is available where the borrower or a family member will live in the property.",
				},
				{
					"A bridge is only as good as its exit. In {town} that exit is most often a sale or a refinance onto a term mortgage once works or a lease are complete.",
				},
			},
			"refurbishment-finance": {
				{
					"Much of the housing stock around {town} predates modern standards, which makes refurbishment finance a common route to adding value through kitchens, layouts and energy upgrades.",
					"Light refurbishment loans avoid structural work; heavy refurbishment covers conversions and changes of use.",
				},
				{
					"Lenders active in {county} will often fund the full cost of works alongside the purchase, releasing the works element in arrears as each stage is signed off.",
				},
				{
					"Refurbishment projects in {town} that end in a refinance rather than a sale should be planned around the post-works valuation the term lender will rely on.",
					"A clear schedule of works with a contractor's quote is the single most useful document in an application.",
				},
				{
					"Converting a single dwelling into flats or an HMO is a common {service} use case around {town}, subject to planning and local licensing rules.",
				},
			},
			"commercial-mortgages": {
				{
					"Commercial lenders assessing property in {town} focus on lease length, tenant covenant and rental cover rather than the bricks alone.",
					"Owner-occupiers are underwritten on trading accounts, so two to three years of figures are usually required.",
				},
				{
					"Mixed-use parades with shops below and flats above are common across {county} and are well served by both high-street and specialist {service} lenders.",
				},
				{
					"Interest-only terms are widely available for investors in {town}, while owner-occupied loans tend to amortise over fifteen to twenty-five years.",
					"Fixed rates protect cash flow but often carry early repayment charges, which matters if a sale is likely.",
				},
				{
					"Industrial and logistics units around {town} continue to attract lender appetite thanks to strong occupier demand and low vacancy.",
				},
			},
			"auction-finance": {
				{
					"Buying at auction in {town} commits you to complete within a fixed period, typically 28 days, so funding should be agreed in principle before bidding.",
					"Lenders can often review the legal pack in advance and issue terms on the lot you intend to bid for.",
				},
				{
					"Auction lots in {county} often need work, which is why many buyers pair {service} with a refurbishment facility and refinance once the property is mortgageable.",
				},
				{
					"The deposit is due on the day, so auction finance in {town} is about the balance: lenders will look at the purchase price, the valuation and your plan for the property.",
				},
				{
					"Unmortgageable lots, such as properties without a working kitchen or with short leases, are common in {town} auction rooms and are exactly where bridging-style auction finance earns its keep.",
				},
			},
			"buy-to-let-mortgages": {
				{
					"Rental demand in {town} supports a range of landlord strategies, from single lets for families to HMOs near transport links.",
					"Lenders assess affordability on rental cover, typically 125% to 145% of the stressed mortgage payment.",
				},
				{
					"Many landlords in {county} now buy through limited companies, and specialist {service} lenders price these loans close to personal borrowing.",
				},
				{
					"Portfolio landlords with four or more mortgaged properties face additional underwriting, including a business plan and a full schedule of their holdings.",
					"Lenders covering {town} will also look at EPC ratings as minimum standards tighten.",
				},
				{
					"Refinancing after a refurbishment is one of the most common reasons {town} investors come to the buy-to-let market, locking in a long-term rate once the value has been added.",
				},
			},
		},
		Regional: map[content.Region][]string{
			content.RegionLondon: {
				"London's property market rewards careful underwriting: values are high, margins can be thin, and lenders pay close attention to build costs and sales evidence borough by borough.",
				"Across the capital, constrained land supply keeps demand for well-specified homes steady, while lenders remain selective on large schemes.",
				"Transport links drive value in London more than anywhere else in the country, and lenders know it: proximity to Underground and Overground stations shapes valuations.",
			},
			content.RegionSouthEast: {
				"The South East combines commuter demand with tight planning, which supports values for new and refurbished homes within reach of London.",
				"Across the South East, lenders see a deep pool of buyers and a steady stream of small and mid-sized schemes, keeping competition for good deals healthy.",
				"Infrastructure around the M25 and mainline rail routes continues to underpin property values throughout the South East.",
			},
			content.RegionSouthWest: {
				"The South West blends strong city markets with coastal and rural demand, and lenders differentiate sharply between the two.",
				"Lifestyle moves and remote working have lifted demand across the South West, particularly for family homes with outside space.",
			},
			content.RegionEastOfEngland: {
				"The East of England benefits from the Cambridge and London economies, with commuter towns seeing steady appetite from both buyers and lenders.",
				"Growth corridors across the East of England continue to bring forward new housing allocations, which keeps development lenders active in the region.",
			},
			content.RegionMidlands: {
				"The Midlands offers higher yields than the South with improving capital growth, making it a favoured region for investors and developers alike.",
				"Regeneration across the Midlands has brought new investment into town centres, and lenders have followed with competitive terms for well-located schemes.",
				"Central location and logistics demand continue to support property values across the Midlands.",
			},
			content.RegionNorth: {
				"Northern markets have outperformed on rental growth, and lenders now treat strong Northern cities and towns as core lending territory.",
				"Lower entry prices and strong yields across the North attract investors, while regeneration schemes bring new development opportunities.",
			},
			DefaultRegion: {
				"Regional property markets vary widely across the UK, and lenders price risk on local evidence rather than national headlines.",
				"Local demand, planning policy and transport links all shape how lenders view property in this part of the country.",
			},
		},
		Overview: map[content.Region][]string{
			content.RegionLondon: {
				"{town} is one of the busier property markets in {county}, with a mix of period conversions, new-build flats and mixed-use high-street buildings.",
				"Property in {town} ranges from Victorian terraces to modern apartment schemes, giving investors and developers a wide range of opportunities.",
				"{town} has seen sustained investment in housing and transport, and remains a popular choice for both owner-occupiers and landlords in {county}.",
			},
			content.RegionSouthEast: {
				"{town} is a well-connected {county} town with strong demand from families and commuters alike.",
				"With good schools and fast links to London, {town} continues to attract buyers, keeping resale values resilient across {county}.",
				"{town} offers a mix of period homes, post-war estates and new developments, with steady demand for good-quality housing throughout {county}.",
			},
			content.RegionSouthWest: {
				"{town} is a key market in {county}, combining city-style demand with the appeal of the wider South West.",
				"From period terraces to new-build estates, {town} offers varied opportunities for property investors across {county}.",
				"{town} attracts a steady flow of movers from elsewhere in the UK, supporting demand for housing in and around {county}.",
			},
			content.RegionEastOfEngland: {
				"{town} is a growing {county} town with a strong commuter base and an active new-homes market.",
				"Demand in {town} is supported by local employment and quick rail links, making it a reliable market in {county}.",
				"{town} combines historic streets with new residential neighbourhoods, giving {county} investors a range of options.",
			},
			content.RegionMidlands: {
				"{town} is an established {county} market with a broad mix of housing stock and a healthy rental sector.",
				"Investment in {town} has picked up as buyers look for value, with demand for both refurbished and new homes across {county}.",
				"{town} benefits from its central position in {county}, with good road links supporting both residential and commercial property.",
			},
			content.RegionNorth: {
				"{town} is one of the larger markets in {county}, with strong rental demand and a growing pipeline of residential schemes.",
				"Regeneration has changed the face of {town}, and investors across {county} continue to find value in both city-centre and suburban stock.",
				"{town} offers attractive yields compared with the South, with solid tenant demand throughout {county}.",
			},
			DefaultRegion: {
				"{town} is an active property market in {county}, with opportunities for developers, landlords and owner-occupiers.",
				"{town} has a varied housing stock and steady demand, making it a dependable market within {county}.",
			},
		},
	}
}
