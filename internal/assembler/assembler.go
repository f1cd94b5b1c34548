// Package assembler composes the location/service prose block rendered on each page.
//
// Three axes are selected independently with the deterministic variant selector:
//   - service commentary, keyed on the town key;
//   - regional context, keyed on town key + county key;
//   - town/county overview, keyed on the town key, drawn from the region's pool.
//
// Output is a pure function of (service, town, county, region) and the tables, so it is safe
// to call on every request without caching.
package assembler

import (
	"strings"

	"github.com/JakeFAU/areapages/internal/content"
	"github.com/JakeFAU/areapages/internal/variant"
)

// DefaultRegion is the pool used for regions without their own variants.
const DefaultRegion content.Region = ""

// Tables holds the pre-authored variants. Fragments may use the placeholders {town},
// {county} and {service}.
type Tables struct {
	// Commentary maps a service key to its variants; each variant is a list of paragraphs.
	Commentary map[string][][]string
	// Regional maps a region to its context paragraph variants.
	Regional map[content.Region][]string
	// Overview maps a region to its town/county overview variants.
	Overview map[content.Region][]string
}

// Assembler builds page prose from a fixed set of tables.
type Assembler struct {
	tables Tables
}

// New returns an Assembler over the built-in tables.
func New() *Assembler {
	return NewWithTables(DefaultTables())
}

// NewWithTables returns an Assembler over caller-provided tables.
func NewWithTables(t Tables) *Assembler {
	return &Assembler{tables: t}
}

// Commentary returns the service commentary paragraphs for a town, or nil when the service
// has no commentary set.
func (a *Assembler) Commentary(serviceKey, townKey string) []string {
	set, ok := variant.Pick(a.tables.Commentary[serviceKey], variant.Key(townKey))
	if !ok {
		return nil
	}
	return append([]string(nil), set...)
}

// RegionalContext returns the region paragraph selected for town+county.
func (a *Assembler) RegionalContext(region content.Region, townKey, countyKey string) string {
	p, _ := variant.Pick(a.pool(a.tables.Regional, region), variant.Key(townKey, countyKey))
	return p
}

// Overview returns the town/county overview selected for a town from its region's pool.
func (a *Assembler) Overview(region content.Region, townKey string) string {
	p, _ := variant.Pick(a.pool(a.tables.Overview, region), variant.Key(townKey))
	return p
}

// Assemble returns the rendered paragraphs for one page: commentary first, then regional
// context, then overview. It returns nil when the service has no commentary set; callers
// treat that as "no commentary available".
func (a *Assembler) Assemble(svc content.Service, loc content.Location) []string {
	commentary := a.Commentary(svc.Key, loc.TownKey)
	if len(commentary) == 0 {
		return nil
	}
	r := strings.NewReplacer(
		"{town}", loc.Town,
		"{county}", loc.County,
		"{service}", svc.Name,
	)
	out := make([]string, 0, len(commentary)+2)
	for _, p := range commentary {
		out = append(out, r.Replace(p))
	}
	if p := a.RegionalContext(loc.Region, loc.TownKey, loc.CountyKey); p != "" {
		out = append(out, r.Replace(p))
	}
	if p := a.Overview(loc.Region, loc.TownKey); p != "" {
		out = append(out, r.Replace(p))
	}
	return out
}

func (a *Assembler) pool(m map[content.Region][]string, region content.Region) []string {
	if v := m[region]; len(v) > 0 {
		return v
	}
	return m[DefaultRegion]
}
