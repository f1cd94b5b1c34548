package content

import (
	"fmt"
	"time"
)

// Region classifies a location for regional copy selection.
type Region string

// Supported regions. Locations with any other value fall back to the default pools.
const (
	RegionLondon        Region = "london"
	RegionSouthEast     Region = "south-east"
	RegionSouthWest     Region = "south-west"
	RegionEastOfEngland Region = "east-of-england"
	RegionMidlands      Region = "midlands"
	RegionNorth         Region = "north"
)

// Location is immutable reference data for one town page.
type Location struct {
	CountyKey  string `json:"county_key" yaml:"county_key"`
	County     string `json:"county" yaml:"county"`
	TownKey    string `json:"town_key" yaml:"town_key"`
	Town       string `json:"town" yaml:"town"`
	Region     Region `json:"region" yaml:"region"`
	Population int    `json:"population,omitempty" yaml:"population,omitempty"`
}

// Service describes one finance product in the static catalog.
type Service struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// RateGuide and LeverageGuide steer the generated rates block toward realistic values.
	RateGuide     string `json:"rate_guide"`
	LeverageGuide string `json:"leverage_guide"`
	TermGuide     string `json:"term_guide"`
}

// Key is the persisted identity of a content record.
type Key struct {
	CountyKey  string `json:"county_key"`
	TownKey    string `json:"town_key"`
	ServiceKey string `json:"service_key"`
}

// String renders the key as a slash-separated path.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.CountyKey, k.TownKey, k.ServiceKey)
}

// KeySet is a read-only snapshot of keys already present in the store.
type KeySet map[Key]struct{}

// NewKeySet builds a KeySet from the provided keys.
func NewKeySet(keys ...Key) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether k is present. A nil set contains nothing.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Task is one outstanding (location, service) combination.
type Task struct {
	Location Location
	Service  Service
}

// Key returns the storage identity of the task.
func (t Task) Key() Key {
	return Key{
		CountyKey:  t.Location.CountyKey,
		TownKey:    t.Location.TownKey,
		ServiceKey: t.Service.Key,
	}
}

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DealExample is an illustrative funded deal. Monetary fields are plain digit-and-comma strings.
type DealExample struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	LoanAmount    string `json:"loan_amount"`
	PropertyValue string `json:"property_value"`
	Leverage      string `json:"leverage"`
	Product       string `json:"product"`
}

// Rates summarises indicative pricing for the service.
type Rates struct {
	RateFrom    string `json:"rate_from"`
	RateTo      string `json:"rate_to"`
	MaxLeverage string `json:"max_leverage"`
	Term        string `json:"term"`
	Fee         string `json:"fee"`
}

// Record is the unit persisted for one task.
type Record struct {
	ID             string       `json:"id,omitempty"`
	Key            Key          `json:"key"`
	Narrative      string       `json:"narrative"`
	FAQs           []FAQ        `json:"faqs"`
	DealExample    *DealExample `json:"deal_example"`
	Rates          *Rates       `json:"rates"`
	SEOTitle       string       `json:"seo_title"`
	SEODescription string       `json:"seo_description"`
	Model          string       `json:"model,omitempty"`
	GeneratedAt    time.Time    `json:"generated_at"`
}
