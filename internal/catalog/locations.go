package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JakeFAU/areapages/internal/content"
)

// ErrNoLocations is returned when the reference data holds zero locations.
var ErrNoLocations = errors.New("no location records found")

type locationFile struct {
	Locations []yaml.Node `yaml:"locations"`
}

// LoadLocations reads locations from a YAML file.
func LoadLocations(path string) ([]content.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}
	locs, err := ParseLocations(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return locs, nil
}

// ParseLocations decodes a `locations:` YAML document. Every entry must carry county,
// county_key, town and town_key; (county_key, town_key) pairs must be unique.
func ParseLocations(r io.Reader) ([]content.Location, error) {
	var doc locationFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoLocations
		}
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	if len(doc.Locations) == 0 {
		return nil, ErrNoLocations
	}

	type ident struct{ county, town string }
	seen := make(map[ident]int, len(doc.Locations))
	out := make([]content.Location, 0, len(doc.Locations))
	for _, node := range doc.Locations {
		var loc content.Location
		if err := node.Decode(&loc); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		loc.CountyKey = strings.TrimSpace(loc.CountyKey)
		loc.TownKey = strings.TrimSpace(loc.TownKey)
		if err := checkLocation(loc); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		id := ident{loc.CountyKey, loc.TownKey}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate location %s/%s (first seen on line %d)",
				node.Line, loc.CountyKey, loc.TownKey, prev)
		}
		seen[id] = node.Line
		out = append(out, loc)
	}
	return out, nil
}

func checkLocation(loc content.Location) error {
	switch {
	case loc.CountyKey == "":
		return errors.New("county_key is required")
	case loc.TownKey == "":
		return errors.New("town_key is required")
	case strings.TrimSpace(loc.County) == "":
		return errors.New("county is required")
	case strings.TrimSpace(loc.Town) == "":
		return errors.New("town is required")
	case loc.Population < 0:
		return errors.New("population must be >= 0")
	}
	return nil
}
