// Package corridors is the static registry of fixed-price surface routes
// (train & coach) between city pairs. Corridors are unordered: a corridor
// between A and B covers travel in both directions.
package corridors

import (
	_ "embed"
	"fmt"

	"github.com/wayplan/wayplan/pkg/travel"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Mean is the point estimate used wherever a single fare or duration is
// needed.
func (r Range) Mean() float64 {
	return (r.Min + r.Max) / 2
}

type Corridor struct {
	Between []string             `yaml:"between" json:"between"`
	Mode    travel.TransportMode `yaml:"mode" json:"mode"`
	Fare    Range                `yaml:"fare" json:"fare"`
	Time    Range                `yaml:"time" json:"time"`
}

type Table struct {
	corridors map[pairKey]Corridor
}

type pairKey struct {
	a string
	b string
}

// canonicalPair orders the two city names so that {A,B} and {B,A} resolve
// to the same key with a single map probe.
func canonicalPair(a string, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{a: a, b: b}
}

// NewTable loads the embedded corridor dataset.
func NewTable() (*Table, error) {
	var corridors []Corridor
	if err := yaml.Unmarshal(datasetYAML, &corridors); err != nil {
		return nil, fmt.Errorf("parse corridor dataset: %w", err)
	}

	table := &Table{
		corridors: map[pairKey]Corridor{},
	}

	for _, corridor := range corridors {
		if len(corridor.Between) != 2 {
			return nil, fmt.Errorf("corridor must join exactly 2 cities, got %v", corridor.Between)
		}
		if !corridor.Mode.Surface() {
			return nil, fmt.Errorf("corridor %v has non-surface mode %q", corridor.Between, corridor.Mode)
		}

		table.corridors[canonicalPair(corridor.Between[0], corridor.Between[1])] = corridor
	}

	return table, nil
}

// Lookup returns the corridor joining the two cities, in either order.
func (t *Table) Lookup(cityA string, cityB string) (Corridor, bool) {
	corridor, ok := t.corridors[canonicalPair(cityA, cityB)]
	return corridor, ok
}

func (t *Table) Count() int {
	return len(t.corridors)
}
