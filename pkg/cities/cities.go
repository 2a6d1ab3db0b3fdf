// Package cities holds the fixed city universe the cost matrix is built
// over. The first entry of the dataset is the depot city.
package cities

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/wayplan/wayplan/pkg/travel"
)

//go:embed dataset.csv
var datasetCSV []byte

type datasetRecord struct {
	Name string `csv:"name"`
	IATA string `csv:"iata"`
}

type Registry struct {
	cities []travel.City
	byName map[string]travel.City
}

func NewRegistry() (*Registry, error) {
	var records []datasetRecord
	if err := gocsv.Unmarshal(bytes.NewReader(datasetCSV), &records); err != nil {
		return nil, fmt.Errorf("parse city dataset: %w", err)
	}

	registry := &Registry{
		byName: map[string]travel.City{},
	}

	for index, record := range records {
		city := travel.City{
			Name:  record.Name,
			IATA:  record.IATA,
			Index: index,
		}

		registry.cities = append(registry.cities, city)
		registry.byName[record.Name] = city
	}

	return registry, nil
}

// All returns every city of the universe in dataset order.
func (r *Registry) All() []travel.City {
	return r.cities
}

// Depot returns the fixed origin city of every trip.
func (r *Registry) Depot() travel.City {
	return r.cities[0]
}

func (r *Registry) Get(name string) (travel.City, bool) {
	city, ok := r.byName[name]
	return city, ok
}

// Codes returns the city name to IATA code mapping for the whole universe.
func (r *Registry) Codes() map[string]string {
	codes := map[string]string{}
	for _, city := range r.cities {
		codes[city.Name] = city.IATA
	}

	return codes
}
