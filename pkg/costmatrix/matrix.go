// Package costmatrix builds, caches and projects the pairwise flight
// price/duration matrix over the city universe.
package costmatrix

import (
	"fmt"
	"time"

	"github.com/wayplan/wayplan/pkg/travel"
	"golang.org/x/exp/slices"
)

// Matrix is the persisted price/duration grid over a city universe. A null
// cell in the persisted form is the unreachable marker: no price data could
// be obtained for that pair.
type Matrix struct {
	Cities []string          `json:"cities"`
	Codes  map[string]string `json:"codes"`

	Price    [][]travel.Cell `json:"price"`
	Duration [][]travel.Cell `json:"duration"`

	Timestamp     time.Time `json:"timestamp"`
	ReferenceDate string    `json:"reference_date"`
}

// Filter projects the matrix down to the given cities, in the given order.
// Every requested city must exist in the matrix - a missing one is a
// configuration error, raised here before any optimization starts.
func (m *Matrix) Filter(selected []string) (*Matrix, error) {
	indices := make([]int, 0, len(selected))

	for _, city := range selected {
		index := slices.Index(m.Cities, city)
		if index == -1 {
			return nil, fmt.Errorf("%w: %s", travel.ErrCityNotInMatrix, city)
		}

		indices = append(indices, index)
	}

	filtered := &Matrix{
		Cities:        slices.Clone(selected),
		Codes:         map[string]string{},
		Timestamp:     m.Timestamp,
		ReferenceDate: m.ReferenceDate,
	}

	for _, city := range selected {
		filtered.Codes[city] = m.Codes[city]
	}

	for _, i := range indices {
		priceRow := make([]travel.Cell, 0, len(indices))
		durationRow := make([]travel.Cell, 0, len(indices))

		for _, j := range indices {
			priceRow = append(priceRow, m.Price[i][j])
			durationRow = append(durationRow, m.Duration[i][j])
		}

		filtered.Price = append(filtered.Price, priceRow)
		filtered.Duration = append(filtered.Duration, durationRow)
	}

	return filtered, nil
}

// CityList returns the matrix's cities as indexed travel.City values.
func (m *Matrix) CityList() []travel.City {
	list := make([]travel.City, 0, len(m.Cities))

	for index, name := range m.Cities {
		list = append(list, travel.City{
			Name:  name,
			IATA:  m.Codes[name],
			Index: index,
		})
	}

	return list
}
