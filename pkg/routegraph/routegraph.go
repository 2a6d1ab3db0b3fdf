// Package routegraph merges the flight cost matrix with the surface
// corridor table into one weighted directed graph over the requested
// cities, ready for the route optimizer.
package routegraph

import (
	"fmt"
	"math"

	"github.com/wayplan/wayplan/pkg/corridors"
	"github.com/wayplan/wayplan/pkg/costmatrix"
	"github.com/wayplan/wayplan/pkg/travel"
)

// SentinelPrice substitutes for an unreachable matrix cell: large enough
// that the solver only crosses such an arc when no real alternative exists,
// finite so the solver stays well-defined. Only the price carries the
// penalty - the sentinel duration is 0.
const SentinelPrice = 1e9

// Graph holds parallel square matrices over the request's cities. Weights
// feed the solver; Prices and Durations keep the original arc values so
// route totals are recomputed from real numbers, not solver weights.
type Graph struct {
	Cities []travel.City

	Weights   [][]int64
	Modes     [][]travel.TransportMode
	Prices    [][]float64
	Durations [][]float64
}

func (g *Graph) Size() int {
	return len(g.Cities)
}

// Build produces the multimodal graph. A corridor between two cities always
// wins over the flight matrix for that pair, whatever the relative prices.
func Build(matrix *costmatrix.Matrix, table *corridors.Table, timeWeight int) (*Graph, error) {
	if timeWeight < 0 {
		return nil, fmt.Errorf("time weight must be non-negative, got %d", timeWeight)
	}

	cityList := matrix.CityList()
	n := len(cityList)

	graph := &Graph{
		Cities:    cityList,
		Weights:   make([][]int64, n),
		Modes:     make([][]travel.TransportMode, n),
		Prices:    make([][]float64, n),
		Durations: make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		graph.Weights[i] = make([]int64, n)
		graph.Modes[i] = make([]travel.TransportMode, n)
		graph.Prices[i] = make([]float64, n)
		graph.Durations[i] = make([]float64, n)

		for j := 0; j < n; j++ {
			if i == j {
				graph.Modes[i][j] = travel.TransportModeNone
				continue
			}

			var mode travel.TransportMode
			var price float64
			var duration float64

			if corridor, ok := table.Lookup(cityList[i].Name, cityList[j].Name); ok {
				mode = corridor.Mode
				price = corridor.Fare.Mean()
				duration = corridor.Time.Mean()
			} else {
				mode = travel.TransportModeFlight

				priceCell := matrix.Price[i][j]
				durationCell := matrix.Duration[i][j]

				if priceCell.Known && durationCell.Known {
					price = priceCell.Value
					duration = durationCell.Value
				} else {
					price = SentinelPrice
					duration = 0
				}
			}

			graph.Modes[i][j] = mode
			graph.Prices[i][j] = price
			graph.Durations[i][j] = duration
			graph.Weights[i][j] = int64(math.Round(price + float64(timeWeight)*duration))
		}
	}

	return graph, nil
}
