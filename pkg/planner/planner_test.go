package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayplan/wayplan/pkg/cities"
	"github.com/wayplan/wayplan/pkg/corridors"
	"github.com/wayplan/wayplan/pkg/costmatrix"
	"github.com/wayplan/wayplan/pkg/travel"
)

type fakeOracle struct {
	price float64
}

func (f *fakeOracle) Quote(ctx context.Context, origin string, destination string, date time.Time) (*travel.Quote, error) {
	return &travel.Quote{
		Price:         f.price,
		DurationHours: 2,
		Segments: []travel.Segment{
			{From: origin, To: destination, Departure: "09:00", Arrival: "11:00"},
		},
	}, nil
}

// seedCache writes a matrix covering a small universe so tests skip the
// full 19-city rebuild.
func seedCache(t *testing.T, path string, price [][]travel.Cell) {
	t.Helper()

	duration := make([][]travel.Cell, len(price))
	for i := range duration {
		duration[i] = make([]travel.Cell, len(price))
		for j := range duration[i] {
			if i == j || !price[i][j].Known {
				duration[i][j] = price[i][j]
				continue
			}
			duration[i][j] = travel.KnownCell(2)
		}
	}

	matrix := &costmatrix.Matrix{
		Cities:        []string{"London", "Paris", "Rome"},
		Codes:         map[string]string{"London": "LHR", "Paris": "CDG", "Rome": "FCO"},
		Price:         price,
		Duration:      duration,
		Timestamp:     time.Now(),
		ReferenceDate: "2026-05-12",
	}

	require.NoError(t, costmatrix.SaveCache(path, matrix))
}

func testPlanner(t *testing.T, cachePath string) *Planner {
	t.Helper()

	registry, err := cities.NewRegistry()
	require.NoError(t, err)

	table, err := corridors.NewTable()
	require.NoError(t, err)

	planner := NewPlanner(registry, table, &fakeOracle{price: 100}, cachePath)
	planner.Assembler.CallSpacing = time.Millisecond
	planner.Builder.CallSpacing = time.Millisecond

	return planner
}

func knownGrid(values [][]float64) [][]travel.Cell {
	grid := make([][]travel.Cell, len(values))
	for i, row := range values {
		grid[i] = make([]travel.Cell, len(row))
		for j, value := range row {
			grid[i][j] = travel.KnownCell(value)
		}
	}

	return grid
}

func TestPlan(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "matrix.json")
	seedCache(t, cachePath, knownGrid([][]float64{
		{0, 100, 90},
		{100, 0, 80},
		{90, 80, 0},
	}))

	planner := testPlanner(t, cachePath)

	result, err := planner.Plan(context.Background(), Request{
		SelectedCities: []string{"Paris", "Rome"},
		DaysPerCity:    []int{0, 1, 0},
		TimeWeight:     0,
		StartDate:      "2026-05-11",
	})
	require.NoError(t, err)

	// Corridor London->Paris costs 65, flights both ways cost 90/100:
	// optimal is London -> Paris -> Rome
	require.Len(t, result.Solution.Cities, 3)
	assert.Equal(t, "London", result.Solution.Cities[0].Name)
	assert.Equal(t, "Paris", result.Solution.Cities[1].Name)
	assert.Equal(t, "Rome", result.Solution.Cities[2].Name)
	assert.Equal(t, travel.TransportModeTrain, result.Solution.Modes[0])
	assert.Equal(t, travel.TransportModeFlight, result.Solution.Modes[1])

	require.Len(t, result.Legs, 2)
	assert.Equal(t, "2026-05-11", result.Legs[0].DepartureDate.Format(travel.DateFormat))
	assert.Equal(t, "2026-05-13", result.Legs[1].DepartureDate.Format(travel.DateFormat))

	require.NotNil(t, result.Itinerary)
	assert.NotEmpty(t, result.Itinerary.ID)
	require.Len(t, result.Itinerary.Legs, 2)
	assert.Equal(t, 65.0+100.0, result.Itinerary.TotalCost)
}

func TestPlanUnknownCity(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "matrix.json")
	seedCache(t, cachePath, knownGrid([][]float64{
		{0, 100, 90},
		{100, 0, 80},
		{90, 80, 0},
	}))

	planner := testPlanner(t, cachePath)

	_, err := planner.Plan(context.Background(), Request{
		SelectedCities: []string{"Paris", "Atlantis"},
		DaysPerCity:    []int{0, 1, 0},
		StartDate:      "2026-05-11",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, travel.ErrCityNotInMatrix)
}

func TestPlanInfeasible(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "matrix.json")

	// Rome is unreachable from everywhere and reaches nowhere, and no
	// corridor covers it: every route must cross a sentinel arc.
	price := knownGrid([][]float64{
		{0, 100, 0},
		{100, 0, 0},
		{0, 0, 0},
	})
	price[0][2] = travel.UnreachableCell()
	price[1][2] = travel.UnreachableCell()
	price[2][0] = travel.UnreachableCell()
	price[2][1] = travel.UnreachableCell()
	seedCache(t, cachePath, price)

	planner := testPlanner(t, cachePath)

	_, err := planner.Plan(context.Background(), Request{
		SelectedCities: []string{"Paris", "Rome"},
		DaysPerCity:    []int{0, 1, 0},
		StartDate:      "2026-05-11",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, travel.ErrInfeasible)
}

func TestPlanValidation(t *testing.T) {
	planner := testPlanner(t, filepath.Join(t.TempDir(), "matrix.json"))

	cases := []struct {
		name    string
		request Request
	}{
		{"no cities", Request{DaysPerCity: []int{0}, StartDate: "2026-05-11"}},
		{"days mismatch", Request{SelectedCities: []string{"Paris"}, DaysPerCity: []int{0}, StartDate: "2026-05-11"}},
		{"negative weight", Request{SelectedCities: []string{"Paris"}, DaysPerCity: []int{0, 0}, TimeWeight: -5, StartDate: "2026-05-11"}},
		{"duplicate city", Request{SelectedCities: []string{"Paris", "Paris"}, DaysPerCity: []int{0, 0, 0}, StartDate: "2026-05-11"}},
		{"depot selected", Request{SelectedCities: []string{"London"}, DaysPerCity: []int{0, 0}, StartDate: "2026-05-11"}},
		{"bad date", Request{SelectedCities: []string{"Paris"}, DaysPerCity: []int{0, 0}, StartDate: "11/05/2026"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := planner.Plan(context.Background(), c.request)
			assert.Error(t, err)
		})
	}
}

func TestPlanRebuildsMatrixOnCacheMiss(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "matrix.json")
	planner := testPlanner(t, cachePath)

	result, err := planner.Plan(context.Background(), Request{
		SelectedCities: []string{"Paris"},
		DaysPerCity:    []int{0, 0},
		StartDate:      "2026-05-11",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Itinerary)

	// The rebuild must have been persisted for the next invocation
	matrix, err := costmatrix.LoadCache(cachePath, costmatrix.DefaultMaxCacheAge)
	require.NoError(t, err)
	assert.Len(t, matrix.Cities, 19)
}
