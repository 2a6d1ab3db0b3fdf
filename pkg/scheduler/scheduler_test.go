package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayplan/wayplan/pkg/travel"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testRoute() ([]travel.City, []travel.TransportMode) {
	route := []travel.City{
		{Name: "London", IATA: "LHR", Index: 0},
		{Name: "Paris", IATA: "CDG", Index: 1},
		{Name: "Vienna", IATA: "VIE", Index: 2},
	}
	modes := []travel.TransportMode{travel.TransportModeTrain, travel.TransportModeFlight}

	return route, modes
}

func TestScheduleSpecExample(t *testing.T) {
	route, modes := testRoute()

	legs, err := Schedule(date(2026, time.May, 11), route, modes, []int{0, 1, 0})
	require.NoError(t, err)
	require.Len(t, legs, 2)

	assert.Equal(t, date(2026, time.May, 11), legs[0].DepartureDate)
	// 1 travel day + 1 full day in Paris
	assert.Equal(t, date(2026, time.May, 13), legs[1].DepartureDate)

	assert.Equal(t, "London", legs[0].OriginCity)
	assert.Equal(t, "Paris", legs[0].DestinationCity)
	assert.Equal(t, "CDG", legs[0].DestinationIATA)
	assert.Equal(t, travel.TransportModeTrain, legs[0].Mode)
	assert.Equal(t, travel.TransportModeFlight, legs[1].Mode)
}

func TestScheduleNoStaysElapsedDays(t *testing.T) {
	route := []travel.City{
		{Name: "London", IATA: "LHR"},
		{Name: "Berlin", IATA: "BER"},
		{Name: "Prague", IATA: "PRG"},
		{Name: "Vienna", IATA: "VIE"},
	}
	modes := []travel.TransportMode{
		travel.TransportModeFlight,
		travel.TransportModeTrain,
		travel.TransportModeTrain,
	}

	legs, err := Schedule(date(2026, time.June, 1), route, modes, []int{0, 0, 0, 0})
	require.NoError(t, err)
	require.Len(t, legs, 3)

	// With no stays, total elapsed days over the trip is N-1
	elapsed := legs[len(legs)-1].DepartureDate.Sub(legs[0].DepartureDate).Hours() / 24
	assert.Equal(t, 2.0, elapsed)
}

func TestScheduleDatesNonDecreasing(t *testing.T) {
	route, modes := testRoute()

	legs, err := Schedule(date(2026, time.May, 11), route, modes, []int{0, 3, 2})
	require.NoError(t, err)

	for i := 0; i+1 < len(legs); i++ {
		assert.False(t, legs[i+1].DepartureDate.Before(legs[i].DepartureDate))
	}
}

func TestScheduleLengthMismatch(t *testing.T) {
	route, modes := testRoute()

	_, err := Schedule(date(2026, time.May, 11), route, modes, []int{0, 1})
	assert.Error(t, err)

	_, err = Schedule(date(2026, time.May, 11), route, modes[:1], []int{0, 1, 0})
	assert.Error(t, err)
}

func TestScheduleNegativeDays(t *testing.T) {
	route, modes := testRoute()

	_, err := Schedule(date(2026, time.May, 11), route, modes, []int{0, -1, 0})
	assert.Error(t, err)
}
