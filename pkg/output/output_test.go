package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayplan/wayplan/pkg/travel"
)

func testItinerary() *travel.Itinerary {
	start := time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 13, 0, 0, 0, 0, time.UTC)

	return &travel.Itinerary{
		ID: "abc123",
		Legs: []*travel.BookableLeg{
			{
				Origin: "LHR", Destination: "CDG", Date: start,
				Mode: travel.TransportModeTrain, Price: 65, DurationHours: 2.625,
				Segments: []travel.Segment{
					{From: "LHR", To: "CDG", Departure: "2026-05-11", Arrival: "2026-05-11"},
				},
			},
			nil,
			{
				Origin: "FCO", Destination: "ATH", Date: end,
				Mode: travel.TransportModeFlight, Price: 120.5, DurationHours: 2,
				Segments: []travel.Segment{
					{From: "FCO", To: "VIE", Departure: "09:00", Arrival: "10:30"},
					{From: "VIE", To: "ATH", Departure: "11:15", Arrival: "13:00"},
				},
			},
		},
		StartDate:          start,
		EndDate:            end,
		TotalCost:          185.5,
		TotalDurationHours: 4.625,
	}
}

func TestRender(t *testing.T) {
	text := Render(testItinerary())

	assert.Contains(t, text, "Total Cost: £185.50")
	assert.Contains(t, text, "Total Travel Time: 4h 38m")
	assert.Contains(t, text, "Trip duration: 2026-05-11 to 2026-05-13 (2 days)")
	assert.Contains(t, text, "Leg 1 (LHR -> CDG)")
	assert.Contains(t, text, "Duration: 2h 38m | Train")
	assert.Contains(t, text, "Leg 2: no booking could be found")
	assert.Contains(t, text, "Leg 3 (FCO -> VIE -> ATH)")
	assert.Contains(t, text, "2 Flights")
	assert.Contains(t, text, "(VIE -> ATH)")
}

func TestSaveJSON(t *testing.T) {
	directory := t.TempDir()

	path, err := SaveJSON(directory, testItinerary())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(directory, "itineraries", "json", "bookable_itinerary_abc123.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded travel.Itinerary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "abc123", decoded.ID)
	require.Len(t, decoded.Legs, 3)
	assert.Nil(t, decoded.Legs[1], "absent legs survive the JSON round trip")
	assert.Equal(t, 185.5, decoded.TotalCost)
}

func TestSavePretty(t *testing.T) {
	directory := t.TempDir()

	path, err := SavePretty(directory, testItinerary())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Render(testItinerary()), string(data))
}
