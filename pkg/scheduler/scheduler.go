// Package scheduler turns the abstract optimal route into calendar-dated
// legs.
package scheduler

import (
	"fmt"
	"time"

	"github.com/wayplan/wayplan/pkg/travel"
)

// travelDays is the whole-day cost of making one hop. Surface journeys
// spanning midnight or multi-day transit are not modelled; a long overnight
// train still consumes a single day here.
const travelDays = 1

// Schedule walks the route accumulating a running departure date: leg i
// departs on the current date, then the date advances by the travel day
// plus the full days spent in the arrival city. daysPerCity is aligned to
// route order (entry 0 is the depot, conventionally 0).
func Schedule(startDate time.Time, route []travel.City, modes []travel.TransportMode, daysPerCity []int) ([]travel.ScheduledLeg, error) {
	if len(modes) != len(route)-1 {
		return nil, fmt.Errorf("route of %d cities needs %d leg modes, got %d", len(route), len(route)-1, len(modes))
	}
	if len(daysPerCity) != len(route) {
		return nil, fmt.Errorf("route of %d cities needs %d days-per-city entries, got %d", len(route), len(route), len(daysPerCity))
	}

	for index, days := range daysPerCity {
		if days < 0 {
			return nil, fmt.Errorf("days-per-city entry %d is negative", index)
		}
	}

	currentDate := startDate
	legs := make([]travel.ScheduledLeg, 0, len(route)-1)

	for i := 0; i+1 < len(route); i++ {
		legs = append(legs, travel.ScheduledLeg{
			OriginCity:      route[i].Name,
			DestinationCity: route[i+1].Name,
			OriginIATA:      route[i].IATA,
			DestinationIATA: route[i+1].IATA,
			Mode:            modes[i],
			DepartureDate:   currentDate,
		})

		currentDate = currentDate.AddDate(0, 0, travelDays+daysPerCity[i+1])
	}

	return legs, nil
}
