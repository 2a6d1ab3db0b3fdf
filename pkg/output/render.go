package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/wayplan/wayplan/pkg/travel"
)

// Render produces the human-readable itinerary text. Unresolved legs are
// listed but carry no price or timing.
func Render(itinerary *travel.Itinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Cost: £%.2f\n", itinerary.TotalCost)
	fmt.Fprintf(&b, "Total Travel Time: %s\n", formatHours(itinerary.TotalDurationHours))

	tripDays := int(itinerary.EndDate.Sub(itinerary.StartDate).Hours() / 24)
	fmt.Fprintf(&b, "Trip duration: %s to %s (%d days)\n",
		itinerary.StartDate.Format(travel.DateFormat),
		itinerary.EndDate.Format(travel.DateFormat),
		tripDays,
	)
	b.WriteString("-----\n")

	for index, leg := range itinerary.Legs {
		if leg == nil {
			fmt.Fprintf(&b, "\nLeg %d: no booking could be found\n", index+1)
			continue
		}

		var hops []string
		for _, segment := range leg.Segments {
			hops = append(hops, segment.From+" ->")
		}

		fmt.Fprintf(&b, "\nLeg %d (%s %s)\n", index+1, strings.Join(hops, " "), leg.Destination)
		fmt.Fprintf(&b, "Date: %s\n", leg.Date.Format(travel.DateFormat))
		fmt.Fprintf(&b, "Duration: %s | %s\n", formatHours(leg.DurationHours), modeLabel(leg))

		for _, segment := range leg.Segments {
			fmt.Fprintf(&b, "Depart: %s | Arrive: %s", segment.Departure, segment.Arrival)
			if len(leg.Segments) > 1 {
				fmt.Fprintf(&b, " (%s -> %s)", segment.From, segment.To)
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "Cost: £%.2f\n", leg.Price)
	}

	return b.String()
}

func modeLabel(leg *travel.BookableLeg) string {
	switch leg.Mode {
	case travel.TransportModeTrain:
		return "Train"
	case travel.TransportModeCoach:
		return "Coach"
	case travel.TransportModeFlight:
		if len(leg.Segments) == 1 {
			return "Direct Flight"
		}
		return fmt.Sprintf("%d Flights", len(leg.Segments))
	default:
		return string(leg.Mode)
	}
}

func formatHours(hours float64) string {
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)

	return fmt.Sprintf("%.0fh %.0fm", whole, minutes)
}
