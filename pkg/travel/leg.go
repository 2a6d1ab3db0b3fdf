package travel

import "time"

const DateFormat = "2006-01-02"

// ScheduledLeg is one calendar-dated hop of the route, before booking
// resolution. Legs are indexed contiguously from 0 in route order.
type ScheduledLeg struct {
	OriginCity      string        `groups:"basic" json:"origin_city"`
	DestinationCity string        `groups:"basic" json:"dest_city"`
	OriginIATA      string        `groups:"basic" json:"origin_iata"`
	DestinationIATA string        `groups:"basic" json:"dest_iata"`
	Mode            TransportMode `groups:"basic" json:"mode"`
	DepartureDate   time.Time     `groups:"basic" json:"departure_date"`
}

// BookableLeg is a scheduled leg resolved into a priced, segmented booking.
type BookableLeg struct {
	Origin      string        `groups:"basic" json:"origin"`
	Destination string        `groups:"basic" json:"dest"`
	Date        time.Time     `groups:"basic" json:"date"`
	Mode        TransportMode `groups:"basic" json:"mode"`

	Price         float64   `groups:"basic" json:"price"`
	DurationHours float64   `groups:"basic" json:"duration"`
	Segments      []Segment `groups:"basic" json:"segments"`
}
