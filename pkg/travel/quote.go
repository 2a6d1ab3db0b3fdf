package travel

// Segment is one flown (or ridden) hop inside a bookable leg, with clock
// times in HH:MM.
type Segment struct {
	From      string `groups:"basic" json:"from"`
	To        string `groups:"basic" json:"to"`
	Departure string `groups:"basic" json:"departure"`
	Arrival   string `groups:"basic" json:"arrival"`
}

// Quote is an authoritative priced offer for a single origin/destination/date
// triple as returned by the pricing oracle.
type Quote struct {
	Price         float64   `groups:"basic" json:"price"`
	DurationHours float64   `groups:"basic" json:"duration"`
	DepartureTime string    `groups:"basic" json:"departure_time"`
	ArrivalTime   string    `groups:"basic" json:"arrival_time"`
	Stops         int       `groups:"basic" json:"stops"`
	Segments      []Segment `groups:"basic" json:"segments"`
}
