package travel

import "time"

// Itinerary is the final bookable plan. Legs is indexed by leg id; a nil
// entry is a leg no booking could be resolved for. Totals cover resolved
// legs only, so a partially bookable trip still carries meaningful numbers.
type Itinerary struct {
	ID string `groups:"basic" json:"id" bson:"_id,omitempty"`

	Legs []*BookableLeg `groups:"basic" json:"legs" bson:"legs"`

	StartDate          time.Time `groups:"basic" json:"start_date" bson:"start_date"`
	EndDate            time.Time `groups:"basic" json:"end_date" bson:"end_date"`
	TotalCost          float64   `groups:"basic" json:"total_cost" bson:"total_cost"`
	TotalDurationHours float64   `groups:"basic" json:"total_duration" bson:"total_duration"`
}

// ResolvedLegs returns the bookable legs that were successfully resolved,
// preserving leg order.
func (i *Itinerary) ResolvedLegs() []*BookableLeg {
	var legs []*BookableLeg
	for _, leg := range i.Legs {
		if leg != nil {
			legs = append(legs, leg)
		}
	}

	return legs
}
