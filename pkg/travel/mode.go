package travel

type TransportMode string

const (
	TransportModeFlight TransportMode = "flight"
	TransportModeTrain  TransportMode = "train"
	TransportModeCoach  TransportMode = "coach"
	TransportModeNone   TransportMode = ""
)

// Surface reports whether the mode travels over a fixed-price corridor
// rather than a priced flight.
func (m TransportMode) Surface() bool {
	return m == TransportModeTrain || m == TransportModeCoach
}
