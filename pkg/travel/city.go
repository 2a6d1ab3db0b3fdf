package travel

// City is one entry in the request's city universe. Index is the city's
// position within the current request, not within the full registry.
type City struct {
	Name  string `groups:"basic" json:"name"`
	IATA  string `groups:"basic" json:"iata"`
	Index int    `groups:"internal" json:"-"`
}
