package travel

import "errors"

var (
	// ErrCityNotInMatrix - a requested city has no row in the cost matrix.
	// Configuration problem, raised before any optimization starts.
	ErrCityNotInMatrix = errors.New("city not present in cost matrix")

	// ErrNoQuote - the oracle responded but has nothing bookable for the pair/date.
	ErrNoQuote = errors.New("no quote available")

	// ErrDataUnavailable - all retries for one origin/destination pair were
	// exhausted. Degrades to a sentinel arc at graph-build time and to an
	// absent leg at assembly time, never to a failed run.
	ErrDataUnavailable = errors.New("pricing data unavailable")

	// ErrInfeasible - the best route still crosses a sentinel-priced arc, so
	// no real route exists over the requested cities.
	ErrInfeasible = errors.New("no feasible route exists")
)
