// Package bookable resolves scheduled legs into priced, segmented bookings
// and aggregates them into the final itinerary.
package bookable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/wayplan/wayplan/pkg/corridors"
	"github.com/wayplan/wayplan/pkg/travel"
)

const (
	defaultWorkers     = 4
	defaultCallSpacing = 300 * time.Millisecond
)

// Oracle supplies a live flight quote for one origin/destination/date triple.
type Oracle interface {
	Quote(ctx context.Context, originIATA string, destinationIATA string, date time.Time) (*travel.Quote, error)
}

type Assembler struct {
	Oracle    Oracle
	Corridors *corridors.Table

	Workers     int
	CallSpacing time.Duration
}

func NewAssembler(oracle Oracle, table *corridors.Table) *Assembler {
	return &Assembler{
		Oracle:      oracle,
		Corridors:   table,
		Workers:     defaultWorkers,
		CallSpacing: defaultCallSpacing,
	}
}

// Assemble resolves every scheduled leg into a bookable one. Surface legs
// price from the corridor table; flight legs query the oracle concurrently,
// each result written into its leg's slot. A leg the oracle has nothing for
// stays nil - a partially bookable itinerary is a valid outcome, and totals
// cover the resolved legs only.
func (a *Assembler) Assemble(ctx context.Context, legs []travel.ScheduledLeg) (*travel.Itinerary, error) {
	if len(legs) == 0 {
		return nil, errors.New("no legs to assemble")
	}

	itinerary := &travel.Itinerary{
		Legs:      make([]*travel.BookableLeg, len(legs)),
		StartDate: legs[0].DepartureDate,
		EndDate:   legs[len(legs)-1].DepartureDate,
	}

	ticker := time.NewTicker(a.CallSpacing)
	defer ticker.Stop()

	p := pool.New().WithMaxGoroutines(a.Workers).WithContext(ctx)

	for index, leg := range legs {
		if leg.Mode.Surface() {
			bookableLeg, err := a.surfaceLeg(leg)
			if err != nil {
				return nil, err
			}

			itinerary.Legs[index] = bookableLeg
			continue
		}

		legIndex := index
		scheduled := leg

		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}

			quote, err := a.Oracle.Quote(ctx, scheduled.OriginIATA, scheduled.DestinationIATA, scheduled.DepartureDate)
			if err != nil {
				if !errors.Is(err, travel.ErrNoQuote) && !errors.Is(err, travel.ErrDataUnavailable) {
					return err
				}

				// Absent leg, not a failed itinerary
				log.Warn().Err(err).
					Int("leg", legIndex).
					Str("origin", scheduled.OriginIATA).
					Str("destination", scheduled.DestinationIATA).
					Msg("Leg could not be resolved to a booking")
				return nil
			}

			itinerary.Legs[legIndex] = &travel.BookableLeg{
				Origin:        scheduled.OriginIATA,
				Destination:   scheduled.DestinationIATA,
				Date:          scheduled.DepartureDate,
				Mode:          travel.TransportModeFlight,
				Price:         quote.Price,
				DurationHours: quote.DurationHours,
				Segments:      quote.Segments,
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, leg := range itinerary.Legs {
		if leg == nil {
			continue
		}

		itinerary.TotalCost += leg.Price
		itinerary.TotalDurationHours += leg.DurationHours
	}

	return itinerary, nil
}

// surfaceLeg prices a train/coach leg from its corridor. No intraday
// granularity is modelled for surface journeys: the single synthetic
// segment departs and arrives on the leg's date.
func (a *Assembler) surfaceLeg(leg travel.ScheduledLeg) (*travel.BookableLeg, error) {
	corridor, ok := a.Corridors.Lookup(leg.OriginCity, leg.DestinationCity)
	if !ok {
		return nil, fmt.Errorf("no corridor joins %s and %s", leg.OriginCity, leg.DestinationCity)
	}

	date := leg.DepartureDate.Format(travel.DateFormat)

	return &travel.BookableLeg{
		Origin:        leg.OriginIATA,
		Destination:   leg.DestinationIATA,
		Date:          leg.DepartureDate,
		Mode:          corridor.Mode,
		Price:         corridor.Fare.Mean(),
		DurationHours: corridor.Time.Mean(),
		Segments: []travel.Segment{
			{
				From:      leg.OriginIATA,
				To:        leg.DestinationIATA,
				Departure: date,
				Arrival:   date,
			},
		},
	}, nil
}
