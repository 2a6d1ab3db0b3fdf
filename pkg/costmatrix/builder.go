package costmatrix

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/wayplan/wayplan/pkg/travel"
)

const (
	defaultWorkers = 4
	// Minimum spacing between oracle calls, respecting its throughput limit.
	defaultCallSpacing = 300 * time.Millisecond
)

// Oracle supplies a live flight quote for one origin/destination/date triple.
type Oracle interface {
	Quote(ctx context.Context, originIATA string, destinationIATA string, date time.Time) (*travel.Quote, error)
}

// Builder rebuilds the full price/duration matrix by querying the oracle for
// every ordered city pair. Calls fan out over a bounded worker pool but each
// result lands in its (i, j) cell, so the produced matrix is identical no
// matter how the calls interleave.
type Builder struct {
	Oracle      Oracle
	Workers     int
	CallSpacing time.Duration
}

func NewBuilder(oracle Oracle) *Builder {
	return &Builder{
		Oracle:      oracle,
		Workers:     defaultWorkers,
		CallSpacing: defaultCallSpacing,
	}
}

func (b *Builder) Build(ctx context.Context, universe []travel.City, referenceDate time.Time) (*Matrix, error) {
	n := len(universe)

	matrix := &Matrix{
		Codes:         map[string]string{},
		Timestamp:     time.Now(),
		ReferenceDate: referenceDate.Format(travel.DateFormat),
	}

	for _, city := range universe {
		matrix.Cities = append(matrix.Cities, city.Name)
		matrix.Codes[city.Name] = city.IATA

		priceRow := make([]travel.Cell, n)
		durationRow := make([]travel.Cell, n)
		for k := range priceRow {
			priceRow[k] = travel.KnownCell(0)
			durationRow[k] = travel.KnownCell(0)
		}

		matrix.Price = append(matrix.Price, priceRow)
		matrix.Duration = append(matrix.Duration, durationRow)
	}

	ticker := time.NewTicker(b.CallSpacing)
	defer ticker.Stop()

	p := pool.New().WithMaxGoroutines(b.Workers).WithContext(ctx)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			origin := universe[i]
			destination := universe[j]
			row := i
			column := j

			p.Go(func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}

				quote, err := b.Oracle.Quote(ctx, origin.IATA, destination.IATA, referenceDate)
				if err != nil {
					if !errors.Is(err, travel.ErrNoQuote) && !errors.Is(err, travel.ErrDataUnavailable) {
						return err
					}

					// Degrade the cell, never the build.
					log.Warn().Err(err).
						Str("origin", origin.IATA).
						Str("destination", destination.IATA).
						Msg("No pricing data for pair")

					matrix.Price[row][column] = travel.UnreachableCell()
					matrix.Duration[row][column] = travel.UnreachableCell()
					return nil
				}

				matrix.Price[row][column] = travel.KnownCell(quote.Price)
				matrix.Duration[row][column] = travel.KnownCell(quote.DurationHours)
				return nil
			})
		}
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return matrix, nil
}
