// Package planner runs the full trip pipeline: cost matrix, multimodal
// graph, route optimization, date scheduling and booking assembly.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/bookable"
	"github.com/wayplan/wayplan/pkg/cities"
	"github.com/wayplan/wayplan/pkg/corridors"
	"github.com/wayplan/wayplan/pkg/costmatrix"
	"github.com/wayplan/wayplan/pkg/optimizer"
	"github.com/wayplan/wayplan/pkg/routegraph"
	"github.com/wayplan/wayplan/pkg/scheduler"
	"github.com/wayplan/wayplan/pkg/travel"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slices"
)

// Request is the surface consumed by the planner. SelectedCities excludes
// the implicit depot; DaysPerCity is aligned to the final route (depot
// first), so it carries one more entry than SelectedCities.
type Request struct {
	SelectedCities []string `json:"selected_cities"`
	DaysPerCity    []int    `json:"days_per_city"`
	TimeWeight     int      `json:"time_weight"`
	StartDate      string   `json:"start_date"`
}

type Result struct {
	Solution  *optimizer.Solution   `json:"solution"`
	Legs      []travel.ScheduledLeg `json:"legs"`
	Itinerary *travel.Itinerary     `json:"itinerary"`
}

type Planner struct {
	Registry  *cities.Registry
	Corridors *corridors.Table
	Oracle    bookable.Oracle

	CachePath   string
	MaxCacheAge time.Duration

	Solver    *optimizer.Solver
	Builder   *costmatrix.Builder
	Assembler *bookable.Assembler
}

func NewPlanner(registry *cities.Registry, table *corridors.Table, oracle bookable.Oracle, cachePath string) *Planner {
	return &Planner{
		Registry:    registry,
		Corridors:   table,
		Oracle:      oracle,
		CachePath:   cachePath,
		MaxCacheAge: costmatrix.DefaultMaxCacheAge,
		Solver:      optimizer.NewSolver(),
		Builder:     costmatrix.NewBuilder(oracle),
		Assembler:   bookable.NewAssembler(oracle, table),
	}
}

// Plan turns a request into a bookable itinerary.
func (p *Planner) Plan(ctx context.Context, request Request) (*Result, error) {
	startDate, err := p.validate(request)
	if err != nil {
		return nil, err
	}

	matrix, err := p.loadOrBuildMatrix(ctx, startDate)
	if err != nil {
		return nil, err
	}

	routeCities := append([]string{p.Registry.Depot().Name}, request.SelectedCities...)

	subset, err := matrix.Filter(routeCities)
	if err != nil {
		return nil, err
	}

	graph, err := routegraph.Build(subset, p.Corridors, request.TimeWeight)
	if err != nil {
		return nil, err
	}

	solution, err := p.Solver.Solve(ctx, graph)
	if err != nil {
		return nil, err
	}

	// A total at or above the sentinel means the best path still crosses an
	// arc with no real pricing data - refuse to present that as a plan.
	if solution.TotalPrice >= routegraph.SentinelPrice {
		return nil, fmt.Errorf("%w: best route still uses an unpriced arc", travel.ErrInfeasible)
	}

	log.Info().
		Int64("weight", solution.TotalWeight).
		Float64("price", solution.TotalPrice).
		Float64("durationHours", solution.TotalDuration).
		Bool("exact", solution.Exact).
		Msg("Optimal route found")

	legs, err := scheduler.Schedule(startDate, solution.Cities, solution.Modes, request.DaysPerCity)
	if err != nil {
		return nil, err
	}

	itinerary, err := p.Assembler.Assemble(ctx, legs)
	if err != nil {
		return nil, err
	}

	itinerary.ID = primitive.NewObjectID().Hex()

	return &Result{
		Solution:  solution,
		Legs:      legs,
		Itinerary: itinerary,
	}, nil
}

func (p *Planner) validate(request Request) (time.Time, error) {
	if len(request.SelectedCities) == 0 {
		return time.Time{}, errors.New("no cities selected")
	}

	if request.TimeWeight < 0 {
		return time.Time{}, errors.New("time weight must be non-negative")
	}

	if len(request.DaysPerCity) != len(request.SelectedCities)+1 {
		return time.Time{}, fmt.Errorf(
			"days_per_city must cover the depot and every selected city (%d entries), got %d",
			len(request.SelectedCities)+1, len(request.DaysPerCity),
		)
	}

	depot := p.Registry.Depot().Name
	seen := []string{}

	for _, city := range request.SelectedCities {
		if city == depot {
			return time.Time{}, fmt.Errorf("%s is the depot and is always included", depot)
		}
		if slices.Contains(seen, city) {
			return time.Time{}, fmt.Errorf("city %s selected twice", city)
		}

		seen = append(seen, city)
	}

	startDate, err := time.Parse(travel.DateFormat, request.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}

	return startDate, nil
}

func (p *Planner) loadOrBuildMatrix(ctx context.Context, referenceDate time.Time) (*costmatrix.Matrix, error) {
	matrix, err := costmatrix.LoadCache(p.CachePath, p.MaxCacheAge)
	if err == nil {
		return matrix, nil
	}
	if !errors.Is(err, costmatrix.ErrCacheMiss) {
		return nil, err
	}

	log.Info().Msg("Rebuilding cost matrix from the pricing oracle")

	matrix, err = p.Builder.Build(ctx, p.Registry.All(), referenceDate)
	if err != nil {
		return nil, err
	}

	if err := costmatrix.SaveCache(p.CachePath, matrix); err != nil {
		return nil, err
	}

	return matrix, nil
}
