// Package optimizer solves the fixed-origin open-path travelling-salesman
// problem over the multimodal route graph: the minimum-weight path that
// starts at the depot (index 0) and visits every requested city exactly
// once, with no closing arc back to the depot.
package optimizer

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/routegraph"
	"github.com/wayplan/wayplan/pkg/travel"
)

// DefaultMaxExactCities bounds the subset DP: beyond this the O(n^2 * 2^n)
// table stops being tractable and the heuristic takes over.
const DefaultMaxExactCities = 18

const infiniteWeight = math.MaxInt64 / 4

// Solution is the chosen route. TotalPrice and TotalDuration are recomputed
// from the graph's original arc values, not from the integer weights the
// solver minimised.
type Solution struct {
	Order  []int
	Cities []travel.City
	Modes  []travel.TransportMode

	TotalWeight   int64
	TotalPrice    float64
	TotalDuration float64

	// Exact is false when the heuristic produced the route, which is then
	// the best path found rather than a proven optimum.
	Exact bool
}

type Solver struct {
	MaxExactCities int
	// Improvement passes the heuristic may run before settling.
	HeuristicBudget int
}

func NewSolver() *Solver {
	return &Solver{
		MaxExactCities:  DefaultMaxExactCities,
		HeuristicBudget: 200,
	}
}

// Solve picks the exact DP when the instance is tractable and the bounded
// local-search heuristic otherwise. It never fails just because some arcs
// carry the sentinel weight - it returns the least-bad path and leaves the
// feasibility judgement to the caller.
func (s *Solver) Solve(ctx context.Context, graph *routegraph.Graph) (*Solution, error) {
	n := graph.Size()
	if n == 0 {
		return nil, errors.New("route graph has no cities")
	}

	var order []int
	exact := true

	if n <= s.MaxExactCities {
		order = solveExact(graph)
	} else {
		log.Info().Int("cities", n).Int("limit", s.MaxExactCities).Msg("Instance above exact solver limit, using heuristic")
		order = solveHeuristic(ctx, graph, s.HeuristicBudget)
		exact = false
	}

	if order == nil {
		return nil, travel.ErrInfeasible
	}

	return buildSolution(graph, order, exact), nil
}

// solveExact is the Held-Karp subset DP. dp[mask][c] is the minimum weight
// of a path starting at city 0, visiting exactly the cities in mask (which
// always contains bit 0) and currently standing at c. Equal-cost choices
// resolve to the lexicographically smallest predecessor, so identical
// inputs always reproduce the same route.
func solveExact(graph *routegraph.Graph) []int {
	n := graph.Size()
	if n == 1 {
		return []int{0}
	}

	size := 1 << n

	dp := make([][]int64, size)
	parent := make([][]int16, size)
	for mask := range dp {
		dp[mask] = make([]int64, n)
		parent[mask] = make([]int16, n)
		for c := range dp[mask] {
			dp[mask][c] = infiniteWeight
			parent[mask][c] = -1
		}
	}

	dp[1][0] = 0

	for mask := 1; mask < size; mask++ {
		if mask&1 == 0 {
			continue
		}

		for last := 0; last < n; last++ {
			if mask&(1<<last) == 0 || dp[mask][last] >= infiniteWeight {
				continue
			}

			for next := 0; next < n; next++ {
				if mask&(1<<next) != 0 {
					continue
				}

				nextMask := mask | 1<<next
				candidate := dp[mask][last] + graph.Weights[last][next]

				if candidate < dp[nextMask][next] {
					dp[nextMask][next] = candidate
					parent[nextMask][next] = int16(last)
				}
			}
		}
	}

	full := size - 1
	bestLast := -1
	bestWeight := int64(infiniteWeight)

	for c := 0; c < n; c++ {
		if dp[full][c] < bestWeight {
			bestWeight = dp[full][c]
			bestLast = c
		}
	}

	if bestLast == -1 {
		return nil
	}

	// Walk the predecessor pointers back to the depot
	order := make([]int, n)
	mask := full
	c := bestLast

	for i := n - 1; i >= 0; i-- {
		order[i] = c

		previous := parent[mask][c]
		mask &^= 1 << c
		c = int(previous)
	}

	return order
}

func buildSolution(graph *routegraph.Graph, order []int, exact bool) *Solution {
	solution := &Solution{
		Order: order,
		Exact: exact,
	}

	for _, index := range order {
		solution.Cities = append(solution.Cities, graph.Cities[index])
	}

	for i := 0; i+1 < len(order); i++ {
		from := order[i]
		to := order[i+1]

		solution.Modes = append(solution.Modes, graph.Modes[from][to])
		solution.TotalWeight += graph.Weights[from][to]
		solution.TotalPrice += graph.Prices[from][to]
		solution.TotalDuration += graph.Durations[from][to]
	}

	return solution
}
