package optimizer

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/routegraph"
)

// solveHeuristic handles instances above the exact limit: a
// nearest-neighbour construction from the depot, then first-improvement
// 2-opt and single-city relocation passes until the budget runs out, no
// pass improves, or the context is cancelled. Always returns the best path
// found so far.
func solveHeuristic(ctx context.Context, graph *routegraph.Graph, budget int) []int {
	order := nearestNeighbourPath(graph)

	for pass := 0; pass < budget; pass++ {
		if ctx.Err() != nil {
			log.Warn().Int("passes", pass).Msg("Heuristic cancelled, returning best path so far")
			return order
		}

		improved := twoOptPass(graph, order) || relocatePass(graph, order)
		if !improved {
			break
		}
	}

	return order
}

func nearestNeighbourPath(graph *routegraph.Graph) []int {
	n := graph.Size()

	order := make([]int, 0, n)
	visited := make([]bool, n)

	current := 0
	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		next := -1
		var nextWeight int64

		for candidate := 0; candidate < n; candidate++ {
			if visited[candidate] {
				continue
			}

			weight := graph.Weights[current][candidate]
			if next == -1 || weight < nextWeight {
				next = candidate
				nextWeight = weight
			}
		}

		order = append(order, next)
		visited[next] = true
		current = next
	}

	return order
}

func pathWeight(graph *routegraph.Graph, order []int) int64 {
	var total int64
	for i := 0; i+1 < len(order); i++ {
		total += graph.Weights[order[i]][order[i+1]]
	}

	return total
}

// twoOptPass reverses one segment (never including the depot) if that
// shortens the path. Arc weights are asymmetric, so the delta is evaluated
// by recosting the candidate path rather than by the symmetric 2-opt
// shortcut.
func twoOptPass(graph *routegraph.Graph, order []int) bool {
	n := len(order)
	best := pathWeight(graph, order)

	for i := 1; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			reverseSegment(order, i, j)

			if pathWeight(graph, order) < best {
				return true
			}

			reverseSegment(order, i, j)
		}
	}

	return false
}

// relocatePass moves one city (never the depot) to another position if that
// shortens the path.
func relocatePass(graph *routegraph.Graph, order []int) bool {
	n := len(order)
	best := pathWeight(graph, order)

	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}

			candidate := relocate(order, i, j)

			if pathWeight(graph, candidate) < best {
				copy(order, candidate)
				return true
			}
		}
	}

	return false
}

func reverseSegment(order []int, i int, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}

func relocate(order []int, from int, to int) []int {
	candidate := make([]int, 0, len(order))

	for index, city := range order {
		if index != from {
			candidate = append(candidate, city)
		}
	}

	moved := order[from]
	candidate = append(candidate[:to], append([]int{moved}, candidate[to:]...)...)

	return candidate
}
