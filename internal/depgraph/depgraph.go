// Package depgraph orders work orders so that every dependency precedes
// its dependents, and turns cycles into a typed error naming every stuck
// order.
package depgraph

import (
	"github.com/vk/reflowgo/internal/model"
)

// Sort returns the orders in topological order using Kahn's algorithm.
//
// Ties among simultaneously-ready orders break by input position, which
// makes the output deterministic but not priority-aware: independent
// branches on the same work center are later serialized purely by their
// relative position here.
//
// A depends_on id that resolves to no known order is a hard
// *model.UnknownDependencyError. A cycle is a *model.CycleError naming
// every order that never reached in-degree zero.
func Sort(orders []model.WorkOrder) ([]model.WorkOrder, error) {
	position := make(map[string]int, len(orders))
	for i, o := range orders {
		position[o.ID] = i
	}

	// dependents[i] lists the input positions of orders that depend on
	// order i; inDegree counts unmet dependencies per order.
	dependents := make([][]int, len(orders))
	inDegree := make([]int, len(orders))
	for i, o := range orders {
		for _, depID := range o.DependsOn {
			depPos, ok := position[depID]
			if !ok {
				return nil, &model.UnknownDependencyError{OrderID: o.ID, DependencyID: depID}
			}
			dependents[depPos] = append(dependents[depPos], i)
			inDegree[i]++
		}
	}

	// ready holds input positions of in-degree-zero orders, kept sorted
	// ascending so the earliest input position is always dequeued first.
	var ready []int
	for i := range orders {
		if inDegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	sorted := make([]model.WorkOrder, 0, len(orders))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		sorted = append(sorted, orders[next])

		for _, dep := range dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}

	if len(sorted) < len(orders) {
		var stuck []string
		for i, o := range orders {
			if inDegree[i] > 0 {
				stuck = append(stuck, o.ID)
			}
		}
		return nil, &model.CycleError{IDs: stuck}
	}
	return sorted, nil
}

// insertSorted inserts v into the ascending slice xs, preserving order.
func insertSorted(xs []int, v int) []int {
	i := 0
	for i < len(xs) && xs[i] < v {
		i++
	}
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = v
	return xs
}
