package graph

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDAGInvariants verifies with property-based testing that graphs built
// from acyclic inputs never report false cycles and always produce a full
// topological ordering.
func TestDAGInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Edges are encoded as integers and always point from a lower node
	// index to a higher one, so the generated graph is a DAG by
	// construction.
	buildDAG := func(nodeCount int, rawEdges []int) *DependencyGraph {
		dg := NewDependencyGraph()
		for i := 0; i < nodeCount; i++ {
			dg.AddNode(fmt.Sprintf("svc-%d", i))
		}
		for _, raw := range rawEdges {
			a := raw % nodeCount
			b := (raw / nodeCount) % nodeCount
			if a == b {
				continue
			}
			from, to := a, b
			if from > to {
				from, to = to, from
			}
			dg.AddEdge(fmt.Sprintf("svc-%d", from), fmt.Sprintf("svc-%d", to), EdgeInternal, "")
		}
		return dg
	}

	properties.Property("acyclic input never reports a cycle", prop.ForAll(
		func(nodeCount int, rawEdges []int) bool {
			dg := buildDAG(nodeCount, rawEdges)
			hasCycle, _ := dg.HasCycle()
			return !hasCycle
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("topological order is a permutation of all nodes", prop.ForAll(
		func(nodeCount int, rawEdges []int) bool {
			dg := buildDAG(nodeCount, rawEdges)
			order := dg.TopologicalOrder()
			if len(order) != dg.NodeCount() {
				return false
			}
			seen := make(map[string]bool, len(order))
			for _, name := range order {
				if seen[name] || !dg.HasNode(name) {
					return false
				}
				seen[name] = true
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.Property("topological order respects edge direction", prop.ForAll(
		func(nodeCount int, rawEdges []int) bool {
			dg := buildDAG(nodeCount, rawEdges)
			order := dg.TopologicalOrder()
			idx := make(map[string]int, len(order))
			for i, name := range order {
				idx[name] = i
			}
			for _, e := range dg.Edges() {
				if idx[e.From] > idx[e.To] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}
