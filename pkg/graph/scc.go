package graph

import "sort"

// tarjanSCC finds strongly connected components using Tarjan's algorithm
type tarjanSCC struct {
	dg      *DependencyGraph
	index   int
	stack   []int64
	onStack map[int64]bool
	indices map[int64]int
	lowLink map[int64]int
	sccs    [][]int64
}

// Cycles returns the strongly connected components with more than one
// member, i.e. the complete membership of every dependency cycle. Each
// component is sorted by name and the component list is ordered by its
// smallest member, so output is stable across runs. Self-loops count as
// single-node cycles.
func (dg *DependencyGraph) Cycles() [][]string {
	t := &tarjanSCC{
		dg:      dg,
		onStack: make(map[int64]bool),
		indices: make(map[int64]int),
		lowLink: make(map[int64]int),
	}

	for _, name := range dg.order {
		id := dg.ids[name]
		if _, visited := t.indices[id]; !visited {
			t.strongConnect(id)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		members := make([]string, 0, len(scc))
		for _, id := range scc {
			members = append(members, dg.names[id])
		}
		sort.Strings(members)
		cycles = append(cycles, members)
	}
	for id := range dg.selfLoops {
		cycles = append(cycles, []string{dg.names[id]})
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })

	return cycles
}

// strongConnect performs the recursive Tarjan's algorithm
func (t *tarjanSCC) strongConnect(nodeID int64) {
	// Set the depth index for this node
	t.indices[nodeID] = t.index
	t.lowLink[nodeID] = t.index
	t.index++

	// Push node onto stack
	t.stack = append(t.stack, nodeID)
	t.onStack[nodeID] = true

	// Consider successors of node
	for _, successorID := range t.dg.successors(nodeID) {
		if _, visited := t.indices[successorID]; !visited {
			// Successor has not yet been visited; recurse on it
			t.strongConnect(successorID)
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.lowLink[successorID])
		} else if t.onStack[successorID] {
			// Successor is on stack and hence in the current SCC
			t.lowLink[nodeID] = min(t.lowLink[nodeID], t.indices[successorID])
		}
	}

	// If nodeID is a root node, pop the stack and create an SCC
	if t.lowLink[nodeID] == t.indices[nodeID] {
		scc := make([]int64, 0)
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == nodeID {
				break
			}
		}
		// Only components with more than one node are cycles
		if len(scc) > 1 {
			t.sccs = append(t.sccs, scc)
		}
	}
}
