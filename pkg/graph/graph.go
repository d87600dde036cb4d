package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// EdgeKind distinguishes dependencies on other catalog services from
// dependencies on outside infrastructure
type EdgeKind string

const (
	EdgeInternal EdgeKind = "internal" // target is another catalog service
	EdgeExternal EdgeKind = "external" // target is an infrastructure component
)

// Edge is a directed, typed dependency between two named nodes
type Edge struct {
	From        string
	To          string
	Kind        EdgeKind
	Description string
}

// DependencyGraph is the service dependency graph. Node identity is the
// service (or external component) name. Nodes keep their insertion order so
// traversals and reports are deterministic across runs.
type DependencyGraph struct {
	g         *simple.DirectedGraph
	ids       map[string]int64
	names     map[int64]string
	order     []string // node names in insertion order
	edges     []Edge
	selfLoops map[int64]bool // gonum's simple graph rejects self-edges
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		g:         simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		names:     make(map[int64]string),
		selfLoops: make(map[int64]bool),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (dg *DependencyGraph) AddNode(name string) {
	if _, exists := dg.ids[name]; exists {
		return
	}

	id := int64(len(dg.order))
	dg.ids[name] = id
	dg.names[id] = name
	dg.order = append(dg.order, name)
	dg.g.AddNode(simple.Node(id))
}

// HasNode reports whether the named node is in the graph
func (dg *DependencyGraph) HasNode(name string) bool {
	_, exists := dg.ids[name]
	return exists
}

// AddEdge adds a directed edge, implicitly adding both endpoints as nodes
// if they are absent
func (dg *DependencyGraph) AddEdge(from, to string, kind EdgeKind, description string) {
	dg.AddNode(from)
	dg.AddNode(to)

	dg.edges = append(dg.edges, Edge{From: from, To: to, Kind: kind, Description: description})

	fromID, toID := dg.ids[from], dg.ids[to]
	if fromID == toID {
		dg.selfLoops[fromID] = true
		return
	}
	if !dg.g.HasEdgeFromTo(fromID, toID) {
		dg.g.SetEdge(dg.g.NewEdge(simple.Node(fromID), simple.Node(toID)))
	}
}

// Nodes returns all node names in insertion order
func (dg *DependencyGraph) Nodes() []string {
	nodes := make([]string, len(dg.order))
	copy(nodes, dg.order)
	return nodes
}

// NodeCount returns the number of nodes in the graph
func (dg *DependencyGraph) NodeCount() int {
	return len(dg.order)
}

// Edges returns all edges in insertion order
func (dg *DependencyGraph) Edges() []Edge {
	edges := make([]Edge, len(dg.edges))
	copy(edges, dg.edges)
	return edges
}

// InternalEdges returns the edges whose target is another catalog service
func (dg *DependencyGraph) InternalEdges() []Edge {
	var internal []Edge
	for _, e := range dg.edges {
		if e.Kind == EdgeInternal {
			internal = append(internal, e)
		}
	}
	return internal
}

// successors returns the ids of a node's direct successors in ascending id
// order. Ids are assigned in insertion order, so this keeps traversal
// deterministic even though gonum iterates its adjacency maps randomly.
func (dg *DependencyGraph) successors(id int64) []int64 {
	var succ []int64
	iter := dg.g.From(id)
	for iter.Next() {
		succ = append(succ, iter.Node().ID())
	}
	sort.Slice(succ, func(i, j int) bool { return succ[i] < succ[j] })
	return succ
}

// HasCycle checks for cycles using a three-color depth-first search. Every
// node is used as a DFS root if still unvisited, so disconnected components
// are all covered. On the first cycle found it returns true and a
// best-effort path sliced from the DFS stack at the back edge.
func (dg *DependencyGraph) HasCycle() (bool, []string) {
	visited := make(map[int64]bool)
	onStack := make(map[int64]bool)
	var stack []string
	var cycle []string

	var visit func(id int64) bool
	visit = func(id int64) bool {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, dg.names[id])

		if dg.selfLoops[id] {
			cycle = append(cycle, dg.names[id])
			return true
		}

		for _, next := range dg.successors(id) {
			if !visited[next] {
				if visit(next) {
					return true
				}
			} else if onStack[next] {
				// Back edge: the cycle is the stack suffix starting at next
				name := dg.names[next]
				for i, n := range stack {
					if n == name {
						cycle = append(cycle, stack[i:]...)
						break
					}
				}
				return true
			}
		}

		onStack[id] = false
		stack = stack[:len(stack)-1]
		return false
	}

	for _, name := range dg.order {
		id := dg.ids[name]
		if !visited[id] {
			if visit(id) {
				return true, cycle
			}
		}
	}

	return false, nil
}

// TopologicalOrder returns the nodes in topological order using Kahn's
// algorithm. In-degree is the number of edges pointing at a node regardless
// of kind, so nodes nothing depends on come first. When a cycle prevents a
// complete ordering the result is empty, never partial.
func (dg *DependencyGraph) TopologicalOrder() []string {
	inDegree := make(map[string]int, len(dg.order))
	successors := make(map[string][]string, len(dg.order))
	for _, name := range dg.order {
		inDegree[name] = 0
	}
	for _, e := range dg.edges {
		inDegree[e.To]++
		successors[e.From] = append(successors[e.From], e.To)
	}

	var queue []string
	for _, name := range dg.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var result []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, next := range successors[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(dg.order) {
		// Cycle: the order is undefined
		return nil
	}

	return result
}
