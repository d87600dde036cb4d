package graph

import (
	"fmt"

	"github.com/254carbon/graph-validator/pkg/catalog"
	"github.com/254carbon/graph-validator/pkg/logging"
)

// Build constructs the dependency graph from the catalog. Services and their
// dependency lists are walked in catalog order and edges are de-duplicated
// by exact (from, to, kind), so the same catalog always yields the same
// graph.
//
// Internal dependency names are added even when they do not correspond to a
// known service; dangling references are a catalog data-quality concern, not
// a graph one. External targets become nodes on first use.
func Build(cat *catalog.Catalog) *DependencyGraph {
	logging.Debug("building dependency graph")
	dg := NewDependencyGraph()

	for _, svc := range cat.Services {
		dg.AddNode(svc.Name)
	}

	type edgeKey struct {
		from, to string
		kind     EdgeKind
	}
	seen := make(map[edgeKey]bool)

	for _, svc := range cat.Services {
		for _, dep := range svc.Dependencies.Internal {
			key := edgeKey{svc.Name, dep, EdgeInternal}
			if seen[key] {
				continue
			}
			seen[key] = true
			dg.AddEdge(svc.Name, dep, EdgeInternal,
				fmt.Sprintf("%s depends on %s", svc.Name, dep))
		}
		for _, dep := range svc.Dependencies.External {
			key := edgeKey{svc.Name, dep, EdgeExternal}
			if seen[key] {
				continue
			}
			seen[key] = true
			dg.AddEdge(svc.Name, dep, EdgeExternal,
				fmt.Sprintf("%s depends on external %s", svc.Name, dep))
		}
	}

	logging.Info("built dependency graph",
		"nodes", dg.NodeCount(), "edges", len(dg.edges))
	return dg
}
