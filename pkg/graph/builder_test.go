package graph

import (
	"testing"

	"github.com/254carbon/graph-validator/pkg/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Services: []catalog.Service{
			{
				Name:   "gateway",
				Domain: "access",
				Dependencies: catalog.Dependencies{
					Internal: []string{"auth-service"},
					External: []string{"redis"},
				},
			},
			{
				Name:   "auth-service",
				Domain: "access",
				Dependencies: catalog.Dependencies{
					Internal: []string{"user-service"},
					External: []string{"postgresql"},
				},
			},
			{
				Name:   "user-service",
				Domain: "data-processing",
				Dependencies: catalog.Dependencies{
					External: []string{"redis"},
				},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	dg := Build(testCatalog())

	// 3 services + 2 external nodes
	if dg.NodeCount() != 5 {
		t.Errorf("Expected 5 nodes, got %d: %v", dg.NodeCount(), dg.Nodes())
	}

	if len(dg.Edges()) != 5 {
		t.Errorf("Expected 5 edges, got %d", len(dg.Edges()))
	}
	if len(dg.InternalEdges()) != 2 {
		t.Errorf("Expected 2 internal edges, got %d", len(dg.InternalEdges()))
	}

	if !dg.HasNode("redis") || !dg.HasNode("postgresql") {
		t.Error("External targets should become graph nodes")
	}
}

func TestBuildDanglingInternalReference(t *testing.T) {
	cat := &catalog.Catalog{
		Services: []catalog.Service{
			{
				Name: "gateway",
				Dependencies: catalog.Dependencies{
					Internal: []string{"no-such-service"},
				},
			},
		},
	}

	// Dangling internal names still produce a node and an edge; catalog
	// data quality is not this layer's concern
	dg := Build(cat)
	if !dg.HasNode("no-such-service") {
		t.Error("Dangling internal dependency should be added as a node")
	}
	if len(dg.InternalEdges()) != 1 {
		t.Errorf("Expected 1 internal edge, got %d", len(dg.InternalEdges()))
	}
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	cat := &catalog.Catalog{
		Services: []catalog.Service{
			{
				Name: "gateway",
				Dependencies: catalog.Dependencies{
					Internal: []string{"auth-service", "auth-service"},
					External: []string{"redis", "redis"},
				},
			},
			{Name: "auth-service"},
		},
	}

	dg := Build(cat)
	if len(dg.Edges()) != 2 {
		t.Errorf("Expected duplicate edges to be removed, got %d edges", len(dg.Edges()))
	}
}

func TestBuildDeterministic(t *testing.T) {
	first := Build(testCatalog())
	second := Build(testCatalog())

	firstNodes := first.Nodes()
	secondNodes := second.Nodes()
	if len(firstNodes) != len(secondNodes) {
		t.Fatalf("Node counts differ: %d vs %d", len(firstNodes), len(secondNodes))
	}
	for i := range firstNodes {
		if firstNodes[i] != secondNodes[i] {
			t.Fatalf("Node order differs: %v vs %v", firstNodes, secondNodes)
		}
	}

	firstEdges := first.Edges()
	secondEdges := second.Edges()
	for i := range firstEdges {
		if firstEdges[i] != secondEdges[i] {
			t.Fatalf("Edge order differs at %d: %v vs %v", i, firstEdges[i], secondEdges[i])
		}
	}
}
