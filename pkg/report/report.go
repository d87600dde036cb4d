package report

import (
	"time"

	"github.com/254carbon/graph-validator/pkg/catalog"
	"github.com/254carbon/graph-validator/pkg/graph"
	"github.com/254carbon/graph-validator/pkg/rules"
	"github.com/254carbon/graph-validator/pkg/validate"
)

// Metadata describes the run that produced a violations report
type Metadata struct {
	GeneratedAt     string `json:"generated_at"`
	CatalogServices int    `json:"catalog_services"`
	GraphNodes      int    `json:"graph_nodes"`
	GraphEdges      int    `json:"graph_edges"`
	TotalViolations int    `json:"total_violations"`
}

// Summary counts findings by severity. Passed is true iff there are no
// error-severity violations; warnings alone never fail a run.
type Summary struct {
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Passed   bool `json:"passed"`
}

// Report is the JSON violations report consumed by CI gates and dashboards
type Report struct {
	Metadata   Metadata             `json:"metadata"`
	Violations []validate.Violation `json:"violations"`
	Summary    Summary              `json:"summary"`
}

// ArtifactMetadata describes the serialized graph artifact
type ArtifactMetadata struct {
	GeneratedAt string `yaml:"generated_at"`
	TotalNodes  int    `yaml:"total_nodes"`
	TotalEdges  int    `yaml:"total_edges"`
}

// EdgePair is one internal dependency in the graph artifact
type EdgePair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// GraphArtifact is the YAML description of the dependency graph: services
// grouped by domain, internal edges, and the rules the graph was checked
// against. External edges are omitted; they exist only to drive the
// allowlist check.
type GraphArtifact struct {
	Metadata ArtifactMetadata    `yaml:"metadata"`
	Nodes    map[string][]string `yaml:"nodes"`
	Edges    []EdgePair          `yaml:"edges"`
	Rules    *rules.Rules        `yaml:"rules"`
}

// generatedAt prefers the catalog's own generation timestamp so the outputs
// line up with the catalog build; it falls back to the run time.
func generatedAt(cat *catalog.Catalog, now time.Time) string {
	if cat.Metadata.GeneratedAt != "" {
		return cat.Metadata.GeneratedAt
	}
	return now.UTC().Format(time.RFC3339)
}

// Assemble merges the violations into the final report with its severity
// summary
func Assemble(cat *catalog.Catalog, dg *graph.DependencyGraph, violations []validate.Violation, now time.Time) *Report {
	if violations == nil {
		violations = []validate.Violation{}
	}

	summary := Summary{}
	for _, v := range violations {
		switch v.Severity {
		case validate.SeverityError:
			summary.Errors++
		case validate.SeverityWarning:
			summary.Warnings++
		}
	}
	summary.Passed = summary.Errors == 0

	return &Report{
		Metadata: Metadata{
			GeneratedAt:     generatedAt(cat, now),
			CatalogServices: len(cat.Services),
			GraphNodes:      dg.NodeCount(),
			GraphEdges:      len(dg.InternalEdges()),
			TotalViolations: len(violations),
		},
		Violations: violations,
		Summary:    summary,
	}
}

// BuildArtifact produces the YAML graph description. Services without a
// domain land in the "unknown" bucket.
func BuildArtifact(cat *catalog.Catalog, dg *graph.DependencyGraph, r *rules.Rules, now time.Time) *GraphArtifact {
	nodes := make(map[string][]string)
	for _, svc := range cat.Services {
		domain := svc.Domain
		if domain == "" {
			domain = "unknown"
		}
		nodes[domain] = append(nodes[domain], svc.Name)
	}

	internal := dg.InternalEdges()
	edges := make([]EdgePair, 0, len(internal))
	for _, e := range internal {
		edges = append(edges, EdgePair{From: e.From, To: e.To})
	}

	return &GraphArtifact{
		Metadata: ArtifactMetadata{
			GeneratedAt: generatedAt(cat, now),
			TotalNodes:  dg.NodeCount(),
			TotalEdges:  len(internal),
		},
		Nodes: nodes,
		Edges: edges,
		Rules: r,
	}
}
