package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/254carbon/graph-validator/pkg/logging"
)

// ForbiddenEdge is a single forbidden domain pairing, written as
// "domainA -> domainB"
type ForbiddenEdge struct {
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Rules is the architecture policy the dependency graph is checked against
type Rules struct {
	// ExternalAllowlist names the infrastructure components services may
	// declare as external dependencies
	ExternalAllowlist []string `json:"external_allowlist" yaml:"external_allowlist"`

	// DomainLayers assigns each domain an integer layer; higher-numbered
	// domains may depend on lower-numbered ones, not vice versa
	DomainLayers map[string]int `json:"domain_layers" yaml:"domain_layers"`

	// ForbiddenReverseEdges forbids specific domain pairs outright, even
	// when the layering would allow them
	ForbiddenReverseEdges []ForbiddenEdge `json:"forbidden_reverse_edges" yaml:"forbidden_reverse_edges"`
}

// AllowsExternal reports whether the external dependency name is allowlisted
func (r *Rules) AllowsExternal(name string) bool {
	for _, allowed := range r.ExternalAllowlist {
		if allowed == name {
			return true
		}
	}
	return false
}

// Default returns the built-in policy used when no rules file is present
func Default() *Rules {
	return &Rules{
		ExternalAllowlist: []string{
			"redis", "clickhouse", "postgresql", "mongodb",
			"elasticsearch", "kafka", "rabbitmq", "nginx",
		},
		DomainLayers: map[string]int{
			"infrastructure":  1,
			"shared":          2,
			"access":          3,
			"ingestion":       4,
			"data-processing": 5,
			"analytics":       6,
			"ml":              7,
			"observability":   8,
			"security":        9,
		},
		ForbiddenReverseEdges: []ForbiddenEdge{
			{Pattern: "access -> data-processing"},
			{Pattern: "shared -> domain-specific"},
		},
	}
}

// Load reads the rules file, YAML or JSON by extension. A missing file is
// not an error: the built-in defaults are returned instead.
func Load(path string) (*Rules, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Warn("rules file not found, using defaults", "path", path)
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}

	// YAML is a superset of JSON, so a single parser covers both formats
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", path, err)
	}

	logging.Debug("rules loaded",
		"allowlist", len(r.ExternalAllowlist),
		"layers", len(r.DomainLayers),
		"forbidden", len(r.ForbiddenReverseEdges))
	return &r, nil
}
