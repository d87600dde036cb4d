package validate

import (
	"fmt"

	"github.com/254carbon/graph-validator/pkg/graph"
	"github.com/254carbon/graph-validator/pkg/logging"
	"github.com/254carbon/graph-validator/pkg/rules"
)

// CheckCycles emits a single error violation when the graph contains any
// dependency cycle. Details carry the best-effort path from the DFS, the
// complete cycle membership from Tarjan, and all node names for context.
func CheckCycles(dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	logging.Debug("checking for dependency cycles")

	hasCycle, cyclePath := dg.HasCycle()
	if !hasCycle {
		return nil
	}

	logging.Error("cycle detected", "path", cyclePath)
	return []Violation{{
		Type:        TypeCycle,
		Severity:    SeverityError,
		Description: "Circular dependency detected in service graph",
		Details: map[string]any{
			"cycle_path":        cyclePath,
			"cycles":            dg.Cycles(),
			"affected_services": dg.Nodes(),
		},
	}}
}

// CheckExternalAllowlist flags every external edge whose target is not in
// the policy allowlist. These are warnings: they surface in the report but
// do not fail the run.
func CheckExternalAllowlist(dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	logging.Debug("validating external dependencies")

	var violations []Violation
	for _, e := range dg.Edges() {
		if e.Kind != graph.EdgeExternal {
			continue
		}
		if r.AllowsExternal(e.To) {
			continue
		}

		logging.Warn("unauthorized external dependency", "service", e.From, "dependency", e.To)
		violations = append(violations, Violation{
			Type:        TypeUnauthorizedExternal,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("External dependency not in allowed list: %s", e.To),
			Details: map[string]any{
				"service":          e.From,
				"dependency":       e.To,
				"allowed_external": r.ExternalAllowlist,
			},
		})
	}
	return violations
}

// CheckDirectionality enforces the layering rule: a service may depend on
// services in the same or a lower layer, never a strictly higher one.
// Edges where either endpoint's domain is missing from the layer map are
// skipped; the policy has no opinion on them.
func CheckDirectionality(dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	logging.Debug("validating directional cohesion")

	var violations []Violation
	for _, e := range dg.InternalEdges() {
		fromDomain := domains[e.From]
		toDomain := domains[e.To]
		if fromDomain == "" || toDomain == "" {
			continue
		}

		fromLayer, fromOK := r.DomainLayers[fromDomain]
		toLayer, toOK := r.DomainLayers[toDomain]
		if !fromOK || !toOK {
			continue
		}

		if fromLayer < toLayer {
			logging.Error("directional violation",
				"from", e.From, "fromDomain", fromDomain,
				"to", e.To, "toDomain", toDomain)
			violations = append(violations, Violation{
				Type:        TypeDirectional,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Reverse dependency: %s -> %s", fromDomain, toDomain),
				Details: map[string]any{
					"from_service": e.From,
					"to_service":   e.To,
					"from_domain":  fromDomain,
					"to_domain":    toDomain,
				},
			})
		}
	}
	return violations
}

// CheckForbiddenPatterns flags internal edges whose domain pairing matches a
// configured "domainA -> domainB" pattern. Independent of the layering
// check: a pair can be forbidden even when the layer numbers allow it.
func CheckForbiddenPatterns(dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	logging.Debug("validating against forbidden patterns")

	var violations []Violation
	for _, forbidden := range r.ForbiddenReverseEdges {
		if forbidden.Pattern == "" {
			continue
		}

		for _, e := range dg.InternalEdges() {
			fromDomain := domains[e.From]
			toDomain := domains[e.To]
			if fromDomain == "" || toDomain == "" {
				continue
			}

			edgePattern := fmt.Sprintf("%s -> %s", fromDomain, toDomain)
			if edgePattern != forbidden.Pattern {
				continue
			}

			logging.Error("forbidden pattern", "from", e.From, "to", e.To, "pattern", edgePattern)
			violations = append(violations, Violation{
				Type:        TypeForbiddenPattern,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Forbidden dependency pattern: %s", forbidden.Pattern),
				Details: map[string]any{
					"pattern":      forbidden.Pattern,
					"from_service": e.From,
					"to_service":   e.To,
					"from_domain":  fromDomain,
					"to_domain":    toDomain,
				},
			})
		}
	}
	return violations
}
