package validate

import (
	"fmt"

	"github.com/254carbon/graph-validator/pkg/graph"
	"github.com/254carbon/graph-validator/pkg/logging"
	"github.com/254carbon/graph-validator/pkg/rules"
)

// CheckFunc is a single stateless policy check. Checks share no mutable
// state: they read the graph, the service domain index, and the rules, and
// return findings.
type CheckFunc func(*graph.DependencyGraph, map[string]string, *rules.Rules) []Violation

// Check pairs a check function with the name used in failure reporting
type Check struct {
	Name string
	Fn   CheckFunc
}

// Checks returns the standard check set in its fixed execution order
func Checks() []Check {
	return []Check{
		{Name: "cycles", Fn: CheckCycles},
		{Name: "external_deps", Fn: CheckExternalAllowlist},
		{Name: "directionality", Fn: CheckDirectionality},
		{Name: "forbidden_patterns", Fn: CheckForbiddenPatterns},
	}
}

// Run executes the standard checks against the graph and collects all
// findings into one flat list
func Run(dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	return RunChecks(Checks(), dg, domains, r)
}

// RunChecks executes the given checks in order. A panic inside one check is
// converted to a single validation_error finding and the remaining checks
// still run; one failing check never aborts the others.
func RunChecks(checks []Check, dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) []Violation {
	var violations []Violation
	for _, c := range checks {
		violations = append(violations, runCheck(c, dg, domains, r)...)
	}
	return violations
}

func runCheck(c Check, dg *graph.DependencyGraph, domains map[string]string, r *rules.Rules) (result []Violation) {
	defer func() {
		if p := recover(); p != nil {
			logging.Error("validation check failed", "check", c.Name, "error", fmt.Sprint(p))
			result = []Violation{{
				Type:        TypeValidationError,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Validation '%s' failed: %v", c.Name, p),
				Details:     map[string]any{},
			}}
		}
	}()

	return c.Fn(dg, domains, r)
}
