package validate

// Severity determines whether a violation blocks automated gating
type Severity string

const (
	SeverityError   Severity = "error"   // blocks the run (non-zero exit)
	SeverityWarning Severity = "warning" // advisory only
)

// ViolationType identifies the policy check a violation came from
type ViolationType string

const (
	TypeCycle                ViolationType = "cycle"
	TypeUnauthorizedExternal ViolationType = "unauthorized_external_dependency"
	TypeDirectional          ViolationType = "directional_violation"
	TypeForbiddenPattern     ViolationType = "forbidden_pattern"
	TypeValidationError      ViolationType = "validation_error"
)

// Violation is a structured policy finding. It carries only names and
// domains, never references into the live graph, so it serializes on its
// own.
type Violation struct {
	Type        ViolationType  `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}
