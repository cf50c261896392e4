package model

// ViolationKind labels which of the validator's checks a violation came from.
type ViolationKind string

const (
	ViolationCenterConflict ViolationKind = "center-conflict"
	ViolationDependency     ViolationKind = "dependency"
	ViolationConformance    ViolationKind = "conformance"
	ViolationMaintenance    ViolationKind = "maintenance"
	ViolationReference      ViolationKind = "reference"
)

// Violation is one concrete constraint breach found by the validator.
type Violation struct {
	OrderID string
	Kind    ViolationKind
	Message string
}

// Report is the outcome of one validation pass. It accumulates every
// violation across all checks; the schedule is valid only when the list
// is empty.
type Report struct {
	Violations []Violation
}

// Valid reports whether the validated schedule satisfied every check.
func (r Report) Valid() bool { return len(r.Violations) == 0 }

// Messages flattens the violations into human-readable strings.
func (r Report) Messages() []string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message
	}
	return msgs
}
