package schemas

// -- Diagnostics --

// Severity grades a diagnostic emitted during resolution.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// DiagnosticCode is a stable, machine-readable identifier for a class of
// resolution problem. Codes are part of the API; callers key UI behavior
// off them.
type DiagnosticCode string

const (
	CodeUnknownOwner       DiagnosticCode = "unknown_owner"
	CodeUnknownRequirement DiagnosticCode = "unknown_requirement"
	CodeUnknownReward      DiagnosticCode = "unknown_reward"
	CodeUnknownTimeline    DiagnosticCode = "unknown_timeline"
	CodeUnknownContent     DiagnosticCode = "unknown_content"
	CodeUnknownSubPuzzle   DiagnosticCode = "unknown_sub_puzzle"
	CodeSelfContainer      DiagnosticCode = "self_container"
	CodeDuplicateID        DiagnosticCode = "duplicate_id"
	CodeMissingID          DiagnosticCode = "missing_id"
	CodeMissingName        DiagnosticCode = "missing_name"
)

// Diagnostic is a structured record of a non-fatal problem found while
// resolving a case. Investigation data is edited live and transiently
// contains dangling references, so these are routine, not exceptional.
type Diagnostic struct {
	Severity Severity          `json:"severity"`
	Code     DiagnosticCode    `json:"code"`
	Message  string            `json:"message"`
	Context  map[string]string `json:"context,omitempty"`
}
