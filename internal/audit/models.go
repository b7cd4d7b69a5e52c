package audit

import "time"

// Event is emitted from domain logic to capture key actions in a
// verification's lifecycle. Keep it transport-agnostic so stores and
// sinks can fan out.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	VerificationID string    `json:"verification_id"`
	Action         string    `json:"action"`
	Provider       string    `json:"provider,omitempty"`
	Outcome        string    `json:"outcome,omitempty"`
	Detail         string    `json:"detail,omitempty"`
}

// Lifecycle actions recorded against a verification.
const (
	ActionRequested       = "verification.requested"
	ActionProviderLookup  = "verification.provider_lookup"
	ActionIdentityChecked = "verification.identity_checked"
	ActionRiskAssessed    = "verification.risk_assessed"
	ActionCompleted       = "verification.completed"
	ActionFailed          = "verification.failed"
)
