package verification

import (
	"time"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/risk"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/ubo"
	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

// Type selects which checks a verification runs.
type Type string

const (
	TypeIndividual Type = "INDIVIDUAL"
	TypeCorporate  Type = "CORPORATE"
	TypeComplete   Type = "COMPLETE"
)

// Status tracks a verification through its lifecycle. COMPLETED and
// FAILED are terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// transitions is the full set of legal status moves.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// Input captures what the caller submitted. Identity numbers are kept so a
// verification can be replayed or audited; they are never logged.
type Input struct {
	BVN                string        `json:"bvn,omitempty"`
	NIN                string        `json:"nin,omitempty"`
	RegistrationNumber string        `json:"registration_number,omitempty"`
	Declared           risk.Declared `json:"declared"`
}

// Result is the flattened outcome of a completed verification. Every field
// is serializable so the record round-trips through storage unchanged.
type Result struct {
	EntityKind       string            `json:"entity_kind,omitempty"`
	EntityName       string            `json:"entity_name,omitempty"`
	EntityStatus     string            `json:"entity_status,omitempty"`
	LowConfidence    bool              `json:"low_confidence,omitempty"`
	Identity         *identity.Verdict `json:"identity,omitempty"`
	BeneficialOwners []ubo.Entry       `json:"beneficial_owners,omitempty"`
	Risk             *risk.Assessment  `json:"risk,omitempty"`
	Provider         string            `json:"provider,omitempty"`
}

// Verification is the aggregate persisted per request.
type Verification struct {
	ID            string    `json:"id"`
	Type          Type      `json:"type"`
	Status        Status    `json:"status"`
	Input         Input     `json:"input"`
	Result        *Result   `json:"result,omitempty"`
	FailureCode   string    `json:"failure_code,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transition moves the verification to the next status, rejecting moves
// out of a terminal state.
func (v *Verification) Transition(to Status, at time.Time) error {
	for _, allowed := range transitions[v.Status] {
		if allowed == to {
			v.Status = to
			v.UpdatedAt = at
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeInvariantViolation, "cannot transition verification from %s to %s", v.Status, to)
}

// Terminal reports whether the verification has finished.
func (v *Verification) Terminal() bool {
	return v.Status == StatusCompleted || v.Status == StatusFailed
}
