// Package provider defines the contract with external verification providers
// and the adapters implementing it. Providers return semi-structured records;
// all interpretation happens in the normalization pipeline.
package provider

import (
	"context"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
)

// Provider is the contract every verification source must implement. It is
// the only blocking collaborator in the pipeline; implementations must honor
// context deadlines.
type Provider interface {
	// VerifyBVN resolves a Bank Verification Number to an identity
	// assertion.
	VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error)

	// VerifyNIN resolves a National Identification Number to an identity
	// assertion.
	VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error)

	// LookupEntity fetches the raw corporate-registry record for a
	// registration number. The payload keeps provider-specific field
	// names; entity.Normalize resolves them through alias tables.
	LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error)

	// Name identifies the provider in results and logs.
	Name() string
}

const (
	// IdentityNumberLength is the digit count of both BVN and NIN.
	IdentityNumberLength = 11

	// MinRegNumberLength is the shortest registration number accepted
	// before calling out to the registry.
	MinRegNumberLength = 5
)

// ValidIdentityNumber reports whether s is a well-formed BVN/NIN. Malformed
// numbers are rejected locally so the provider is never dialed for them.
func ValidIdentityNumber(s string) bool {
	if len(s) != IdentityNumberLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
