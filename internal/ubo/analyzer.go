// Package ubo derives ultimate beneficial owners from a normalized entity
// record per FATF Recommendation 24 semantics, broadened to cover proprietors
// and trustees for compliance reporting.
package ubo

import (
	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
)

// Basis states why a person appears in the UBO list.
type Basis string

const (
	BasisShareholding   Basis = "SHAREHOLDING"
	BasisProprietorship Basis = "PROPRIETORSHIP"
	BasisTrusteeship    Basis = "TRUSTEESHIP"
)

// OwnershipThreshold is the FATF ownership threshold for share-capital
// companies. Shareholders at or above it are UBOs.
const OwnershipThreshold = 25.0

// Entry is one derived beneficial owner or control person. Entries are
// recomputed from their source record and never persisted independently.
//
// Percentage is nil where equity percentages do not apply (trustees) or the
// registry left the split unstated for a multi-proprietor business name.
type Entry struct {
	Name       string   `json:"name"`
	Percentage *float64 `json:"percentage,omitempty"`
	Basis      Basis    `json:"basis"`

	// Verified is false for corporate shareholders whose own owners were
	// not resolved (single-level rule), unless the registry marked the
	// holding independently verified.
	Verified bool `json:"verified"`

	// Unresolved marks an indirect corporate holding that would need its
	// own registry lookup to reach natural persons.
	Unresolved bool `json:"unresolved,omitempty"`

	// RequiresReview marks entries a compliance officer must inspect, e.g.
	// a proprietor in a multi-owner business name with no stated split.
	RequiresReview bool `json:"requires_review,omitempty"`
}

// Analyze derives the beneficial-owner list for a record. Output preserves
// source-list order: audit trails must line up with the registry extract, so
// entries are never re-sorted by percentage.
//
// An empty ownership list yields an empty result; callers treat that as an
// unknown-ownership risk signal, not as an absence of risk.
func Analyze(record entity.Record) []Entry {
	switch details := record.Details().(type) {
	case entity.CompanyDetails:
		return analyzeShareholders(details.Shareholders)
	case entity.BusinessNameDetails:
		return analyzeProprietors(details.Proprietors)
	case entity.TrusteeDetails:
		return analyzeTrustees(details.Trustees)
	default:
		return nil
	}
}

// analyzeShareholders applies the 25% threshold. A corporate shareholder is
// included with its own percentage but its underlying owners are not
// resolved; it is flagged unresolved and stays unverified unless the record
// marks it independently verified.
func analyzeShareholders(shareholders []entity.Shareholder) []Entry {
	var entries []Entry
	for _, s := range shareholders {
		if s.Percentage == nil || *s.Percentage < OwnershipThreshold {
			continue
		}
		pct := *s.Percentage
		entries = append(entries, Entry{
			Name:           s.Name,
			Percentage:     &pct,
			Basis:          BasisShareholding,
			Verified:       s.Verified,
			Unresolved:     s.IsCorporate,
			RequiresReview: s.IsCorporate && !s.Verified,
		})
	}
	return entries
}

// analyzeProprietors includes every proprietor regardless of percentage: sole
// proprietors typically hold an undivided 100% interest and the FATF
// threshold does not meaningfully apply. A lone proprietor with no stated
// percentage is imputed full ownership; with multiple proprietors the split
// stays unknown and the entry is flagged for manual review.
func analyzeProprietors(proprietors []entity.Proprietor) []Entry {
	var entries []Entry
	for _, p := range proprietors {
		e := Entry{
			Name:  p.Name,
			Basis: BasisProprietorship,
		}
		switch {
		case p.Percentage != nil:
			pct := *p.Percentage
			e.Percentage = &pct
		case len(proprietors) == 1:
			pct := 100.0
			e.Percentage = &pct
		default:
			e.RequiresReview = true
		}
		entries = append(entries, e)
	}
	return entries
}

// analyzeTrustees includes every trustee unconditionally, with no percentage:
// trustees are control persons of interest, not equity owners, and their
// inclusion is a deliberate compliance broadening rather than an ownership
// claim.
func analyzeTrustees(trustees []entity.Trustee) []Entry {
	var entries []Entry
	for _, t := range trustees {
		entries = append(entries, Entry{
			Name:  t.Name,
			Basis: BasisTrusteeship,
		})
	}
	return entries
}

// TotalStatedPercentage sums the stated percentages across entries, used by
// the risk engine's ownership-sum data-quality check.
func TotalStatedPercentage(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if e.Percentage != nil {
			total += *e.Percentage
		}
	}
	return total
}

// HasUnresolved reports whether any entry is an unresolved corporate holding
// or requires manual review.
func HasUnresolved(entries []Entry) bool {
	for _, e := range entries {
		if e.Unresolved || e.RequiresReview {
			return true
		}
	}
	return false
}
