package identity

import (
	"fmt"
	"sort"
	"strings"
)

// Assertion is one independently sourced identity lookup for a claimed
// person. FullName is the only required field; the rest are compared when
// both sides carry them.
type Assertion struct {
	Source      string // e.g. "bvn", "nin"
	FullName    string
	DateOfBirth string // ISO-8601 calendar date, empty when not reported
	PhoneNumber string
	Address     string
	Gender      string
}

// Verdict is the immutable outcome of reconciling two assertions. It is
// computed once per verification request and never mutated afterward.
type Verdict struct {
	Passed           bool     `json:"passed"`
	Confidence       int      `json:"confidence"` // 0-100
	MismatchedFields []string `json:"mismatched_fields"`
	Explanation      string   `json:"explanation"`
}

// MatchThreshold is the minimum name-token agreement (0-100) for a pass.
const MatchThreshold = 70

// honorifics stripped before name comparison. Includes the titles common in
// Nigerian registry data.
var honorifics = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "miss": {}, "dr": {}, "prof": {},
	"engr": {}, "barr": {}, "chief": {}, "alhaji": {}, "alhaja": {},
	"hajia": {}, "rev": {}, "pastor": {}, "sir": {}, "dame": {}, "hon": {},
}

// Reconcile compares two identity assertions for the same claimed person and
// returns a deterministic pass/fail verdict with confidence and explanation.
//
// Names are compared by token-set agreement rather than exact equality, so
// "OKORO Precious Chidinma" and "Precious Chidinma Okoro" agree fully. A
// date-of-birth mismatch fails the verdict outright regardless of name
// confidence: dates are never a fuzzy signal. Reconcile(a, b) and
// Reconcile(b, a) produce the same Passed and Confidence.
func Reconcile(a, b Assertion) Verdict {
	aTokens := nameTokens(a.FullName)
	bTokens := nameTokens(b.FullName)

	if len(aTokens) == 0 || len(bTokens) == 0 {
		return Verdict{
			Passed:           false,
			Confidence:       0,
			MismatchedFields: []string{"full_name"},
			Explanation:      "reconciliation impossible: at least one source reported no name",
		}
	}

	confidence := tokenAgreement(aTokens, bTokens)

	var mismatched []string
	if confidence < 100 {
		mismatched = append(mismatched, "full_name")
	}

	dobMismatch := false
	if a.DateOfBirth != "" && b.DateOfBirth != "" &&
		strings.TrimSpace(a.DateOfBirth) != strings.TrimSpace(b.DateOfBirth) {
		dobMismatch = true
		mismatched = append(mismatched, "date_of_birth")
	}
	if bothDiffer(a.PhoneNumber, b.PhoneNumber) {
		mismatched = append(mismatched, "phone_number")
	}
	if bothDiffer(a.Address, b.Address) {
		mismatched = append(mismatched, "address")
	}
	if bothDiffer(a.Gender, b.Gender) {
		mismatched = append(mismatched, "gender")
	}

	passed := confidence >= MatchThreshold && !dobMismatch

	return Verdict{
		Passed:           passed,
		Confidence:       confidence,
		MismatchedFields: mismatched,
		Explanation:      explain(passed, confidence, dobMismatch, mismatched),
	}
}

// nameTokens normalizes a full name and splits it into comparison tokens:
// case-folded, whitespace-collapsed, honorifics and single-letter initials
// dropped.
func nameTokens(name string) []string {
	cleaned := strings.NewReplacer(",", " ", ".", " ", "'", "").Replace(name)
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(cleaned)) {
		if len(tok) < 2 {
			continue
		}
		if _, isTitle := honorifics[tok]; isTitle {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// tokenAgreement scales to 0-100 the fraction of tokens from the smaller set
// found in the larger set. Order-independent, symmetric in its arguments.
func tokenAgreement(a, b []string) int {
	smaller, larger := toSet(a), toSet(b)
	if len(larger) < len(smaller) {
		smaller, larger = larger, smaller
	}
	if len(smaller) == 0 {
		return 0
	}
	matched := 0
	for tok := range smaller {
		if _, ok := larger[tok]; ok {
			matched++
		}
	}
	return matched * 100 / len(smaller)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// bothDiffer reports a mismatch only when both sources stated the field.
func bothDiffer(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && !strings.EqualFold(a, b)
}

func explain(passed bool, confidence int, dobMismatch bool, mismatched []string) string {
	switch {
	case passed && len(mismatched) == 0:
		return fmt.Sprintf("all compared fields agree; name agreement %d%%", confidence)
	case passed:
		return fmt.Sprintf("identity confirmed with %d%% name agreement; non-blocking differences in %s", confidence, fieldList(mismatched))
	case dobMismatch:
		return fmt.Sprintf("date of birth differs between sources; verdict failed despite %d%% name agreement", confidence)
	default:
		return fmt.Sprintf("name agreement %d%% is below the %d%% threshold; differences in %s", confidence, MatchThreshold, fieldList(mismatched))
	}
}

func fieldList(fields []string) string {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
