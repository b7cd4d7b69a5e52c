// Package risk scores a verification subject on a bounded 0-20 scale with a
// transparent, reproducible breakdown for regulatory explainability.
package risk

import (
	"fmt"
	"strings"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/ubo"
)

// Tier is the ordinal risk classification driving compliance actions.
type Tier string

const (
	TierLow        Tier = "LOW"
	TierMedium     Tier = "MEDIUM"
	TierHigh       Tier = "HIGH"
	TierProhibited Tier = "PROHIBITED"
)

// CategoryCap bounds each sub-score; with four categories the total is 0-20.
const CategoryCap = 5

// Declared carries the customer-declared attributes supplied by the caller.
// Product and channel attributes are pass-through inputs, not derived from
// entity or identity data.
type Declared struct {
	Nationality             string `json:"nationality"`
	Occupation              string `json:"occupation,omitempty"`
	IndustrySector          string `json:"industry_sector,omitempty"`
	PEP                     bool   `json:"pep"`
	ProductType             string `json:"product_type,omitempty"`
	ExpectedMonthlyTurnover int64  `json:"expected_monthly_turnover,omitempty"` // NGN
	CashIntensity           string `json:"cash_intensity,omitempty"`            // LOW, MEDIUM, HIGH
	Channel                 string `json:"channel,omitempty"`                   // IN_PERSON, REMOTE, INTERMEDIARY
}

// Input aggregates every signal the engine considers. Entity and Verdict are
// nil for individual-only and corporate-only verifications respectively.
type Input struct {
	Entity   *entity.Record
	Verdict  *identity.Verdict
	UBOs     []ubo.Entry
	Declared Declared
}

// Assessment is the terminal artifact of the pipeline, immutable once
// produced. Drivers are appended in a fixed category-then-rule order so
// identical inputs always yield byte-identical output.
type Assessment struct {
	Score           int            `json:"score"`
	Category        Tier           `json:"category"`
	Breakdown       map[string]int `json:"breakdown"`
	Drivers         []string       `json:"drivers"`
	RequiredActions []string       `json:"required_actions"`
	PolicyVersion   string         `json:"policy_version"`
}

// Engine combines individual and entity signals into a bounded, categorized,
// explainable score. It holds no mutable state: Score is a pure function of
// its input and the policy.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Score computes the assessment. Sub-scores are evaluated in a fixed order
// (customer, geographic, product, channel), each clamped to 0-5, then summed.
func (e *Engine) Score(input Input) Assessment {
	var drivers []string

	customer := e.customerRisk(input, &drivers)
	geographic := e.geographicRisk(input, &drivers)
	product := e.productRisk(input, &drivers)
	channel := e.channelRisk(input, &drivers)

	drivers = append(drivers, e.dataQualityDrivers(input)...)

	total := customer + geographic + product + channel
	category := e.categorize(total)

	return Assessment{
		Score:    total,
		Category: category,
		Breakdown: map[string]int{
			"customer":   customer,
			"geographic": geographic,
			"product":    product,
			"channel":    channel,
		},
		Drivers:         drivers,
		RequiredActions: e.requiredActions(category, geographic, input),
		PolicyVersion:   e.policy.Version,
	}
}

// customerRisk covers declared PEP status (highest weight), industry sector,
// and entity-derived ownership transparency.
func (e *Engine) customerRisk(input Input, drivers *[]string) int {
	score := 0

	if input.Declared.PEP {
		if e.policy.isDomestic(input.Declared.Nationality) {
			score += 3
			*drivers = append(*drivers, "PEP status declared")
		} else {
			score += 4
			*drivers = append(*drivers, "PEP status declared (foreign)")
		}
	}

	if weight, listed := e.policy.sectorWeight(input.Declared.IndustrySector); listed && weight >= 3 {
		score += weight - 2
		*drivers = append(*drivers, fmt.Sprintf("higher-risk sector: %s", strings.ToUpper(input.Declared.IndustrySector)))
	}

	if input.Entity != nil {
		score++ // registered entities carry structural risk an individual does not
		if len(input.UBOs) == 0 && ownershipApplies(*input.Entity) {
			score += 2
			*drivers = append(*drivers, "unresolved beneficial ownership")
		} else if ubo.HasUnresolved(input.UBOs) {
			score++
			*drivers = append(*drivers, "indirect corporate shareholding unresolved")
		}
	}

	if input.Verdict != nil && !input.Verdict.Passed {
		score += 2
		*drivers = append(*drivers, "identity cross-validation failed")
	}

	return clamp(score)
}

// geographicRisk covers declared nationality against the FATF lists and the
// registered address when an entity record is present. Baseline domestic
// exposure scores 1 without a driver.
func (e *Engine) geographicRisk(input Input, drivers *[]string) int {
	nationality := input.Declared.Nationality

	if e.policy.onList(e.policy.BlackListJurisdictions, nationality) {
		*drivers = append(*drivers, fmt.Sprintf("FATF black-list jurisdiction: %s", strings.ToUpper(nationality)))
		return CategoryCap
	}

	score := 1
	if e.policy.onList(e.policy.GreyListJurisdictions, nationality) {
		score = 4
		*drivers = append(*drivers, fmt.Sprintf("FATF grey-list jurisdiction: %s", strings.ToUpper(nationality)))
	} else if nationality != "" && !e.policy.isDomestic(nationality) {
		score = 3
		*drivers = append(*drivers, "cross-border nationality")
	}

	if input.Entity != nil {
		if state := input.Entity.Profile.State; state != nil && e.policy.onList(e.policy.HigherRiskStates, *state) {
			score += 2
			*drivers = append(*drivers, fmt.Sprintf("registered address in higher-risk state: %s", strings.ToUpper(*state)))
		}
	}

	return clamp(score)
}

// productRisk is driven by declared transaction and product attributes.
func (e *Engine) productRisk(input Input, drivers *[]string) int {
	score := 1
	if input.Entity != nil {
		score = 2
	}

	switch {
	case input.Declared.ExpectedMonthlyTurnover > e.policy.HighTurnover:
		score = max(score, 4)
		*drivers = append(*drivers, fmt.Sprintf("high expected turnover (NGN %d/month)", input.Declared.ExpectedMonthlyTurnover))
	case input.Declared.ExpectedMonthlyTurnover > e.policy.ElevatedTurnover:
		score = max(score, 3)
		*drivers = append(*drivers, "elevated expected turnover")
	}

	switch strings.ToUpper(input.Declared.CashIntensity) {
	case "HIGH":
		score += 2
		*drivers = append(*drivers, "high cash intensity")
	case "MEDIUM":
		score++
		*drivers = append(*drivers, "medium cash intensity")
	}

	return clamp(score)
}

// channelRisk is a pass-through weight on the declared onboarding channel.
func (e *Engine) channelRisk(input Input, drivers *[]string) int {
	channel := strings.ToUpper(strings.TrimSpace(input.Declared.Channel))
	weight, ok := e.policy.ChannelWeights[channel]
	if !ok {
		weight = 2 // undeclared channel is treated as mildly elevated
	}
	if weight >= 3 {
		*drivers = append(*drivers, fmt.Sprintf("non-face-to-face onboarding channel: %s", channel))
	}
	return clamp(weight)
}

// dataQualityDrivers surfaces invariant warnings that never block processing,
// appended after every scored category in a fixed order.
func (e *Engine) dataQualityDrivers(input Input) []string {
	var drivers []string

	if total := statedOwnershipTotal(input); total > 100+e.policy.OwnershipSumTolerance {
		drivers = append(drivers, fmt.Sprintf("ownership percentages sum to %.1f%% (data quality)", total))
	}
	if input.Entity != nil && input.Entity.LowConfidence {
		drivers = append(drivers, "entity kind classified with low confidence")
	}

	return drivers
}

// statedOwnershipTotal sums every stated percentage on the registry record,
// including holdings below the beneficial-owner threshold. Only when no
// entity is present does it fall back to the derived owner list.
func statedOwnershipTotal(input Input) float64 {
	if input.Entity == nil {
		return ubo.TotalStatedPercentage(input.UBOs)
	}
	var total float64
	for _, p := range input.Entity.OwnershipPercentages() {
		total += p
	}
	return total
}

// categorize maps the total score to its tier. Monotonic: a higher score
// never yields a lower tier.
func (e *Engine) categorize(score int) Tier {
	switch {
	case score <= e.policy.LowMax:
		return TierLow
	case score <= e.policy.MediumMax:
		return TierMedium
	case score <= e.policy.HighMax:
		return TierHigh
	default:
		return TierProhibited
	}
}

func (e *Engine) requiredActions(category Tier, geographic int, input Input) []string {
	var actions []string

	switch category {
	case TierLow:
		actions = append(actions,
			"Standard Due Diligence (SDD)",
			"Annual account review")
	case TierMedium:
		actions = append(actions,
			"Enhanced Monitoring required",
			"Bi-annual account review")
	case TierHigh:
		actions = append(actions,
			"Enhanced Due Diligence (EDD) mandatory",
			"Senior management approval required",
			"Quarterly account review")
	case TierProhibited:
		actions = append(actions,
			"Onboarding prohibited pending compliance review",
			"Senior management and compliance sign-off required")
	}

	if input.Declared.PEP {
		actions = append(actions,
			"PEP approval workflow mandatory",
			"Ongoing PEP status monitoring")
	}
	if geographic >= CategoryCap {
		actions = append(actions, "Jurisdiction risk sign-off required")
	}

	return actions
}

// ownershipApplies reports whether the record's kind carries an ownership or
// control list at all, so an empty UBO list means unknown ownership rather
// than not-applicable.
func ownershipApplies(record entity.Record) bool {
	switch record.Kind {
	case entity.KindLimited, entity.KindPLC, entity.KindBusinessName,
		entity.KindNGO, entity.KindIncorporatedTrustees:
		return true
	default:
		return false
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > CategoryCap {
		return CategoryCap
	}
	return score
}
