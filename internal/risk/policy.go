package risk

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Policy is the versioned scoring configuration consumed by the engine.
// Sector weights, jurisdiction lists, and tier cut points live here so
// scoring policy can change without touching engine logic.
type Policy struct {
	Version string `mapstructure:"version"`

	// DomesticCountry anchors the geographic baseline. Comparisons are
	// case-insensitive.
	DomesticCountry string `mapstructure:"domestic_country"`

	// HighRiskSectors maps an industry sector to its 0-5 weight.
	HighRiskSectors map[string]int `mapstructure:"high_risk_sectors"`

	// GreyListJurisdictions and BlackListJurisdictions follow the FATF
	// lists. A black-list hit pins the geographic sub-score to its cap.
	GreyListJurisdictions  []string `mapstructure:"grey_list_jurisdictions"`
	BlackListJurisdictions []string `mapstructure:"black_list_jurisdictions"`

	// HigherRiskStates are registered-address states treated as elevated.
	HigherRiskStates []string `mapstructure:"higher_risk_states"`

	// Tier cut points on the 0-20 total: score <= LowMax is LOW,
	// <= MediumMax is MEDIUM, <= HighMax is HIGH, above is PROHIBITED.
	LowMax    int `mapstructure:"low_max"`
	MediumMax int `mapstructure:"medium_max"`
	HighMax   int `mapstructure:"high_max"`

	// Monthly turnover thresholds in NGN for the product sub-score.
	ElevatedTurnover int64 `mapstructure:"elevated_turnover"`
	HighTurnover     int64 `mapstructure:"high_turnover"`

	// ChannelWeights maps an onboarding channel to its 0-5 weight.
	ChannelWeights map[string]int `mapstructure:"channel_weights"`

	// OwnershipSumTolerance is the allowance, in percentage points, before
	// stated ownership summing above 100 is flagged as a data-quality
	// issue.
	OwnershipSumTolerance float64 `mapstructure:"ownership_sum_tolerance"`
}

// DefaultPolicy returns the compiled-in scoring policy. Values mirror the
// FATF/CBN guidance the service was calibrated against.
func DefaultPolicy() Policy {
	return Policy{
		Version:         "2025-01",
		DomesticCountry: "NIGERIA",
		HighRiskSectors: map[string]int{
			"SALARY_EARNER":   1,
			"RETAIL":          1,
			"CONSULTANCY":     2,
			"SERVICES":        2,
			"NGO":             3,
			"EXPORT":          3,
			"IMPORT_EXPORT":   3,
			"LOGISTICS":       3,
			"REAL_ESTATE":     4,
			"ART_ANTIQUITIES": 4,
			"GOLD_TRADING":    5,
			"PRECIOUS_METALS": 5,
			"CRYPTOCURRENCY":  5,
			"MONEY_TRANSFER":  5,
			"OIL_GAS":         5,
			"GAMING_BETTING":  5,
			"CASH_INTENSIVE":  5,
		},
		GreyListJurisdictions: []string{
			"BULGARIA", "CAMEROON", "CROATIA", "VIETNAM", "TURKEY",
			"SOUTH_AFRICA", "UGANDA", "UAE", "SENEGAL", "MOZAMBIQUE",
		},
		BlackListJurisdictions: []string{"IRAN", "NORTH_KOREA", "MYANMAR"},
		HigherRiskStates:       []string{"BORNO", "YOBE", "ZAMFARA", "KATSINA"},
		LowMax:                 7,
		MediumMax:              13,
		HighMax:                17,
		ElevatedTurnover:       5_000_000,
		HighTurnover:           10_000_000,
		ChannelWeights: map[string]int{
			"IN_PERSON":    1,
			"REMOTE":       3,
			"INTERMEDIARY": 4,
		},
		OwnershipSumTolerance: 1.0,
	}
}

// LoadPolicy reads a YAML policy file over the compiled-in defaults. An empty
// path returns the defaults unchanged.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Policy{}, fmt.Errorf("read risk policy %s: %w", path, err)
	}
	if err := v.Unmarshal(&policy); err != nil {
		return Policy{}, fmt.Errorf("parse risk policy %s: %w", path, err)
	}
	if err := policy.validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid risk policy %s: %w", path, err)
	}
	return policy, nil
}

func (p Policy) validate() error {
	if p.LowMax <= 0 || p.MediumMax <= p.LowMax || p.HighMax <= p.MediumMax {
		return fmt.Errorf("tier cut points must be strictly increasing, got %d/%d/%d", p.LowMax, p.MediumMax, p.HighMax)
	}
	if p.DomesticCountry == "" {
		return fmt.Errorf("domestic_country is required")
	}
	return nil
}

// sectorWeight resolves a declared industry sector, case-insensitively.
func (p Policy) sectorWeight(sector string) (int, bool) {
	w, ok := p.HighRiskSectors[strings.ToUpper(strings.TrimSpace(sector))]
	return w, ok
}

func (p Policy) isDomestic(country string) bool {
	return strings.EqualFold(strings.TrimSpace(country), p.DomesticCountry)
}

func (p Policy) onList(list []string, value string) bool {
	needle := strings.ToUpper(strings.TrimSpace(value))
	for _, item := range list {
		if needle == strings.ToUpper(item) {
			return true
		}
	}
	return false
}
