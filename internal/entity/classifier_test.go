package entity

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

type ClassifierSuite struct {
	suite.Suite
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

// TestDescriptorClassification verifies the free-text type descriptor rules,
// including the specific-before-generic ordering.
func (s *ClassifierSuite) TestDescriptorClassification() {
	cases := []struct {
		descriptor string
		want       Kind
	}{
		{"PRIVATE COMPANY LIMITED BY SHARES", KindLimited},
		{"Limited by Guarantee", KindLimited},
		{"LTD", KindLimited},
		{"PUBLIC LIMITED COMPANY", KindPLC},
		{"Plc", KindPLC},
		{"BUSINESS NAME", KindBusinessName},
		{"Sole Proprietorship Business Name", KindBusinessName},
		{"ENTERPRISE", KindBusinessName},
		{"INCORPORATED TRUSTEES", KindIncorporatedTrustees},
		{"INCORPORATED TRUSTEES (NGO)", KindIncorporatedTrustees},
		{"Non-Governmental Organisation", KindNGO},
	}
	for _, tc := range cases {
		s.Run(tc.descriptor, func() {
			rec, err := Normalize(RawRecord{
				"companyName": "TEST ENTITY",
				"companyType": tc.descriptor,
			})
			s.Require().NoError(err)
			s.Equal(tc.want, rec.Kind)
			s.False(rec.LowConfidence)
		})
	}
}

// TestPrefixFallback verifies classification from the registration-number
// prefix when the descriptor is absent or unrecognized.
func (s *ClassifierSuite) TestPrefixFallback() {
	s.Run("BN prefix", func() {
		rec, err := Normalize(RawRecord{"bnNumber": "BN999888"})
		s.Require().NoError(err)
		s.Equal(KindBusinessName, rec.Kind)
		s.False(rec.LowConfidence)
	})

	s.Run("IT prefix", func() {
		rec, err := Normalize(RawRecord{"itNumber": "IT445566"})
		s.Require().NoError(err)
		s.Equal(KindIncorporatedTrustees, rec.Kind)
	})

	s.Run("RC prefix", func() {
		rec, err := Normalize(RawRecord{"rcNumber": "RC123456", "companyType": "something unrecognizable"})
		s.Require().NoError(err)
		s.Equal(KindLimited, rec.Kind)
		s.False(rec.LowConfidence)
	})

	s.Run("descriptor beats prefix", func() {
		// A business-name descriptor wins even against an RC number.
		rec, err := Normalize(RawRecord{"rcNumber": "RC123456", "companyType": "BUSINESS NAME"})
		s.Require().NoError(err)
		s.Equal(KindBusinessName, rec.Kind)
	})
}

// TestDefaultClassification verifies the low-confidence LIMITED fallback.
func (s *ClassifierSuite) TestDefaultClassification() {
	rec, err := Normalize(RawRecord{"companyName": "MYSTERY OUTFIT"})
	s.Require().NoError(err)
	s.Equal(KindLimited, rec.Kind)
	s.True(rec.LowConfidence)
}

// TestUnclassifiablePayload verifies the only hard failure: no name and no
// registration number.
func (s *ClassifierSuite) TestUnclassifiablePayload() {
	_, err := Normalize(RawRecord{"companyType": "LIMITED"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeClassification))
}

// TestFieldAliases verifies that snake_case and camelCase provider payloads
// normalize identically.
func (s *ClassifierSuite) TestFieldAliases() {
	camel, err := Normalize(RawRecord{
		"companyName":       "ALPHA TRADING LIMITED",
		"rcNumber":          "RC123456",
		"companyType":       "LIMITED BY SHARES",
		"status":            "ACTIVE",
		"incorporationDate": "2018-06-12",
	})
	s.Require().NoError(err)

	snake, err := Normalize(RawRecord{
		"company_name":       "ALPHA TRADING LIMITED",
		"rc_number":          "RC123456",
		"company_type":       "LIMITED BY SHARES",
		"status":             "ACTIVE",
		"incorporation_date": "2018-06-12",
	})
	s.Require().NoError(err)

	s.Equal(camel.Kind, snake.Kind)
	s.Equal(camel.Profile, snake.Profile)
}

// TestStatusNormalization maps provider status strings onto the closed set.
func (s *ClassifierSuite) TestStatusNormalization() {
	cases := []struct {
		raw  string
		want Status
	}{
		{"ACTIVE", StatusActive},
		{"registered", StatusActive},
		{"DISSOLVED", StatusInactive},
		{"Struck Off", StatusInactive},
		{"pending something", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tc := range cases {
		s.Equal(tc.want, normalizeStatus(tc.raw))
	}
}

// TestShareholderExtraction covers corporate flags and percentage coercion
// from both numeric and string payloads.
func (s *ClassifierSuite) TestShareholderExtraction() {
	rec, err := Normalize(RawRecord{
		"company_name": "BETA INDUSTRIES PLC",
		"company_type": "PUBLIC LIMITED COMPANY",
		"share_capital": "50000000",
		"shareholders": []any{
			map[string]any{"name": "GAMMA HOLDINGS LIMITED", "percentage": 55.0, "type": "CORPORATE", "rc_number": "RC456789"},
			map[string]any{"name": "Chukwuma Okafor", "percentage": "25", "type": "INDIVIDUAL"},
		},
	})
	s.Require().NoError(err)
	s.Equal(KindPLC, rec.Kind)

	company, ok := rec.Company()
	s.Require().True(ok)
	s.Require().NotNil(company.ShareCapital)
	s.Equal(50000000.0, *company.ShareCapital)

	s.Require().Len(company.Shareholders, 2)
	corporate := company.Shareholders[0]
	s.True(corporate.IsCorporate)
	s.Require().NotNil(corporate.CorporateRegistration)
	s.Equal("RC456789", *corporate.CorporateRegistration)

	individual := company.Shareholders[1]
	s.False(individual.IsCorporate)
	s.Require().NotNil(individual.Percentage)
	s.Equal(25.0, *individual.Percentage)
}

// TestOptionalFieldsStayNil verifies absent optionals come back nil, never
// pointers to empty strings.
func (s *ClassifierSuite) TestOptionalFieldsStayNil() {
	rec, err := Normalize(RawRecord{"companyName": "BARE MINIMUM LTD", "companyType": "LTD"})
	s.Require().NoError(err)
	s.Nil(rec.Profile.IncorporationDate)
	s.Nil(rec.Profile.RegisteredAddress)
	s.Nil(rec.Profile.State)
}

// TestNormalizeIdempotent verifies repeated normalization of the same raw
// payload yields identical records — classification is a pure function and
// never mutates its input.
func (s *ClassifierSuite) TestNormalizeIdempotent() {
	raw := RawRecord{
		"company_name":       "BETA INDUSTRIES PLC",
		"company_type":       "PUBLIC LIMITED COMPANY",
		"rc_number":          "RC789012",
		"company_status":     "ACTIVE",
		"registered_address": "1 MARINA ROAD",
		"share_capital":      "50000000",
		"shareholders": []any{
			map[string]any{"name": "GAMMA HOLDINGS LIMITED", "percentage": 55.0, "type": "CORPORATE", "rc_number": "RC456789"},
			map[string]any{"name": "OBI, JOHN", "percentage": 45.0, "type": "INDIVIDUAL"},
		},
	}

	first, err := Normalize(raw)
	s.Require().NoError(err)
	second, err := Normalize(raw)
	s.Require().NoError(err)
	s.Equal(first, second)

	// the raw payload itself must be untouched
	s.Equal("BETA INDUSTRIES PLC", raw["company_name"])
	third, err := Normalize(raw)
	s.Require().NoError(err)
	s.Equal(first, third)
}
