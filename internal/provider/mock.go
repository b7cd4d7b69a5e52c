package provider

import (
	"context"
	"strings"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
)

// Well-known mock identifiers. The matching BVN/NIN pair describes the same
// person with the name tokens in different orders, which is exactly what real
// NIBSS and NIMC lookups return.
const (
	MockMatchingBVN = "22123456789"
	MockMatchingNIN = "12345678901"
	MockMismatchBVN = "22987654321"
	MockMismatchNIN = "19876543210"
	MockLimitedRC   = "RC123456"
	MockPLCRC       = "RC789012"
)

// Mock returns realistic Nigerian registry data without dialing external
// APIs. Used in development, demos, and the test suite.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	if !ValidIdentityNumber(bvn) {
		return identity.Assertion{}, NewError(ErrorRejected, m.Name(), "BVN must be exactly 11 digits", nil)
	}

	switch bvn {
	case MockMatchingBVN:
		return identity.Assertion{
			Source:      "bvn",
			FullName:    "OBI, JOHN PAUL",
			DateOfBirth: "1985-03-15",
			PhoneNumber: "+2348031234567",
			Gender:      "Male",
		}, nil
	case MockMismatchBVN:
		return identity.Assertion{
			Source:      "bvn",
			FullName:    "ADEBAYO, OLUWASEUN TEMITOPE",
			DateOfBirth: "1990-07-22",
			PhoneNumber: "+2347012345678",
			Gender:      "Male",
		}, nil
	}
	return identity.Assertion{}, NewError(ErrorNotFound, m.Name(), "BVN record not found", nil)
}

func (m *Mock) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	if !ValidIdentityNumber(nin) {
		return identity.Assertion{}, NewError(ErrorRejected, m.Name(), "NIN must be exactly 11 digits", nil)
	}

	switch nin {
	case MockMatchingNIN:
		return identity.Assertion{
			Source:      "nin",
			FullName:    "JOHN PAUL OBI",
			DateOfBirth: "1985-03-15",
			Address:     "12 Allen Avenue, Ikeja, Lagos State",
			Gender:      "Male",
		}, nil
	case MockMismatchNIN:
		// Same person as MockMismatchBVN but born a different day,
		// which must fail cross-validation outright.
		return identity.Assertion{
			Source:      "nin",
			FullName:    "TEMITOPE OLUWASEUN ADEBAYO",
			DateOfBirth: "1991-07-22",
			Address:     "45 Ikorodu Road, Yaba, Lagos",
			Gender:      "Male",
		}, nil
	}
	return identity.Assertion{}, NewError(ErrorNotFound, m.Name(), "NIN record not found", nil)
}

func (m *Mock) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	if len(regNumber) < MinRegNumberLength {
		return nil, NewError(ErrorRejected, m.Name(), "invalid registration number format", nil)
	}

	upper := strings.ToUpper(regNumber)
	switch {
	case upper == MockLimitedRC:
		return limitedFixture(regNumber), nil
	case upper == MockPLCRC:
		return plcFixture(regNumber), nil
	case strings.HasPrefix(upper, "BN"):
		return businessNameFixture(regNumber), nil
	case strings.HasPrefix(upper, "IT"):
		return trusteesFixture(regNumber), nil
	}
	return nil, NewError(ErrorNotFound, m.Name(), "company not found in registry", nil)
}

// Private limited company with two individual shareholders.
func limitedFixture(regNumber string) entity.RawRecord {
	return entity.RawRecord{
		"rcNumber":          regNumber,
		"companyName":       "ALPHA TRADING LIMITED",
		"companyType":       "LIMITED BY SHARES",
		"status":            "ACTIVE",
		"incorporationDate": "2018-06-12",
		"registeredAddress": "Plot 15, Adeola Odeku Street, Victoria Island, Lagos",
		"city":              "Lagos",
		"state":             "Lagos",
		"lga":               "Eti-Osa",
		"shareCapital":      1000000.00,
		"email":             "info@alphatrading.ng",
		"directors": []any{
			map[string]any{"name": "John Paul Obi", "position": "Managing Director", "appointmentDate": "2018-06-12", "status": "ACTIVE"},
			map[string]any{"name": "Amaka Nwosu", "position": "Director", "appointmentDate": "2018-06-12", "status": "ACTIVE"},
		},
		"shareholders": []any{
			map[string]any{"name": "John Paul Obi", "percentage": 60.0, "type": "INDIVIDUAL"},
			map[string]any{"name": "Amaka Nwosu", "percentage": 40.0, "type": "INDIVIDUAL"},
		},
	}
}

// PLC with a majority corporate shareholder, exercising the unresolved
// indirect-ownership path.
func plcFixture(regNumber string) entity.RawRecord {
	return entity.RawRecord{
		"rc_number":          regNumber,
		"company_name":       "BETA INDUSTRIES PLC",
		"company_type":       "PUBLIC LIMITED COMPANY",
		"status":             "ACTIVE",
		"incorporation_date": "2015-01-20",
		"registered_address": "12 Broad Street, Lagos Island, Lagos",
		"state":              "Lagos",
		"share_capital":      "50000000",
		"directors": []any{
			map[string]any{"name": "Chukwuma Okafor", "position": "Chairman"},
			map[string]any{"name": "Ngozi Eze", "position": "Managing Director"},
			map[string]any{"name": "Ibrahim Musa", "position": "Finance Director"},
		},
		"shareholders": []any{
			map[string]any{"name": "GAMMA HOLDINGS LIMITED", "percentage": 55.0, "type": "CORPORATE", "rc_number": "RC456789"},
			map[string]any{"name": "Chukwuma Okafor", "percentage": 25.0, "type": "INDIVIDUAL"},
			map[string]any{"name": "Ngozi Eze", "percentage": 20.0, "type": "INDIVIDUAL"},
		},
	}
}

// Sole-proprietor business name. No stated percentage: full ownership is
// imputed downstream.
func businessNameFixture(regNumber string) entity.RawRecord {
	return entity.RawRecord{
		"bnNumber":          regNumber,
		"businessName":      "PRECIOUS VENTURES",
		"companyType":       "BUSINESS NAME",
		"status":            "ACTIVE",
		"registrationDate":  "2020-09-05",
		"registeredAddress": "23 Market Road, Aba, Abia State",
		"state":             "Abia",
		"natureOfBusiness":  "General merchandise and trading",
		"proprietors": []any{
			map[string]any{"name": "Precious Okoro", "address": "23 Market Road, Aba", "nationality": "Nigerian"},
		},
	}
}

// Incorporated trustees (NGO) fixture.
func trusteesFixture(regNumber string) entity.RawRecord {
	return entity.RawRecord{
		"itNumber":          regNumber,
		"companyName":       "HOPEWELL COMMUNITY FOUNDATION",
		"companyType":       "INCORPORATED TRUSTEES (NGO)",
		"status":            "ACTIVE",
		"registrationDate":  "2012-04-30",
		"registeredAddress": "7 Unity Close, Garki, Abuja",
		"state":             "FCT",
		"aimsAndObjectives": "Community health outreach and literacy programmes",
		"trustees": []any{
			map[string]any{"name": "Grace Adeyemi", "appointmentDate": "2012-04-30"},
			map[string]any{"name": "Musa Bello", "appointmentDate": "2015-11-02"},
			map[string]any{"name": "Chiamaka Udo", "appointmentDate": "2019-08-19"},
		},
	}
}
