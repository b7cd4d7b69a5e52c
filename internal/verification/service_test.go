package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/audit"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/provider"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/risk"
	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	store      *InMemoryStore
	auditStore *audit.MemoryStore
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.auditStore = audit.NewMemoryStore()
	s.service = NewService(
		s.store,
		provider.NewMock(),
		risk.NewEngine(risk.DefaultPolicy()),
		WithAuditPublisher(audit.NewPublisher(s.auditStore)),
		WithClock(func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func (s *ServiceSuite) domesticDeclared() risk.Declared {
	return risk.Declared{
		Nationality:    "Nigeria",
		IndustrySector: "RETAIL",
		Channel:        "IN_PERSON",
	}
}

func (s *ServiceSuite) TestIndividualMatchingPair() {
	v, err := s.service.VerifyIndividual(context.Background(), IndividualRequest{
		BVN:      provider.MockMatchingBVN,
		NIN:      provider.MockMatchingNIN,
		Declared: s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal(StatusCompleted, v.Status)
	s.Equal(TypeIndividual, v.Type)

	s.Require().NotNil(v.Result)
	s.Require().NotNil(v.Result.Identity)
	s.True(v.Result.Identity.Passed)
	s.Equal(100, v.Result.Identity.Confidence)

	s.Require().NotNil(v.Result.Risk)
	s.Equal(risk.TierLow, v.Result.Risk.Category)
	s.Equal("mock", v.Result.Provider)

	stored, err := s.service.Get(context.Background(), v.ID)
	s.Require().NoError(err)
	s.Equal(v, stored)
}

// TestIndividualMismatchCompletes verifies a failed cross-validation is a
// completed verification with a failed verdict, not a pipeline failure.
func (s *ServiceSuite) TestIndividualMismatchCompletes() {
	v, err := s.service.VerifyIndividual(context.Background(), IndividualRequest{
		BVN:      provider.MockMismatchBVN,
		NIN:      provider.MockMismatchNIN,
		Declared: s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal(StatusCompleted, v.Status)
	s.Require().NotNil(v.Result.Identity)
	s.False(v.Result.Identity.Passed)
	s.Contains(v.Result.Risk.Drivers, "identity cross-validation failed")
}

// TestIndividualProviderFailure verifies an unknown BVN fails the whole run
// with a stable failure code and no partial result.
func (s *ServiceSuite) TestIndividualProviderFailure() {
	v, err := s.service.VerifyIndividual(context.Background(), IndividualRequest{
		BVN:      "99999999999",
		NIN:      provider.MockMatchingNIN,
		Declared: s.domesticDeclared(),
	})
	s.Require().Error(err)
	s.Equal(StatusFailed, v.Status)
	s.Equal(string(dErrors.CodeProviderFailure), v.FailureCode)
	s.Nil(v.Result)

	stored, gerr := s.service.Get(context.Background(), v.ID)
	s.Require().NoError(gerr)
	s.Equal(StatusFailed, stored.Status)
	s.Nil(stored.Result)
}

// TestIndividualValidation verifies malformed identity numbers are rejected
// before any record is created.
func (s *ServiceSuite) TestIndividualValidation() {
	v, err := s.service.VerifyIndividual(context.Background(), IndividualRequest{
		BVN: "123", NIN: provider.MockMatchingNIN,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Empty(v.ID)
}

func (s *ServiceSuite) TestCorporateLimited() {
	v, err := s.service.VerifyCorporate(context.Background(), CorporateRequest{
		RegistrationNumber: provider.MockLimitedRC,
		Declared:           s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal(StatusCompleted, v.Status)
	s.Equal("LIMITED", v.Result.EntityKind)
	s.Equal("ALPHA TRADING LIMITED", v.Result.EntityName)
	s.Equal("ACTIVE", v.Result.EntityStatus)
	s.Require().Len(v.Result.BeneficialOwners, 2)
	s.Nil(v.Result.Identity)
}

// TestCorporatePLCUnresolvedHolding verifies the indirect corporate
// shareholding surfaces in both the UBO list and the risk drivers.
func (s *ServiceSuite) TestCorporatePLCUnresolvedHolding() {
	v, err := s.service.VerifyCorporate(context.Background(), CorporateRequest{
		RegistrationNumber: provider.MockPLCRC,
		Declared:           s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal("PLC", v.Result.EntityKind)

	s.Require().NotEmpty(v.Result.BeneficialOwners)
	s.True(v.Result.BeneficialOwners[0].Unresolved)
	s.Contains(v.Result.Risk.Drivers, "indirect corporate shareholding unresolved")
}

func (s *ServiceSuite) TestCorporateBusinessName() {
	v, err := s.service.VerifyCorporate(context.Background(), CorporateRequest{
		RegistrationNumber: "BN987654",
		Declared:           s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal("BUSINESS_NAME", v.Result.EntityKind)
	s.Require().Len(v.Result.BeneficialOwners, 1)
	s.Require().NotNil(v.Result.BeneficialOwners[0].Percentage)
	s.Equal(100.0, *v.Result.BeneficialOwners[0].Percentage)
	s.Require().NotNil(v.Result.Risk)
	s.Equal(risk.TierLow, v.Result.Risk.Category)
}

func (s *ServiceSuite) TestCorporateNotFound() {
	v, err := s.service.VerifyCorporate(context.Background(), CorporateRequest{
		RegistrationNumber: "RC000001",
		Declared:           s.domesticDeclared(),
	})
	s.Require().Error(err)
	s.Equal(StatusFailed, v.Status)
	s.Equal(string(dErrors.CodeProviderFailure), v.FailureCode)
}

func (s *ServiceSuite) TestComplete() {
	v, err := s.service.VerifyComplete(context.Background(), CompleteRequest{
		BVN:                provider.MockMatchingBVN,
		NIN:                provider.MockMatchingNIN,
		RegistrationNumber: provider.MockLimitedRC,
		Declared:           s.domesticDeclared(),
	})
	s.Require().NoError(err)
	s.Equal(StatusCompleted, v.Status)
	s.Equal(TypeComplete, v.Type)
	s.Require().NotNil(v.Result.Identity)
	s.True(v.Result.Identity.Passed)
	s.Equal("LIMITED", v.Result.EntityKind)
	s.Len(v.Result.BeneficialOwners, 2)
}

// TestCompleteFailsWhole verifies one failing leg fails the whole run.
func (s *ServiceSuite) TestCompleteFailsWhole() {
	v, err := s.service.VerifyComplete(context.Background(), CompleteRequest{
		BVN:                provider.MockMatchingBVN,
		NIN:                provider.MockMatchingNIN,
		RegistrationNumber: "RC000001",
		Declared:           s.domesticDeclared(),
	})
	s.Require().Error(err)
	s.Equal(StatusFailed, v.Status)
	s.Nil(v.Result)
}

func (s *ServiceSuite) TestGetUnknown() {
	_, err := s.service.Get(context.Background(), "no-such-id")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

// TestAuditTrail verifies the lifecycle events recorded for a corporate run.
func (s *ServiceSuite) TestAuditTrail() {
	v, err := s.service.VerifyCorporate(context.Background(), CorporateRequest{
		RegistrationNumber: provider.MockLimitedRC,
		Declared:           s.domesticDeclared(),
	})
	s.Require().NoError(err)

	events, err := s.auditStore.ListByVerification(context.Background(), v.ID)
	s.Require().NoError(err)

	var actions []string
	for _, ev := range events {
		actions = append(actions, ev.Action)
	}
	s.Equal([]string{
		audit.ActionRequested,
		audit.ActionProviderLookup,
		audit.ActionRiskAssessed,
		audit.ActionCompleted,
	}, actions)
}
