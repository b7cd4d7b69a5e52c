package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MockSuite struct {
	suite.Suite
	mock *Mock
}

func TestMockSuite(t *testing.T) {
	suite.Run(t, new(MockSuite))
}

func (s *MockSuite) SetupTest() {
	s.mock = NewMock()
}

// TestMatchingPairDescribesSamePerson verifies the canonical fixtures agree
// on person and date of birth with reordered name tokens.
func (s *MockSuite) TestMatchingPairDescribesSamePerson() {
	ctx := context.Background()
	bvn, err := s.mock.VerifyBVN(ctx, MockMatchingBVN)
	s.Require().NoError(err)
	nin, err := s.mock.VerifyNIN(ctx, MockMatchingNIN)
	s.Require().NoError(err)

	s.Equal(bvn.DateOfBirth, nin.DateOfBirth)
	s.NotEqual(bvn.FullName, nin.FullName)
}

func (s *MockSuite) TestMismatchPairDiffersOnDOB() {
	ctx := context.Background()
	bvn, err := s.mock.VerifyBVN(ctx, MockMismatchBVN)
	s.Require().NoError(err)
	nin, err := s.mock.VerifyNIN(ctx, MockMismatchNIN)
	s.Require().NoError(err)
	s.NotEqual(bvn.DateOfBirth, nin.DateOfBirth)
}

func (s *MockSuite) TestUnknownIdentityNotFound() {
	_, err := s.mock.VerifyBVN(context.Background(), "99999999999")
	s.Equal(ErrorNotFound, Category(err))
	s.False(IsRetryable(err))
}

func (s *MockSuite) TestMalformedIdentityRejected() {
	_, err := s.mock.VerifyBVN(context.Background(), "12AB")
	s.Equal(ErrorRejected, Category(err))
}

// TestEntityFixtures verifies each registry fixture resolves by its prefix.
func (s *MockSuite) TestEntityFixtures() {
	ctx := context.Background()
	cases := []struct {
		regNumber string
		nameKey   string
		want      string
	}{
		{MockLimitedRC, "companyName", "ALPHA TRADING LIMITED"},
		{MockPLCRC, "company_name", "BETA INDUSTRIES PLC"},
		{"BN987654", "businessName", "PRECIOUS VENTURES"},
		{"IT445566", "companyName", "HOPEWELL COMMUNITY FOUNDATION"},
	}
	for _, tc := range cases {
		raw, err := s.mock.LookupEntity(ctx, tc.regNumber)
		s.Require().NoError(err, tc.regNumber)
		s.Equal(tc.want, raw[tc.nameKey], tc.regNumber)
	}
}

func (s *MockSuite) TestUnknownEntityNotFound() {
	_, err := s.mock.LookupEntity(context.Background(), "RC000001")
	s.Equal(ErrorNotFound, Category(err))
}
