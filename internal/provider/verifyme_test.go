package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type VerifyMeSuite struct {
	suite.Suite
}

func TestVerifyMeSuite(t *testing.T) {
	suite.Run(t, new(VerifyMeSuite))
}

func (s *VerifyMeSuite) provider(handler http.HandlerFunc) (*VerifyMe, func()) {
	server := httptest.NewServer(handler)
	p := NewVerifyMe(VerifyMeConfig{BaseURL: server.URL, APIKey: "test-token"})
	return p, server.Close
}

func (s *VerifyMeSuite) TestVerifyBVN() {
	p, done := s.provider(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/verifications/identity/bvn", r.URL.Path)
		s.Equal("Bearer test-token", r.Header.Get("Authorization"))

		var payload map[string]string
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&payload))
		s.Equal(MockMatchingBVN, payload["bvn"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"fullName":    "OBI, JOHN PAUL",
				"dateOfBirth": "1985-03-15",
				"phoneNumber": "+2348031234567",
				"gender":      "Male",
			},
		})
	})
	defer done()

	assertion, err := p.VerifyBVN(context.Background(), MockMatchingBVN)
	s.Require().NoError(err)
	s.Equal("bvn", assertion.Source)
	s.Equal("OBI, JOHN PAUL", assertion.FullName)
	s.Equal("1985-03-15", assertion.DateOfBirth)
}

func (s *VerifyMeSuite) TestLookupEntityKeepsRawFields() {
	p, done := s.provider(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/v1/verifications/business/cac", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"companyName": "ALPHA TRADING LIMITED",
				"rcNumber":    "RC123456",
				"companyType": "LIMITED BY SHARES",
			},
		})
	})
	defer done()

	raw, err := p.LookupEntity(context.Background(), "RC123456")
	s.Require().NoError(err)
	s.Equal("ALPHA TRADING LIMITED", raw["companyName"])
	s.Equal("LIMITED BY SHARES", raw["companyType"])
}

// TestStatusMapping verifies HTTP statuses land in the right error
// categories with the right retryability.
func (s *VerifyMeSuite) TestStatusMapping() {
	cases := []struct {
		status    int
		category  ErrorCategory
		retryable bool
	}{
		{http.StatusNotFound, ErrorNotFound, false},
		{http.StatusUnauthorized, ErrorAuthentication, false},
		{http.StatusForbidden, ErrorAuthentication, false},
		{http.StatusTooManyRequests, ErrorRateLimited, true},
		{http.StatusInternalServerError, ErrorOutage, true},
		{http.StatusBadGateway, ErrorOutage, true},
		{http.StatusUnprocessableEntity, ErrorRejected, false},
	}
	for _, tc := range cases {
		p, done := s.provider(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := p.VerifyNIN(context.Background(), MockMatchingNIN)
		done()
		s.Require().Error(err, tc.status)
		s.Equal(tc.category, Category(err), tc.status)
		s.Equal(tc.retryable, IsRetryable(err), tc.status)
	}
}

func (s *VerifyMeSuite) TestMissingEnvelope() {
	p, done := s.provider(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})
	defer done()

	_, err := p.VerifyBVN(context.Background(), MockMatchingBVN)
	s.Equal(ErrorBadData, Category(err))
}

func (s *VerifyMeSuite) TestMalformedNumberNeverDialed() {
	dialed := false
	p, done := s.provider(func(w http.ResponseWriter, r *http.Request) {
		dialed = true
	})
	defer done()

	_, err := p.VerifyBVN(context.Background(), "nope")
	s.Equal(ErrorRejected, Category(err))
	s.False(dialed)
}
