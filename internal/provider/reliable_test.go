package provider

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
)

// scriptedProvider returns queued errors before succeeding, counting calls.
type scriptedProvider struct {
	failures []error
	calls    int
}

func (p *scriptedProvider) next() error {
	if p.calls < len(p.failures) {
		err := p.failures[p.calls]
		p.calls++
		return err
	}
	p.calls++
	return nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	if err := p.next(); err != nil {
		return identity.Assertion{}, err
	}
	return identity.Assertion{Source: "bvn", FullName: "JOHN PAUL OBI"}, nil
}

func (p *scriptedProvider) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	if err := p.next(); err != nil {
		return identity.Assertion{}, err
	}
	return identity.Assertion{Source: "nin", FullName: "JOHN PAUL OBI"}, nil
}

func (p *scriptedProvider) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	return entity.RawRecord{"companyName": "ALPHA TRADING LIMITED"}, nil
}

type ReliableSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestReliableSuite(t *testing.T) {
	suite.Run(t, new(ReliableSuite))
}

func (s *ReliableSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *ReliableSuite) reliable(inner Provider) *Reliable {
	r := NewReliable(inner, time.Second, s.logger)
	r.interval = time.Millisecond // keep the suite fast
	return r
}

// TestRetriesTransientFailure verifies one retry on a retryable category.
func (s *ReliableSuite) TestRetriesTransientFailure() {
	inner := &scriptedProvider{failures: []error{
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
	}}
	out, err := s.reliable(inner).VerifyBVN(context.Background(), MockMatchingBVN)
	s.Require().NoError(err)
	s.Equal("JOHN PAUL OBI", out.FullName)
	s.Equal(2, inner.calls)
}

// TestRetryBudgetExhausted verifies the retry budget is one attempt.
func (s *ReliableSuite) TestRetryBudgetExhausted() {
	inner := &scriptedProvider{failures: []error{
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
	}}
	_, err := s.reliable(inner).LookupEntity(context.Background(), "RC123456")
	s.Require().Error(err)
	s.Equal(2, inner.calls)
	s.Equal(ErrorOutage, Category(err))
}

// TestPermanentFailureNotRetried verifies not-found and rejection categories
// fail immediately.
func (s *ReliableSuite) TestPermanentFailureNotRetried() {
	for _, category := range []ErrorCategory{ErrorNotFound, ErrorRejected, ErrorAuthentication} {
		inner := &scriptedProvider{failures: []error{
			NewError(category, "scripted", "no", nil),
			NewError(category, "scripted", "no", nil),
		}}
		_, err := s.reliable(inner).VerifyNIN(context.Background(), MockMatchingNIN)
		s.Require().Error(err, string(category))
		s.Equal(1, inner.calls, string(category))
	}
}

// TestRetryWarnedOnlyWhileBudgetRemains verifies the retry warning is not
// logged on the final attempt, when no retry follows.
func (s *ReliableSuite) TestRetryWarnedOnlyWhileBudgetRemains() {
	var buf bytes.Buffer
	inner := &scriptedProvider{failures: []error{
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
	}}
	r := NewReliable(inner, time.Second, slog.New(slog.NewTextHandler(&buf, nil)))
	r.interval = time.Millisecond

	_, err := r.VerifyBVN(context.Background(), MockMatchingBVN)
	s.Require().Error(err)
	s.Equal(2, inner.calls)
	s.Equal(1, strings.Count(buf.String(), "provider call failed, will retry"))
}

// TestContextCancellation verifies a cancelled context stops the retry loop.
func (s *ReliableSuite) TestContextCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inner := &scriptedProvider{failures: []error{
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
		NewError(ErrorOutage, "scripted", "upstream 503", nil),
	}}
	_, err := s.reliable(inner).VerifyBVN(ctx, MockMatchingBVN)
	s.Error(err)
}
