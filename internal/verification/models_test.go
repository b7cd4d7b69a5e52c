package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

type ModelsSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

// TestLifecycle walks the only legal path through the state machine.
func (s *ModelsSuite) TestLifecycle() {
	now := time.Now().UTC()
	v := Verification{Status: StatusPending}

	s.Require().NoError(v.Transition(StatusProcessing, now))
	s.Require().NoError(v.Transition(StatusCompleted, now))
	s.True(v.Terminal())
}

// TestTerminalStatesFrozen verifies no transition leaves a terminal state.
func (s *ModelsSuite) TestTerminalStatesFrozen() {
	now := time.Now().UTC()
	for _, terminal := range []Status{StatusCompleted, StatusFailed} {
		for _, target := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
			v := Verification{Status: terminal}
			err := v.Transition(target, now)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
			s.Equal(terminal, v.Status)
		}
	}
}

// TestSkippingProcessingRejected verifies PENDING cannot complete directly.
func (s *ModelsSuite) TestSkippingProcessingRejected() {
	v := Verification{Status: StatusPending}
	s.Error(v.Transition(StatusCompleted, time.Now()))
}

// TestFailureFromPending verifies early failures are representable.
func (s *ModelsSuite) TestFailureFromPending() {
	v := Verification{Status: StatusPending}
	s.NoError(v.Transition(StatusFailed, time.Now()))
}
