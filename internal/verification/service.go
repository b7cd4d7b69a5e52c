package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/audit"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/metrics"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/provider"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/risk"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/ubo"
	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/sentinel"
)

// Service orchestrates the verification pipeline: provider lookups,
// identity reconciliation, entity normalization, ownership analysis and
// risk scoring. Every run either completes with a full result or fails
// whole; partial results are never persisted.
type Service struct {
	store    Store
	provider provider.Provider
	engine   *risk.Engine
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, prov provider.Provider, engine *risk.Engine, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: prov,
		engine:   engine,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IndividualRequest verifies a natural person by cross-checking BVN and
// NIN records against each other.
type IndividualRequest struct {
	BVN      string        `json:"bvn"`
	NIN      string        `json:"nin"`
	Declared risk.Declared `json:"declared"`
}

// CorporateRequest verifies a registered entity by its CAC registration
// number.
type CorporateRequest struct {
	RegistrationNumber string        `json:"registration_number"`
	Declared           risk.Declared `json:"declared"`
}

// CompleteRequest runs the individual and corporate checks together so the
// risk engine sees every signal at once.
type CompleteRequest struct {
	BVN                string        `json:"bvn"`
	NIN                string        `json:"nin"`
	RegistrationNumber string        `json:"registration_number"`
	Declared           risk.Declared `json:"declared"`
}

func (s *Service) VerifyIndividual(ctx context.Context, req IndividualRequest) (Verification, error) {
	if err := validateIdentityPair(req.BVN, req.NIN); err != nil {
		return Verification{}, err
	}
	v, err := s.begin(ctx, TypeIndividual, Input{BVN: req.BVN, NIN: req.NIN, Declared: req.Declared})
	if err != nil {
		return Verification{}, err
	}
	return s.run(ctx, v, func(ctx context.Context) (*Result, error) {
		verdict, err := s.reconcileIdentity(ctx, v.ID, req.BVN, req.NIN)
		if err != nil {
			return nil, err
		}
		assessment := s.assess(ctx, v.ID, risk.Input{Verdict: verdict, Declared: req.Declared})
		return &Result{
			Identity: verdict,
			Risk:     assessment,
			Provider: s.provider.Name(),
		}, nil
	})
}

func (s *Service) VerifyCorporate(ctx context.Context, req CorporateRequest) (Verification, error) {
	if err := validateRegistrationNumber(req.RegistrationNumber); err != nil {
		return Verification{}, err
	}
	v, err := s.begin(ctx, TypeCorporate, Input{RegistrationNumber: req.RegistrationNumber, Declared: req.Declared})
	if err != nil {
		return Verification{}, err
	}
	return s.run(ctx, v, func(ctx context.Context) (*Result, error) {
		record, owners, err := s.resolveEntity(ctx, v.ID, req.RegistrationNumber)
		if err != nil {
			return nil, err
		}
		assessment := s.assess(ctx, v.ID, risk.Input{Entity: record, UBOs: owners, Declared: req.Declared})
		return corporateResult(record, owners, assessment, s.provider.Name()), nil
	})
}

func (s *Service) VerifyComplete(ctx context.Context, req CompleteRequest) (Verification, error) {
	if err := validateIdentityPair(req.BVN, req.NIN); err != nil {
		return Verification{}, err
	}
	if err := validateRegistrationNumber(req.RegistrationNumber); err != nil {
		return Verification{}, err
	}
	v, err := s.begin(ctx, TypeComplete, Input{
		BVN:                req.BVN,
		NIN:                req.NIN,
		RegistrationNumber: req.RegistrationNumber,
		Declared:           req.Declared,
	})
	if err != nil {
		return Verification{}, err
	}
	return s.run(ctx, v, func(ctx context.Context) (*Result, error) {
		var (
			verdict *identity.Verdict
			record  *entity.Record
			owners  []ubo.Entry
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			verdict, err = s.reconcileIdentity(gctx, v.ID, req.BVN, req.NIN)
			return err
		})
		g.Go(func() error {
			var err error
			record, owners, err = s.resolveEntity(gctx, v.ID, req.RegistrationNumber)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		assessment := s.assess(ctx, v.ID, risk.Input{
			Entity:   record,
			Verdict:  verdict,
			UBOs:     owners,
			Declared: req.Declared,
		})
		result := corporateResult(record, owners, assessment, s.provider.Name())
		result.Identity = verdict
		return result, nil
	})
}

// Get returns a stored verification by ID.
func (s *Service) Get(ctx context.Context, id string) (Verification, error) {
	v, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeNotFound, "verification not found")
	}
	if err != nil {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "load verification")
	}
	return v, nil
}

// begin creates the record and moves it into PROCESSING before any
// provider traffic, so an interrupted run is visible as stuck rather
// than absent.
func (s *Service) begin(ctx context.Context, typ Type, input Input) (Verification, error) {
	now := s.now().UTC()
	v := Verification{
		ID:        uuid.NewString(),
		Type:      typ,
		Status:    StatusPending,
		Input:     input,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, v); err != nil {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "create verification")
	}
	s.emit(ctx, audit.Event{VerificationID: v.ID, Action: audit.ActionRequested, Detail: string(typ)})
	if err := v.Transition(StatusProcessing, s.now().UTC()); err != nil {
		return Verification{}, err
	}
	if err := s.store.Update(ctx, v); err != nil {
		return Verification{}, dErrors.Wrap(err, dErrors.CodeInternal, "update verification")
	}
	return v, nil
}

// run executes the pipeline body and settles the record into exactly one
// terminal state.
func (s *Service) run(ctx context.Context, v Verification, body func(ctx context.Context) (*Result, error)) (Verification, error) {
	start := s.now()
	result, err := body(ctx)
	if err != nil {
		return s.fail(ctx, v, start, err)
	}
	v.Result = result
	if terr := v.Transition(StatusCompleted, s.now().UTC()); terr != nil {
		return s.fail(ctx, v, start, terr)
	}
	if uerr := s.store.Update(ctx, v); uerr != nil {
		return Verification{}, dErrors.Wrap(uerr, dErrors.CodeInternal, "persist verification result")
	}
	s.metrics.ObserveVerification(string(v.Type), string(StatusCompleted), s.now().Sub(start))
	s.emit(ctx, audit.Event{
		VerificationID: v.ID,
		Action:         audit.ActionCompleted,
		Outcome:        string(result.riskCategory()),
	})
	s.logger.InfoContext(ctx, "verification completed",
		"verification_id", v.ID,
		"type", v.Type,
		"risk_category", result.riskCategory(),
	)
	return v, nil
}

func (s *Service) fail(ctx context.Context, v Verification, start time.Time, cause error) (Verification, error) {
	v.Result = nil
	v.FailureCode = string(dErrors.GetCode(cause))
	v.FailureReason = dErrors.ClientMessage(cause)
	if err := v.Transition(StatusFailed, s.now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "verification already terminal", "verification_id", v.ID, "error", err)
	}
	if err := s.store.Update(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "persist failed verification", "verification_id", v.ID, "error", err)
	}
	s.metrics.ObserveVerification(string(v.Type), string(StatusFailed), s.now().Sub(start))
	var pErr *provider.Error
	if errors.As(cause, &pErr) {
		s.metrics.ProviderError(string(pErr.Category))
	}
	s.emit(ctx, audit.Event{
		VerificationID: v.ID,
		Action:         audit.ActionFailed,
		Outcome:        v.FailureCode,
		Detail:         v.FailureReason,
	})
	s.logger.WarnContext(ctx, "verification failed",
		"verification_id", v.ID,
		"type", v.Type,
		"failure_code", v.FailureCode,
	)
	return v, cause
}

// reconcileIdentity fetches both identity records in parallel and
// cross-validates them.
func (s *Service) reconcileIdentity(ctx context.Context, verificationID, bvn, nin string) (*identity.Verdict, error) {
	var bvnAssertion, ninAssertion identity.Assertion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bvnAssertion, err = s.provider.VerifyBVN(gctx, bvn)
		return err
	})
	g.Go(func() error {
		var err error
		ninAssertion, err = s.provider.VerifyNIN(gctx, nin)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrapProviderError(err)
	}
	s.emit(ctx, audit.Event{
		VerificationID: verificationID,
		Action:         audit.ActionProviderLookup,
		Provider:       s.provider.Name(),
		Detail:         "bvn+nin",
	})
	verdict := identity.Reconcile(bvnAssertion, ninAssertion)
	s.emit(ctx, audit.Event{
		VerificationID: verificationID,
		Action:         audit.ActionIdentityChecked,
		Outcome:        outcome(verdict.Passed),
	})
	return &verdict, nil
}

// resolveEntity looks up the registry record, normalizes it and derives
// beneficial owners.
func (s *Service) resolveEntity(ctx context.Context, verificationID, regNumber string) (*entity.Record, []ubo.Entry, error) {
	raw, err := s.provider.LookupEntity(ctx, regNumber)
	if err != nil {
		return nil, nil, wrapProviderError(err)
	}
	s.emit(ctx, audit.Event{
		VerificationID: verificationID,
		Action:         audit.ActionProviderLookup,
		Provider:       s.provider.Name(),
		Detail:         "cac",
	})
	record, err := entity.Normalize(raw)
	if err != nil {
		return nil, nil, err
	}
	return record, ubo.Analyze(*record), nil
}

func (s *Service) assess(ctx context.Context, verificationID string, input risk.Input) *risk.Assessment {
	assessment := s.engine.Score(input)
	s.emit(ctx, audit.Event{
		VerificationID: verificationID,
		Action:         audit.ActionRiskAssessed,
		Outcome:        string(assessment.Category),
	})
	return &assessment
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

func corporateResult(record *entity.Record, owners []ubo.Entry, assessment *risk.Assessment, providerName string) *Result {
	return &Result{
		EntityKind:       string(record.Kind),
		EntityName:       record.Profile.LegalName,
		EntityStatus:     string(record.Profile.Status),
		LowConfidence:    record.LowConfidence,
		BeneficialOwners: owners,
		Risk:             assessment,
		Provider:         providerName,
	}
}

func (r *Result) riskCategory() risk.Tier {
	if r == nil || r.Risk == nil {
		return ""
	}
	return r.Risk.Category
}

func validateIdentityPair(bvn, nin string) error {
	if !provider.ValidIdentityNumber(bvn) {
		return dErrors.New(dErrors.CodeValidation, "bvn must be exactly 11 digits")
	}
	if !provider.ValidIdentityNumber(nin) {
		return dErrors.New(dErrors.CodeValidation, "nin must be exactly 11 digits")
	}
	return nil
}

func validateRegistrationNumber(regNumber string) error {
	if len(regNumber) < provider.MinRegNumberLength {
		return dErrors.New(dErrors.CodeValidation, "registration number is too short")
	}
	return nil
}

func wrapProviderError(err error) error {
	var pErr *provider.Error
	if errors.As(err, &pErr) {
		return dErrors.Wrap(err, dErrors.CodeProviderFailure, "provider lookup failed")
	}
	return err
}

func outcome(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}
