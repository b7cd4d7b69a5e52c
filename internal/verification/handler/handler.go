package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/middleware"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/transport/http/shared"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/verification"
	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

// Service defines the orchestration operations the handler exposes.
type Service interface {
	VerifyIndividual(ctx context.Context, req verification.IndividualRequest) (verification.Verification, error)
	VerifyCorporate(ctx context.Context, req verification.CorporateRequest) (verification.Verification, error)
	VerifyComplete(ctx context.Context, req verification.CompleteRequest) (verification.Verification, error)
	Get(ctx context.Context, id string) (verification.Verification, error)
}

// Handler handles verification endpoints.
type Handler struct {
	logger       *slog.Logger
	verification Service
	apiKeyHashes []string
}

func New(svc Service, logger *slog.Logger, apiKeyHashes []string) *Handler {
	return &Handler{
		logger:       logger,
		verification: svc,
		apiKeyHashes: apiKeyHashes,
	}
}

// Register mounts the verification routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.APIKeyAuth(h.apiKeyHashes, h.logger))
	router.Post("/v1/verifications/individual", h.handleIndividual)
	router.Post("/v1/verifications/corporate", h.handleCorporate)
	router.Post("/v1/verifications/complete", h.handleComplete)
	router.Get("/v1/verifications/{id}", h.handleGet)

	r.Mount("/", router)
}

func (h *Handler) handleIndividual(w http.ResponseWriter, r *http.Request) {
	var req verification.IndividualRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.verification.VerifyIndividual(r.Context(), req)
	h.respond(w, v, err)
}

func (h *Handler) handleCorporate(w http.ResponseWriter, r *http.Request) {
	var req verification.CorporateRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.verification.VerifyCorporate(r.Context(), req)
	h.respond(w, v, err)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req verification.CompleteRequest
	if !h.decode(w, r, &req) {
		return
	}
	v, err := h.verification.VerifyComplete(r.Context(), req)
	h.respond(w, v, err)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.verification.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		h.logger.WarnContext(r.Context(), "invalid verification request",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// respond returns the stored verification even when the pipeline failed:
// a FAILED record with its failure code is a successful API call.
func (h *Handler) respond(w http.ResponseWriter, v verification.Verification, err error) {
	if err != nil && v.ID == "" {
		shared.WriteError(w, err)
		return
	}
	status := http.StatusCreated
	if v.Status == verification.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	shared.WriteJSON(w, status, v)
}
