package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/entity"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/identity"
)

// VerifyMe calls the VerifyMe.ng verification API. Every call is bounded by
// the configured timeout; retries are the caller's concern (see Reliable).
type VerifyMe struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// VerifyMeConfig configures the HTTP provider.
type VerifyMeConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewVerifyMe(cfg VerifyMeConfig) *VerifyMe {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &VerifyMe{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *VerifyMe) Name() string { return "verifyme" }

func (p *VerifyMe) VerifyBVN(ctx context.Context, bvn string) (identity.Assertion, error) {
	if !ValidIdentityNumber(bvn) {
		return identity.Assertion{}, NewError(ErrorRejected, p.Name(), "BVN must be exactly 11 digits", nil)
	}
	data, err := p.post(ctx, "/v1/verifications/identity/bvn", map[string]string{"bvn": bvn})
	if err != nil {
		return identity.Assertion{}, err
	}
	return identity.Assertion{
		Source:      "bvn",
		FullName:    str(data, "fullName"),
		DateOfBirth: str(data, "dateOfBirth"),
		PhoneNumber: str(data, "phoneNumber"),
		Gender:      str(data, "gender"),
	}, nil
}

func (p *VerifyMe) VerifyNIN(ctx context.Context, nin string) (identity.Assertion, error) {
	if !ValidIdentityNumber(nin) {
		return identity.Assertion{}, NewError(ErrorRejected, p.Name(), "NIN must be exactly 11 digits", nil)
	}
	data, err := p.post(ctx, "/v1/verifications/identity/nin", map[string]string{"nin": nin})
	if err != nil {
		return identity.Assertion{}, err
	}
	return identity.Assertion{
		Source:      "nin",
		FullName:    str(data, "fullName"),
		DateOfBirth: str(data, "dateOfBirth"),
		Address:     str(data, "address"),
		Gender:      str(data, "gender"),
	}, nil
}

func (p *VerifyMe) LookupEntity(ctx context.Context, regNumber string) (entity.RawRecord, error) {
	if len(regNumber) < MinRegNumberLength {
		return nil, NewError(ErrorRejected, p.Name(), "invalid registration number format", nil)
	}
	data, err := p.post(ctx, "/v1/verifications/business/cac", map[string]string{"rc_number": regNumber})
	if err != nil {
		return nil, err
	}
	// The registry record is handed to normalization untouched: the
	// classifier owns field-name interpretation.
	return entity.RawRecord(data), nil
}

// post performs an authenticated call and unwraps the provider's `data`
// envelope, normalizing transport failures into the error taxonomy.
func (p *VerifyMe) post(ctx context.Context, endpoint string, payload map[string]string) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewError(ErrorInternal, p.Name(), "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(ErrorInternal, p.Name(), "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewError(ErrorTimeout, p.Name(), "request timed out", err)
		}
		return nil, NewError(ErrorOutage, p.Name(), "provider unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, NewError(ErrorOutage, p.Name(), "read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewError(ErrorNotFound, p.Name(), "record not found", nil)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewError(ErrorAuthentication, p.Name(), "provider rejected credentials", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewError(ErrorRateLimited, p.Name(), "rate limited", nil)
	case resp.StatusCode >= 500:
		return nil, NewError(ErrorOutage, p.Name(), fmt.Sprintf("provider returned %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		return nil, NewError(ErrorRejected, p.Name(), fmt.Sprintf("provider rejected request with %d", resp.StatusCode), nil)
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, NewError(ErrorBadData, p.Name(), "malformed provider response", err)
	}
	if envelope.Data == nil {
		return nil, NewError(ErrorBadData, p.Name(), "provider response missing data envelope", nil)
	}
	return envelope.Data, nil
}

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
