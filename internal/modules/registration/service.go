// Package registration validates sign-up forms and submits them upstream.
package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"recipebox/internal/pkg/validator"
)

type Service struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewService(endpoint string, timeout time.Duration, log *zap.Logger) *Service {
	return &Service{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Validate returns a *ValidationError listing every invalid field, or nil.
func (s *Service) Validate(req *RegisterRequest) error {
	req.normalize()
	if fields := validator.Messages(req, registerMessages); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Register validates req and posts it to the registration endpoint.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := s.Validate(&req); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %v: %w", err, ErrRegistrationFailed)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit: %v: %w", err, ErrRegistrationFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("submit: status %d: %w", resp.StatusCode, ErrRegistrationFailed)
	}

	var created RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode response: %v: %w", err, ErrRegistrationFailed)
	}

	s.log.Info("registration submitted",
		zap.Int64("id", created.ID),
		zap.String("username", req.Username))

	return &created, nil
}
