package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/badnails/TestProjectGateway/internal/ports"
)

const maxResponseBytes = 1 << 20

const (
	DefaultValidateUserPath        = "/api/validate-user"
	DefaultCompleteTransactionPath = "/api/complete-transaction"
)

type API struct {
	BaseURL                 string
	ValidateUserPath        string
	CompleteTransactionPath string
}

// Validate checks the base URL without sending a request.
func (a API) Validate() error {
	_, err := buildAPIURL(a.BaseURL, DefaultValidateUserPath)
	return err
}

// Client talks to the confirmation backend over JSON. A zero RequestTimeout
// leaves requests bounded only by the caller's context.
type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Gateway = Client{}

type validateUserPayload struct {
	TransactionID string `json:"transactionId"`
	Username      string `json:"username"`
}

type completeTransactionPayload struct {
	TransactionID string `json:"transactionId"`
	Username      string `json:"username"`
	PIN           string `json:"pin"`
}

type validateUserResponse struct {
	Success     bool                       `json:"success"`
	Transaction *domain.TransactionDetails `json:"transaction"`
	Message     string                     `json:"message"`
}

type completeTransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c Client) ValidateUser(ctx context.Context, req ports.ValidateUserRequest) (ports.ValidateUserResult, error) {
	var payload validateUserResponse
	err := c.post(ctx, c.API.ValidateUserPath, DefaultValidateUserPath, validateUserPayload{
		TransactionID: req.TransactionID.String(),
		Username:      req.Username,
	}, &payload)
	if err != nil {
		return ports.ValidateUserResult{}, fmt.Errorf("validate user: %w", err)
	}

	return ports.ValidateUserResult{
		Success:     payload.Success,
		Transaction: payload.Transaction,
		Message:     payload.Message,
	}, nil
}

func (c Client) CompleteTransaction(ctx context.Context, req ports.CompleteTransactionRequest) (ports.CompleteTransactionResult, error) {
	var payload completeTransactionResponse
	err := c.post(ctx, c.API.CompleteTransactionPath, DefaultCompleteTransactionPath, completeTransactionPayload{
		TransactionID: req.TransactionID.String(),
		Username:      req.Username,
		PIN:           req.PIN,
	}, &payload)
	if err != nil {
		return ports.CompleteTransactionResult{}, fmt.Errorf("complete transaction: %w", err)
	}

	return ports.CompleteTransactionResult{Success: payload.Success, Message: payload.Message}, nil
}

// post sends body and decodes the response whatever its status code: the
// backend reports refusals in the JSON body.
func (c Client) post(ctx context.Context, path, defaultPath string, body any, out any) error {
	if path == "" {
		path = defaultPath
	}

	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < c.RequestTimeout {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.RequestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("gateway base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse gateway base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("gateway base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("gateway base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse gateway path: %w", err)
	}
	return endpoint.String(), nil
}
