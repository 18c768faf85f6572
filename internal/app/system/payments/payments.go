// internal/app/system/payments/payments.go

// Package payments is the black-box payment collaborator: a single
// charge call against the Stripe HTTP API. The rest of the application
// only sees ChargeRequest in and ChargeResult or an error out.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.stripe.com"

// ChargeRequest describes one charge. Amount is in the currency's
// smallest unit (cents).
type ChargeRequest struct {
	Amount      int64
	Currency    string
	Source      string // tokenized payment source, never raw card data
	Description string
}

// ChargeResult is the subset of the provider response the caller needs.
type ChargeResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Paid   bool   `json:"paid"`
}

// Client issues charges. Each call carries a fresh idempotency key so a
// network retry cannot double-charge.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
	log       *zap.Logger
}

func NewClient(secretKey string, logger *zap.Logger) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 20 * time.Second},
		log:       logger,
	}
}

// WithBaseURL points the client at a different endpoint. For tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Charge executes the charge call.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if req.Currency == "" || req.Source == "" {
		return nil, fmt.Errorf("currency and source are required")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("source", req.Source)
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build charge request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read charge response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("charge declined by provider",
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var result ChargeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}
	return &result, nil
}
