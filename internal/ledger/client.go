package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domerrors "github.com/leafsw/tipbot-go/internal/errors"
	"github.com/leafsw/tipbot-go/internal/gateway"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
)

const gatewayName = "ledger"

const retryInitialDelay = 500 * time.Millisecond

// Client is a ledger Gateway backed by the wallet REST service. The
// configured credential is attached as the Authorization header on every
// request.
type Client struct {
	baseURL    string
	authToken  string
	maxRetries int
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a ledger client. Transient failures on read operations
// are retried up to maxRetries times; tips are never retried. The metrics
// recorder is optional.
func NewClient(baseURL, authToken string, timeout time.Duration, maxRetries int, log *logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:     log.WithModule(gatewayName),
		metrics:    m,
	}
}

// Register creates a wallet for the account via GET /wallet/{id}/register.
// The body is returned opaque; callers decide whether to inspect it.
func (c *Client) Register(ctx context.Context, accountID string) ([]byte, error) {
	return c.do(ctx, "register", http.MethodGet, "/wallet/"+accountID+"/register", nil, true)
}

// Address returns the deposit address via GET /wallet/{id}.
func (c *Client) Address(ctx context.Context, accountID string) (string, error) {
	body, err := c.do(ctx, "address", http.MethodGet, "/wallet/"+accountID, nil, true)
	if err != nil {
		return "", err
	}
	var payload struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", domerrors.NewGatewayError(gatewayName, c.baseURL+"/wallet/"+accountID, 0,
			fmt.Errorf("decode response: %w", err))
	}
	return payload.Address, nil
}

// Balance returns the coin balance via GET /wallet/{id}/balance.
func (c *Client) Balance(ctx context.Context, accountID string) (float64, error) {
	path := "/wallet/" + accountID + "/balance"
	body, err := c.do(ctx, "balance", http.MethodGet, path, nil, true)
	if err != nil {
		return 0, err
	}
	var payload struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, domerrors.NewGatewayError(gatewayName, c.baseURL+path, 0,
			fmt.Errorf("decode response: %w", err))
	}
	return payload.Balance, nil
}

// History returns the raw transaction history via GET /wallet/{id}/history.
func (c *Client) History(ctx context.Context, accountID string) (string, error) {
	body, err := c.do(ctx, "history", http.MethodGet, "/wallet/"+accountID+"/history", nil, true)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Tip transfers coins via POST /wallet/tip.
func (c *Client) Tip(ctx context.Context, fromID, toID string, amount int) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"from":   fromID,
		"to":     toID,
		"amount": amount,
	})
	if err != nil {
		return nil, fmt.Errorf("encode tip payload: %w", err)
	}
	return c.do(ctx, "tip", http.MethodPost, "/wallet/tip", payload, false)
}

// Withdraw moves the balance to an external address via
// GET /wallet/{id}/withdraw/{address} and returns the service's message.
func (c *Client) Withdraw(ctx context.Context, accountID, destAddress string) (string, error) {
	path := "/wallet/" + accountID + "/withdraw/" + destAddress
	body, err := c.do(ctx, "withdraw", http.MethodGet, path, nil, false)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", domerrors.NewGatewayError(gatewayName, c.baseURL+path, 0,
			fmt.Errorf("decode response: %w", err))
	}
	return payload.Message, nil
}

// do performs an authenticated request and returns the response body.
// Callers flag reads as retryable; funds-moving operations (tip, withdraw)
// get exactly one attempt, because a request that timed out may have
// already executed upstream and a resend would double-spend. The withdraw
// route is a GET but moves the whole balance, so the decision is per
// operation, never per HTTP method.
func (c *Client) do(ctx context.Context, operation, method, path string, payload []byte, retryable bool) ([]byte, error) {
	reqURL := c.baseURL + path

	start := time.Now()
	var body []byte
	attempt := func() error {
		var err error
		body, err = c.roundTrip(ctx, method, reqURL, payload)
		return err
	}

	var reqErr error
	if retryable {
		reqErr = gateway.RetryWithBackoff(ctx, c.maxRetries, retryInitialDelay, attempt)
	} else {
		reqErr = attempt()
	}
	if c.metrics != nil {
		status := "success"
		if reqErr != nil {
			status = "error"
		}
		c.metrics.RecordGatewayRequest(gatewayName, operation, status, time.Since(start))
	}
	if reqErr != nil {
		return nil, reqErr
	}

	c.logger.WithField("operation", operation).Debug("ledger request completed")
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, reqURL string, payload []byte) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domerrors.NewGatewayError(gatewayName, reqURL, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domerrors.NewGatewayError(gatewayName, reqURL, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domerrors.NewGatewayError(gatewayName, reqURL, resp.StatusCode,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return body, nil
}
