package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domerrors "github.com/leafsw/tipbot-go/internal/errors"
	"github.com/leafsw/tipbot-go/internal/gateway"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
)

const gatewayName = "directory"

const retryInitialDelay = 500 * time.Millisecond

// Client is a directory Gateway backed by the chat platform's v1 REST API.
// The auth token rides along as a query parameter on every request, per the
// platform's API convention.
type Client struct {
	baseURL    string
	authToken  string
	maxRetries int
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a directory client. Transient upstream failures are
// retried up to maxRetries times. The metrics recorder is optional.
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

// ListUsers fetches all users from /v1/users/list.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var payload struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "users_list", "/v1/users/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

// ListRooms fetches all rooms from /v1/rooms/list.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var payload struct {
		Rooms []Room `json:"rooms"`
	}
	if err := c.get(ctx, "rooms_list", "/v1/rooms/list", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Rooms, nil
}

// ShowRoom fetches one room's detail, including participants, from /v1/rooms/show.
func (c *Client) ShowRoom(ctx context.Context, roomID int) (RoomDetail, error) {
	var payload struct {
		Room RoomDetail `json:"room"`
	}
	params := url.Values{"room_id": {strconv.Itoa(roomID)}}
	if err := c.get(ctx, "rooms_show", "/v1/rooms/show", params, &payload); err != nil {
		return RoomDetail{}, err
	}
	return payload.Room, nil
}

// ShowUser fetches one user's detail from /v1/users/show.
func (c *Client) ShowUser(ctx context.Context, userID int) (User, error) {
	var payload struct {
		User User `json:"user"`
	}
	params := url.Values{"user_id": {strconv.Itoa(userID)}}
	if err := c.get(ctx, "users_show", "/v1/users/show", params, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("auth_token", c.authToken)
	params.Set("format", "json")
	reqURL := c.baseURL + path + "?" + params.Encode()

	// Every directory call is a read, so retrying is always safe.
	start := time.Now()
	err := gateway.RetryWithBackoff(ctx, c.maxRetries, retryInitialDelay, func() error {
		return c.doJSON(ctx, reqURL, out)
	})
	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordGatewayRequest(gatewayName, operation, status, time.Since(start))
	}
	if err != nil {
		return err
	}

	c.logger.WithField("operation", operation).Debug("directory request completed")
	return nil
}

func (c *Client) doJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domerrors.NewGatewayError(gatewayName, redact(reqURL), 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domerrors.NewGatewayError(gatewayName, redact(reqURL), resp.StatusCode,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domerrors.NewGatewayError(gatewayName, redact(reqURL), resp.StatusCode, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domerrors.NewGatewayError(gatewayName, redact(reqURL), resp.StatusCode,
			fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// redact strips the auth token from a URL before it lands in errors or logs.
func redact(reqURL string) string {
	parsed, err := url.Parse(reqURL)
	if err != nil {
		return reqURL
	}
	q := parsed.Query()
	if q.Has("auth_token") {
		q.Set("auth_token", "REDACTED")
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}
