// Package upstream implements the outbound client for the Siteflow RPC
// backend. Every resource operation is a single POST to
// /rpc/<resource>/<operation> carrying a small envelope; authentication is
// a bearer header handed in per call.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteflow/dashboard-gateway/internal/api/metrics"
	"github.com/siteflow/dashboard-gateway/internal/core/domain"
	"github.com/siteflow/dashboard-gateway/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend RPC API. It implements both ports.AuthAPI
// and ports.ResourceAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

// NewClient builds a Client. A nil httpClient gets a default with a bounded
// timeout — upstream calls never wait indefinitely.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, log: log}
}

// rpcRequest is the envelope for every resource operation.
type rpcRequest struct {
	Input      json.RawMessage   `json:"input,omitempty"`
	PrimaryKey string            `json:"primary_key,omitempty"`
	Filter     map[string]string `json:"filter,omitempty"`
}

// rpcResponse mirrors the backend's result envelope.
type rpcResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []rpcError      `json:"errors,omitempty"`
}

type rpcError struct {
	Message string `json:"message"`
}

type signInRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// SignIn authenticates the credentials against /api/auth/sign-in.
func (c *Client) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	var req signInRequest
	req.User.Email = email
	req.User.Password = password

	body, status, err := c.post(ctx, "auth.sign_in", "/api/auth/sign-in", nil, req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusUnprocessableEntity {
		return nil, domain.ErrInvalidCredentials
	}
	if status < 200 || status >= 300 {
		return nil, serverError(status, body)
	}

	var result ports.SignInResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &domain.PayloadError{Message: "sign-in response: " + err.Error()}
	}
	if result.Token == "" {
		return nil, &domain.PayloadError{Message: "sign-in response missing token"}
	}
	return &result, nil
}

// UpdateUser pushes a profile change through the user resource and returns
// the backend's canonical snapshot.
func (c *Client) UpdateUser(ctx context.Context, headers map[string]string, userID string, payload json.RawMessage) (domain.User, error) {
	data, err := c.rpc(ctx, headers, "user", "update", rpcRequest{PrimaryKey: userID, Input: payload})
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, &domain.PayloadError{Message: "user payload: " + err.Error()}
	}
	return user, nil
}

func (c *Client) Read(ctx context.Context, headers map[string]string, res domain.Resource, filter map[string]string) (json.RawMessage, error) {
	return c.rpc(ctx, headers, string(res), "read", rpcRequest{Filter: filter})
}

func (c *Client) Create(ctx context.Context, headers map[string]string, res domain.Resource, payload json.RawMessage) (json.RawMessage, error) {
	return c.rpc(ctx, headers, string(res), "create", rpcRequest{Input: payload})
}

func (c *Client) Update(ctx context.Context, headers map[string]string, res domain.Resource, id string, payload json.RawMessage) (json.RawMessage, error) {
	return c.rpc(ctx, headers, string(res), "update", rpcRequest{PrimaryKey: id, Input: payload})
}

func (c *Client) Destroy(ctx context.Context, headers map[string]string, res domain.Resource, id string) error {
	_, err := c.rpc(ctx, headers, string(res), "destroy", rpcRequest{PrimaryKey: id})
	return err
}

func (c *Client) Action(ctx context.Context, headers map[string]string, res domain.Resource, action, id string, input json.RawMessage) (json.RawMessage, error) {
	return c.rpc(ctx, headers, string(res), action, rpcRequest{PrimaryKey: id, Input: input})
}

// rpc performs one resource operation and maps the response into the
// three-way error taxonomy: NetworkError for transport failures,
// ServerError for non-2xx statuses, PayloadError for bodies the gateway
// cannot interpret. A 401 means the token died server-side and is reported
// as ErrSessionExpired.
func (c *Client) rpc(ctx context.Context, headers map[string]string, resource, operation string, req rpcRequest) (json.RawMessage, error) {
	op := resource + "." + operation
	body, status, err := c.post(ctx, op, "/rpc/"+resource+"/"+operation, headers, req)
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusUnauthorized:
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "server").Inc()
		return nil, domain.ErrSessionExpired
	case status == http.StatusForbidden:
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "server").Inc()
		return nil, domain.ErrForbidden
	case status < 200 || status >= 300:
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "server").Inc()
		return nil, serverError(status, body)
	}

	var envelope rpcResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "payload").Inc()
		return nil, &domain.PayloadError{Message: op + ": " + err.Error()}
	}
	if !envelope.Success {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "payload").Inc()
		msg := "operation failed"
		if len(envelope.Errors) > 0 && envelope.Errors[0].Message != "" {
			msg = envelope.Errors[0].Message
		}
		return nil, &domain.PayloadError{Message: msg}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()
	return envelope.Data, nil
}

// post sends one JSON POST and returns the raw body and status. Transport
// failures come back as NetworkError; HTTP statuses are the caller's
// problem.
func (c *Client) post(ctx context.Context, op, path string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, &domain.PayloadError{Message: op + ": encode request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, &domain.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "network").Inc()
		c.log.Warn().Err(err).Str("operation", op).Msg("upstream call failed")
		return nil, 0, &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "network").Inc()
		return nil, 0, &domain.NetworkError{Op: op, Err: err}
	}
	return buf.Bytes(), resp.StatusCode, nil
}

func serverError(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &domain.ServerError{Status: status, Message: payload.Error}
	}
	return &domain.ServerError{Status: status, Message: fmt.Sprintf("unexpected response (%d bytes)", len(body))}
}
