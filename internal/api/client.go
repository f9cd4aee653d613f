// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the docchat backend.
//
// The backend owns authentication, document retrieval, model inference, and
// conversation storage; this client only moves JSON across the wire. Every
// call is a single attempt: failed requests are reported to the caller, who
// decides whether stale local state is acceptable. There is deliberately no
// retry loop here.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/docchat-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// HeaderFunc supplies the auth headers for outgoing requests. It is provided
// by the authentication state holder; an empty map means unauthenticated.
type HeaderFunc func() map[string]string

// Client is a client for communicating with the docchat backend.
//
// The base URL may be swapped at runtime (config hot-reload); mu guards it
// because requests run on tea.Cmd goroutines.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	headers    HeaderFunc
}

// NewClient creates a new backend client for the given base URL.
//
// If the base URL is empty the client is still created, but every request
// fails with ErrNotConfigured. Auth headers are pulled from headerFn on each
// request, so a sign-in that happens after construction is picked up
// automatically.
func NewClient(baseURL string, headerFn HeaderFunc) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient: sharedHTTPClient,
		headers:    headerFn,
	}
}

// WithTimeout sets the request timeout. This clones the shared transport
// into a dedicated client so other consumers keep the default.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL repoints the client at a different backend. All consumers
// sharing the client pick up the new endpoint on their next request.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
}

// IsConfigured returns true if the client has a base URL configured.
func (c *Client) IsConfigured() bool {
	return c.BaseURL() != ""
}

// =============================================================================
// HEALTH
// =============================================================================

// Health probes the backend's reachability. A nil error means the endpoint
// answered 200 within the timeout.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// History lists the authenticated user's conversations, most recent first.
func (c *Client) History(ctx context.Context) ([]*model.Conversation, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// ConversationMessages fetches the ordered message list of one conversation.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) ([]*model.Message, error) {
	var resp messagesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/conversation/"+conversationID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// DeleteConversation removes a conversation and its messages on the backend.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/conversation/"+conversationID, nil, nil)
}

// =============================================================================
// CHAT
// =============================================================================

// Chat submits a message and returns the bot's reply with optional source
// citations. The conversation id may be a client-generated one; the backend
// adopts it for new conversations.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	var reply ChatReply
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// =============================================================================
// AUTH
// =============================================================================

// GoogleLogin exchanges a Google ID token for a session token, the account
// identity, and the current chat limits.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*Session, error) {
	var sess Session
	if err := c.doJSON(ctx, http.MethodPost, "/auth/google", LoginRequest{IDToken: idToken}, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Limits fetches the current chat quota for the authenticated user.
func (c *Client) Limits(ctx context.Context) (model.ChatLimits, error) {
	var limits model.ChatLimits
	if err := c.doJSON(ctx, http.MethodGet, "/auth/limits", nil, &limits); err != nil {
		return model.ChatLimits{}, err
	}
	return limits, nil
}

// =============================================================================
// PAYMENT
// =============================================================================

// CreateOrder creates a payment order for the upgrade plan.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodPost, "/payment/create-order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment asks the backend to verify a completed payment against the
// gateway signature. The signature itself is checked server-side; a non-nil
// error or a false verdict means the upgrade must not be applied.
func (c *Client) VerifyPayment(ctx context.Context, req VerifyRequest) error {
	var resp verifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/payment/verify", req, &resp); err != nil {
		return err
	}
	if !resp.Verified {
		return fmt.Errorf("%w: signature rejected", ErrPaymentFailed)
	}
	return nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// doJSON performs a single JSON request. body and out may be nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear Authorization header immediately after the request to
	// keep it out of any later logging of the request object.
	req.Header.Del("Authorization")

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return handleErrorResponse(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// setHeaders sets the required headers for backend requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "docchat/0.1.0")

	if c.headers == nil {
		return
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}
}

// readResponse reads the response body with size limits.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to appropriate Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = apiErr.Detail
		}
		if msg != "" {
			return &APIError{
				Code:    apiErr.Error.Code,
				Message: msg,
				Status:  statusCode,
			}
		}
	}

	// Fallback for unparseable error responses
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrAuthFailed
	case http.StatusForbidden, http.StatusTooManyRequests:
		return ErrQuotaExceeded
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{
			Message: strings.TrimSpace(string(body)),
			Status:  statusCode,
		}
	}
}
