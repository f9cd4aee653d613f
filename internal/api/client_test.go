// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer test-token"}
}

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("", nil)

	if client.IsConfigured() {
		t.Error("IsConfigured() = true for empty base URL")
	}

	err := client.Health(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Health() error = %v, want ErrNotConfigured", err)
	}
}

func TestClient_TrimsBaseURL(t *testing.T) {
	client := NewClient("  http://localhost:8000/  ", nil)
	if got := client.BaseURL(); got != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestClient_SetBaseURLRepointsRequests(t *testing.T) {
	stale := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer stale.Close()
	fresh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer fresh.Close()

	client := NewClient(stale.URL, nil)
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("Health() against the stale backend should fail")
	}

	client.SetBaseURL(fresh.URL + "/")
	if got := client.BaseURL(); got != fresh.URL {
		t.Errorf("BaseURL() after swap = %q, want %q", got, fresh.URL)
	}
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() after swap = %v, want nil", err)
	}
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestClient_History(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"conversations": [
			{"id": "conv_a", "title": "Refund policy", "message_count": 4, "last_message": "see section 3"},
			{"id": "conv_b", "title": "Onboarding", "message_count": 2, "last_message": "welcome"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	convs, err := client.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	if gotPath != "/history" {
		t.Errorf("request path = %q, want /history", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, auth headers must be attached", gotAuth)
	}
	if len(convs) != 2 || convs[0].ID != "conv_a" || convs[1].Title != "Onboarding" {
		t.Errorf("History() = %+v", convs)
	}
}

func TestClient_ConversationMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversation/conv_a" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"messages": [
			{"id": "m1", "type": "user", "content": "what is the refund window?"},
			{"id": "m2", "type": "bot", "content": "30 days", "sources": ["policy.pdf p.2"]}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	msgs, err := client.ConversationMessages(context.Background(), "conv_a")
	if err != nil {
		t.Fatalf("ConversationMessages() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if !msgs[1].HasSources() {
		t.Error("bot message should carry sources")
	}
}

func TestClient_DeleteConversation(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	if err := client.DeleteConversation(context.Background(), "conv_a"); err != nil {
		t.Fatalf("DeleteConversation() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
}

func TestClient_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"message_id": "m9",
			"response": "The refund window is 30 days.",
			"sources": ["policy.pdf p.2"],
			"conversation_id": "conv_a"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	reply, err := client.Chat(context.Background(), ChatRequest{Message: "refund window?", ConversationID: "conv_a"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	msg := reply.BotMessage()
	if msg.ID != "m9" || msg.Content != "The refund window is 30 days." || !msg.HasSources() {
		t.Errorf("BotMessage() = %+v", msg)
	}
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrAuthFailed},
		{"quota forbidden", http.StatusForbidden, `{}`, ErrQuotaExceeded},
		{"quota throttled", http.StatusTooManyRequests, `{}`, ErrQuotaExceeded},
		{"not found", http.StatusNotFound, `{}`, ErrNotFound},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, testHeaders)
			err := client.Health(context.Background())
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want errors.Is(%v)", err, tc.want)
			}
		})
	}
}

func TestClient_StructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": "token_expired", "message": "session expired"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	err := client.Health(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != "token_expired" || apiErr.Status != 401 {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !errors.Is(err, ErrAuthFailed) {
		t.Error("structured 401 should still match ErrAuthFailed")
	}
}

func TestClient_Unreachable(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient("http://127.0.0.1:1", testHeaders).WithTimeout(500 * time.Millisecond)
	err := client.Health(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

// =============================================================================
// PAYMENT TESTS
// =============================================================================

func TestClient_VerifyPayment(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		sentinel error
	}{
		{"verified", `{"verified": true}`, false, nil},
		{"rejected", `{"verified": false}`, true, ErrPaymentFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/payment/verify" {
					t.Errorf("request path = %q", r.URL.Path)
				}
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, testHeaders)
			err := client.VerifyPayment(context.Background(), VerifyRequest{
				OrderID:   "order_1",
				PaymentID: "pay_1",
				Signature: "sig",
			})
			if tc.wantErr {
				if !errors.Is(err, tc.sentinel) {
					t.Errorf("error = %v, want %v", err, tc.sentinel)
				}
			} else if err != nil {
				t.Errorf("VerifyPayment() error = %v", err)
			}
		})
	}
}

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id": "order_42", "amount": 49900, "currency": "INR"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testHeaders)
	order, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 49900, Currency: "INR"})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if order.OrderID != "order_42" || order.Amount != 49900 {
		t.Errorf("CreateOrder() = %+v", order)
	}
}
