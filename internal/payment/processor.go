// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements upgrade-payment form validation and the mock
// payment processor.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/docchat-tui/internal/api"
)

// Plan constants for the premium upgrade.
const (
	// PlanAmount is the upgrade price in the smallest currency unit (paise).
	PlanAmount = 49900 // ₹499

	// PlanCurrency is the order currency.
	PlanCurrency = "INR"

	// DefaultProcessingDelay simulates the gateway round trip.
	DefaultProcessingDelay = 2 * time.Second
)

// ErrInvalidDetails indicates the form failed validation; the per-field
// errors ride along in Result.FieldErrors.
var ErrInvalidDetails = errors.New("invalid payment details")

// Gateway is the backend side of the payment flow. Satisfied by api.Client.
type Gateway interface {
	CreateOrder(ctx context.Context, req api.OrderRequest) (*api.Order, error)
	VerifyPayment(ctx context.Context, req api.VerifyRequest) error
}

// Config wires the processor.
type Config struct {
	Gateway Gateway

	// Amount and Currency set the order price. Zero values fall back to
	// PlanAmount/PlanCurrency so the processor always charges what the
	// form displayed.
	Amount   int
	Currency string

	// Delay overrides the simulated processing delay; zero means the
	// default 2s.
	Delay time.Duration
}

// Result reports one payment attempt.
type Result struct {
	OrderID     string
	PaymentID   string
	FieldErrors []FieldError
}

// Processor runs the upgrade payment flow: validate the form, create an
// order, simulate gateway processing, and hand the outcome to the backend
// for signature verification. This is explicitly a mock of settlement: the
// gateway's checkout widget is an external collaborator, and the signature
// check itself lives server-side.
type Processor struct {
	gateway  Gateway
	amount   int
	currency string
	delay    time.Duration
}

// NewProcessor creates a payment processor.
func NewProcessor(cfg Config) *Processor {
	if cfg.Amount <= 0 {
		cfg.Amount = PlanAmount
	}
	if cfg.Currency == "" {
		cfg.Currency = PlanCurrency
	}
	if cfg.Delay == 0 {
		cfg.Delay = DefaultProcessingDelay
	}
	return &Processor{
		gateway:  cfg.Gateway,
		amount:   cfg.Amount,
		currency: cfg.Currency,
		delay:    cfg.Delay,
	}
}

// Amount reports the order price in the smallest currency unit.
func (p *Processor) Amount() int { return p.amount }

// Currency reports the order currency.
func (p *Processor) Currency() string { return p.currency }

// Process runs one payment attempt. Validation failures return
// ErrInvalidDetails with the per-field messages in the result; gateway and
// verification failures return the underlying error. A nil error means the
// backend accepted the payment and the account may be upgraded.
func (p *Processor) Process(ctx context.Context, details Details) (Result, error) {
	if fieldErrs := Validate(details); len(fieldErrs) > 0 {
		return Result{FieldErrors: fieldErrs}, ErrInvalidDetails
	}

	order, err := p.gateway.CreateOrder(ctx, api.OrderRequest{
		Amount:   p.amount,
		Currency: p.currency,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create order: %w", err)
	}

	// Simulated gateway processing delay.
	select {
	case <-ctx.Done():
		return Result{OrderID: order.OrderID}, ctx.Err()
	case <-time.After(p.delay):
	}

	paymentID := generatePaymentID()
	err = p.gateway.VerifyPayment(ctx, api.VerifyRequest{
		OrderID:   order.OrderID,
		PaymentID: paymentID,
		Signature: mockSignature(),
	})
	if err != nil {
		return Result{OrderID: order.OrderID, PaymentID: paymentID}, fmt.Errorf("verify payment: %w", err)
	}

	return Result{OrderID: order.OrderID, PaymentID: paymentID}, nil
}

// generatePaymentID creates a gateway-style payment id.
func generatePaymentID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "pay_" + hex.EncodeToString(bytes)
}

// mockSignature stands in for the checkout widget's signature over
// "order_id|payment_id". The backend's mock mode accepts it; a real gateway
// integration replaces this with the widget callback value.
func mockSignature() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
