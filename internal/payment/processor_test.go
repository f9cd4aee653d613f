// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat-tui/internal/api"
)

type fakeGateway struct {
	createErr   error
	verifyErr   error
	createCalls int
	verifyCalls int
	lastVerify  api.VerifyRequest
	lastOrder   api.OrderRequest
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req api.OrderRequest) (*api.Order, error) {
	f.createCalls++
	f.lastOrder = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &api.Order{OrderID: "order_1", Amount: req.Amount, Currency: req.Currency}, nil
}

func (f *fakeGateway) VerifyPayment(ctx context.Context, req api.VerifyRequest) error {
	f.verifyCalls++
	f.lastVerify = req
	return f.verifyErr
}

func newTestProcessor(gw *fakeGateway) *Processor {
	return NewProcessor(Config{Gateway: gw, Delay: time.Millisecond})
}

func TestProcess_Success(t *testing.T) {
	gw := &fakeGateway{}
	p := newTestProcessor(gw)

	res, err := p.Process(context.Background(), validCard())
	require.NoError(t, err)

	assert.Equal(t, "order_1", res.OrderID)
	assert.NotEmpty(t, res.PaymentID)
	assert.Equal(t, PlanAmount, gw.lastOrder.Amount)
	assert.Equal(t, PlanCurrency, gw.lastOrder.Currency)
	assert.Equal(t, "order_1", gw.lastVerify.OrderID)
	assert.Equal(t, res.PaymentID, gw.lastVerify.PaymentID)
	assert.NotEmpty(t, gw.lastVerify.Signature)
}

func TestProcess_ConfiguredPriceReachesOrder(t *testing.T) {
	gw := &fakeGateway{}
	p := NewProcessor(Config{Gateway: gw, Amount: 99900, Currency: "USD", Delay: time.Millisecond})

	assert.Equal(t, 99900, p.Amount())
	assert.Equal(t, "USD", p.Currency())

	_, err := p.Process(context.Background(), validCard())
	require.NoError(t, err)

	assert.Equal(t, 99900, gw.lastOrder.Amount)
	assert.Equal(t, "USD", gw.lastOrder.Currency)
}

func TestNewProcessor_DefaultsPlanPrice(t *testing.T) {
	p := NewProcessor(Config{Gateway: &fakeGateway{}})

	assert.Equal(t, PlanAmount, p.Amount())
	assert.Equal(t, PlanCurrency, p.Currency())
}

func TestProcess_ValidationBlocksSubmission(t *testing.T) {
	gw := &fakeGateway{}
	p := newTestProcessor(gw)

	res, err := p.Process(context.Background(), Details{Method: MethodCard})

	assert.ErrorIs(t, err, ErrInvalidDetails)
	assert.NotEmpty(t, res.FieldErrors)
	assert.Zero(t, gw.createCalls, "invalid form must not reach the gateway")
}

func TestProcess_CreateOrderFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("gateway down")}
	p := newTestProcessor(gw)

	_, err := p.Process(context.Background(), validCard())

	require.Error(t, err)
	assert.Zero(t, gw.verifyCalls)
}

func TestProcess_VerifyFailure(t *testing.T) {
	gw := &fakeGateway{verifyErr: api.ErrPaymentFailed}
	p := newTestProcessor(gw)

	res, err := p.Process(context.Background(), validCard())

	assert.ErrorIs(t, err, api.ErrPaymentFailed)
	assert.Equal(t, "order_1", res.OrderID, "order id is reported for support follow-up")
}

func TestProcess_CancelledDuringDelay(t *testing.T) {
	gw := &fakeGateway{}
	p := NewProcessor(Config{Gateway: gw, Delay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, validCard())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, gw.verifyCalls, "cancellation must stop before verification")
}
