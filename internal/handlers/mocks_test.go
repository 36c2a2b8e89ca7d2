package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
	"github.com/tourdesk/backend/internal/services"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Snapshot(ctx context.Context, chargeID string) (billing.Snapshot, error) {
	args := m.Called(chargeID)
	return args.Get(0).(billing.Snapshot), args.Error(1)
}

func (m *MockEngine) RecordPayment(ctx context.Context, in services.RecordPaymentInput) (services.Result, error) {
	args := m.Called(in)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) SettleInstallment(ctx context.Context, in services.SettleInstallmentInput) (services.Result, error) {
	args := m.Called(in)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) DeletePayment(ctx context.Context, paymentID, actor string) (services.Result, error) {
	args := m.Called(paymentID, actor)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection, actor string) (services.Result, error) {
	args := m.Called(paymentID, c, actor)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) ApplyCredit(ctx context.Context, in services.ApplyCreditInput) (services.Result, error) {
	args := m.Called(in)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) ClientCredits(ctx context.Context, chargeID string) ([]models.ClientCredit, error) {
	args := m.Called(chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClientCredit), args.Error(1)
}

func (m *MockEngine) InstallmentMenu(ctx context.Context, chargeID string) (billing.Menu, error) {
	args := m.Called(chargeID)
	return args.Get(0).(billing.Menu), args.Error(1)
}

func (m *MockEngine) ValidatePlan(ctx context.Context, chargeID string, plan billing.Plan) (billing.Compliance, error) {
	args := m.Called(chargeID, plan)
	return args.Get(0).(billing.Compliance), args.Error(1)
}

func (m *MockEngine) CommitPlan(ctx context.Context, chargeID string, plan billing.Plan, actor string) (services.Result, error) {
	args := m.Called(chargeID, plan, actor)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) UpdateCharge(ctx context.Context, chargeID string, update models.ChargeUpdate, actor string) (services.Result, error) {
	args := m.Called(chargeID, update, actor)
	return args.Get(0).(services.Result), args.Error(1)
}

func (m *MockEngine) CancelEnrollment(ctx context.Context, chargeID string, confirm bool, actor string) error {
	args := m.Called(chargeID, confirm, actor)
	return args.Error(0)
}
