package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/backend/internal/billing"
	mW "github.com/tourdesk/backend/internal/middleware"
	"github.com/tourdesk/backend/internal/models"
	"github.com/tourdesk/backend/internal/services"
)

func newRouter(engine PaymentEngine) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(mW.WithUserID(req.Context(), "agent-1")))
		})
	})
	NewPaymentHandler(engine).Routes(r)
	NewPlanHandler(engine).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func partialSnapshot() billing.Snapshot {
	return billing.Snapshot{
		ChargeID: "charge-1",
		Breakdown: billing.Breakdown{
			ChargeID:     "charge-1",
			TotalOwed:    decimal.NewFromInt(1200),
			TotalPaid:    decimal.NewFromInt(1000),
			TotalPending: decimal.NewFromInt(200),
		},
		Status: billing.StatusResult{Status: billing.StatusPartial, CanTravel: true},
	}
}

func TestPaymentHandler_GetSnapshot(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("Snapshot", "charge-1").Return(partialSnapshot(), nil)

		w := do(t, newRouter(engine), http.MethodGet, "/charges/charge-1/snapshot", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var snap billing.Snapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.Equal(t, billing.StatusPartial, snap.Status.Status)
		assert.True(t, snap.Status.CanTravel)
		engine.AssertExpectations(t)
	})

	t.Run("store down returns the stale snapshot", func(t *testing.T) {
		engine := &MockEngine{}
		stale := partialSnapshot()
		stale.Stale = true
		engine.On("Snapshot", "charge-1").Return(stale, fmt.Errorf("load payments: %w: %w", services.ErrStoreUnavailable, errors.New("timeout")))

		w := do(t, newRouter(engine), http.MethodGet, "/charges/charge-1/snapshot", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp StaleSnapshotResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Snapshot.Stale)
		assert.Equal(t, billing.StatusPartial, resp.Snapshot.Status.Status)
	})

	t.Run("unknown traveler", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("Snapshot", "nobody").Return(billing.Snapshot{}, billing.ErrUnknownTraveler)

		w := do(t, newRouter(engine), http.MethodGet, "/charges/nobody/snapshot", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("RecordPayment", mock.MatchedBy(func(in services.RecordPaymentInput) bool {
			return in.ChargeID == "charge-1" &&
				in.RecordedBy == "agent-1" &&
				in.Amount.Equal(decimal.NewFromInt(250)) &&
				in.Category == "tours" &&
				in.Method == models.MethodPix
		})).Return(services.Result{Snapshot: partialSnapshot()}, nil)

		w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/payments",
			`{"amount":"250.00","category":"tours","method":"pix"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		engine.AssertExpectations(t)
	})

	t.Run("unknown field", func(t *testing.T) {
		engine := &MockEngine{}
		w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/payments",
			`{"amount":"250.00","category":"tours","method":"pix","charge_id":"other"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		engine.AssertNotCalled(t, "RecordPayment", mock.Anything)
	})

	t.Run("two objects", func(t *testing.T) {
		engine := &MockEngine{}
		w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/payments",
			`{"amount":"1","category":"trip","method":"pix"}{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("RecordPayment", mock.Anything).Return(services.Result{}, billing.ErrInvalidAmount)

		w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/payments",
			`{"amount":"0","category":"trip","method":"pix"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recompute failed after write", func(t *testing.T) {
		engine := &MockEngine{}
		entry := &models.PaymentEntry{ID: "p1"}
		engine.On("RecordPayment", mock.Anything).
			Return(services.Result{Entry: entry, Snapshot: billing.Snapshot{ChargeID: "charge-1", Stale: true}}, fmt.Errorf("%w: boom", services.ErrRecomputeFailed))

		w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/payments",
			`{"amount":"10","category":"trip","method":"pix"}`)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Snapshot-Stale"))
		var res services.Result
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotNil(t, res.Entry)
		assert.Equal(t, "p1", res.Entry.ID)
	})
}

func TestPaymentHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"stale credit", billing.ErrStaleCreditApplication, http.StatusConflict},
		{"unknown credit", services.ErrUnknownCredit, http.StatusNotFound},
		{"invalid category", billing.ErrInvalidCategory, http.StatusBadRequest},
		{"store", fmt.Errorf("apply credit: %w: %w", services.ErrStoreUnavailable, errors.New("eof")), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &MockEngine{}
			engine.On("ApplyCredit", mock.Anything).Return(services.Result{}, tc.err)

			w := do(t, newRouter(engine), http.MethodPost, "/charges/charge-1/credits",
				`{"credit_id":"credit-1","amount":"100"}`)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestPaymentHandler_SettleAndCorrect(t *testing.T) {
	engine := &MockEngine{}
	engine.On("SettleInstallment", mock.MatchedBy(func(in services.SettleInstallmentInput) bool {
		return in.InstallmentID == "inst-1" && in.Method == models.MethodCash && in.RecordedBy == "agent-1"
	})).Return(services.Result{}, models.ErrInstallmentNotPending)

	note := "fixed"
	engine.On("CorrectPayment", "p1", models.PaymentCorrection{Note: &note}, "agent-1").Return(services.Result{}, nil)
	engine.On("DeletePayment", "p2", "agent-1").Return(services.Result{}, services.ErrUnknownPayment)

	router := newRouter(engine)

	w := do(t, router, http.MethodPost, "/installments/inst-1/settle", `{"method":"cash"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPatch, "/payments/p1", `{"note":"fixed"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/payments/p2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	engine.AssertExpectations(t)
}

func TestPaymentHandler_CancelEnrollment(t *testing.T) {
	engine := &MockEngine{}
	engine.On("CancelEnrollment", "charge-1", false, "agent-1").Return(services.ErrConfirmationRequired)
	engine.On("CancelEnrollment", "charge-1", true, "agent-1").Return(nil)

	router := newRouter(engine)

	w := do(t, router, http.MethodDelete, "/charges/charge-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodDelete, "/charges/charge-1?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	engine.AssertExpectations(t)
}

func TestPaymentHandler_UpdateCharge(t *testing.T) {
	engine := &MockEngine{}
	engine.On("UpdateCharge", "charge-1", mock.MatchedBy(func(u models.ChargeUpdate) bool {
		return u.Discount != nil && u.Discount.Equal(decimal.NewFromInt(2000))
	}), "agent-1").Return(services.Result{}, fmt.Errorf("%w: too large", billing.ErrInvalidDiscount))

	w := do(t, newRouter(engine), http.MethodPatch, "/charges/charge-1", `{"discount":"2000"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	engine.AssertExpectations(t)
}

func TestPaymentHandler_ListCredits(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("ClientCredits", "charge-1").Return([]models.ClientCredit{
			{ID: "credit-1", ClientID: "client-1", Amount: decimal.NewFromInt(500), Remaining: decimal.NewFromInt(200)},
		}, nil)

		w := do(t, newRouter(engine), http.MethodGet, "/charges/charge-1/credits", "")
		require.Equal(t, http.StatusOK, w.Code)

		var credits []models.ClientCredit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &credits))
		require.Len(t, credits, 1)
		assert.True(t, decimal.NewFromInt(200).Equal(credits[0].Remaining))
		engine.AssertExpectations(t)
	})

	t.Run("unknown traveler", func(t *testing.T) {
		engine := &MockEngine{}
		engine.On("ClientCredits", "charge-9").Return(nil, billing.ErrUnknownTraveler)

		w := do(t, newRouter(engine), http.MethodGet, "/charges/charge-9/credits", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
