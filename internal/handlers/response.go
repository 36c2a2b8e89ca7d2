package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/billing"
	mW "github.com/tourdesk/backend/internal/middleware"
	"github.com/tourdesk/backend/internal/models"
	"github.com/tourdesk/backend/internal/services"
)

// PaymentEngine is the payment service as seen by the HTTP layer.
type PaymentEngine interface {
	Snapshot(ctx context.Context, chargeID string) (billing.Snapshot, error)
	RecordPayment(ctx context.Context, in services.RecordPaymentInput) (services.Result, error)
	SettleInstallment(ctx context.Context, in services.SettleInstallmentInput) (services.Result, error)
	DeletePayment(ctx context.Context, paymentID, actor string) (services.Result, error)
	CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection, actor string) (services.Result, error)
	ApplyCredit(ctx context.Context, in services.ApplyCreditInput) (services.Result, error)
	ClientCredits(ctx context.Context, chargeID string) ([]models.ClientCredit, error)
	InstallmentMenu(ctx context.Context, chargeID string) (billing.Menu, error)
	ValidatePlan(ctx context.Context, chargeID string, plan billing.Plan) (billing.Compliance, error)
	CommitPlan(ctx context.Context, chargeID string, plan billing.Plan, actor string) (services.Result, error)
	UpdateCharge(ctx context.Context, chargeID string, update models.ChargeUpdate, actor string) (services.Result, error)
	CancelEnrollment(ctx context.Context, chargeID string, confirm bool, actor string) error
}

// PlanErrorResponse names the broken plan invariant and by how much
type PlanErrorResponse struct {
	Error     string            `json:"error"`
	Invariant billing.Invariant `json:"invariant"`
	Delta     decimal.Decimal   `json:"delta"`
}

// StaleSnapshotResponse is returned when the ledger could not be read
type StaleSnapshotResponse struct {
	Error    string           `json:"error"`
	Snapshot billing.Snapshot `json:"snapshot"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// decodeJSON reads exactly one JSON object into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func actor(r *http.Request) string {
	userID, _ := mW.GetUserID(r.Context())
	return userID
}

// writeResult answers a write. A write whose snapshot could not be
// recomputed is still reported as accepted so clients do not retry it.
func writeResult(w http.ResponseWriter, status int, res services.Result, err error) {
	if err == nil {
		writeJSON(w, status, res)
		return
	}
	if errors.Is(err, services.ErrRecomputeFailed) {
		w.Header().Set("X-Snapshot-Stale", "true")
		writeJSON(w, http.StatusAccepted, res)
		return
	}
	writeServiceError(w, err)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	var planErr *billing.InvalidPlanError

	switch {
	case errors.As(err, &validationErrs):
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
	case errors.As(err, &planErr):
		writeJSON(w, http.StatusUnprocessableEntity, PlanErrorResponse{
			Error:     planErr.Error(),
			Invariant: planErr.Invariant,
			Delta:     planErr.Delta,
		})
	case errors.Is(err, services.ErrNothingPending),
		errors.Is(err, billing.ErrUnpricedTour):
		services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, billing.ErrInvalidAmount),
		errors.Is(err, billing.ErrInvalidCategory),
		errors.Is(err, billing.ErrInvalidDiscount),
		errors.Is(err, services.ErrConfirmationRequired):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, billing.ErrStaleCreditApplication),
		errors.Is(err, models.ErrInstallmentNotPending):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, billing.ErrUnknownTraveler),
		errors.Is(err, services.ErrUnknownPayment),
		errors.Is(err, services.ErrUnknownInstallment),
		errors.Is(err, services.ErrUnknownCredit):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, services.ErrStoreUnavailable):
		log.Printf("[HTTP] Store unavailable: %v", err)
		services.SendErrorResponse(w, "Ledger temporarily unavailable", http.StatusServiceUnavailable, nil)
	default:
		log.Printf("[HTTP] Unexpected error: %v", err)
		services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}
