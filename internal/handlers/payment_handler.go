package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourdesk/backend/internal/models"
	"github.com/tourdesk/backend/internal/services"
)

type PaymentHandler struct {
	engine PaymentEngine
}

func NewPaymentHandler(engine PaymentEngine) *PaymentHandler {
	return &PaymentHandler{engine: engine}
}

// Routes mounts the payment endpoints
func (h *PaymentHandler) Routes(r chi.Router) {
	r.Get("/charges/{chargeId}/snapshot", h.GetSnapshot)
	r.Post("/charges/{chargeId}/payments", h.RecordPayment)
	r.Delete("/payments/{paymentId}", h.DeletePayment)
	r.Patch("/payments/{paymentId}", h.CorrectPayment)
	r.Post("/installments/{installmentId}/settle", h.SettleInstallment)
	r.Get("/charges/{chargeId}/credits", h.ListCredits)
	r.Post("/charges/{chargeId}/credits", h.ApplyCredit)
	r.Patch("/charges/{chargeId}", h.UpdateCharge)
	r.Delete("/charges/{chargeId}", h.CancelEnrollment)
}

// GetSnapshot returns the breakdown and status of a traveler
// @Summary Payment snapshot
// @Description Breakdown per category and derived status, recomputed from the payment history
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Success 200 {object} billing.Snapshot
// @Failure 404 {object} services.ErrorResponse
// @Failure 503 {object} StaleSnapshotResponse
// @Router /charges/{chargeId}/snapshot [get]
func (h *PaymentHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Snapshot(r.Context(), chi.URLParam(r, "chargeId"))
	if err == nil {
		writeJSON(w, http.StatusOK, snap)
		return
	}
	if errors.Is(err, services.ErrStoreUnavailable) {
		writeJSON(w, http.StatusServiceUnavailable, StaleSnapshotResponse{
			Error:    "Ledger temporarily unavailable",
			Snapshot: snap,
		})
		return
	}
	writeServiceError(w, err)
}

// RecordPayment records a categorized payment
// @Summary Record payment
// @Description Appends a payment to the trip or tours category. Overpayment is accepted with a warning.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param request body services.RecordPaymentInput true "Payment"
// @Success 201 {object} services.Result
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /charges/{chargeId}/payments [post]
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in services.RecordPaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ChargeID = chi.URLParam(r, "chargeId")
	in.RecordedBy = actor(r)

	res, err := h.engine.RecordPayment(r.Context(), in)
	writeResult(w, http.StatusCreated, res, err)
}

// DeletePayment removes a payment recorded by mistake
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} services.Result
// @Failure 404 {object} services.ErrorResponse
// @Router /payments/{paymentId} [delete]
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.DeletePayment(r.Context(), chi.URLParam(r, "paymentId"), actor(r))
	writeResult(w, http.StatusOK, res, err)
}

// CorrectPayment fixes method, note or paid-at of a payment
// @Summary Correct payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Param request body models.PaymentCorrection true "Fields to correct"
// @Success 200 {object} services.Result
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /payments/{paymentId} [patch]
func (h *PaymentHandler) CorrectPayment(w http.ResponseWriter, r *http.Request) {
	var c models.PaymentCorrection
	if !decodeJSON(w, r, &c) {
		return
	}
	res, err := h.engine.CorrectPayment(r.Context(), chi.URLParam(r, "paymentId"), c, actor(r))
	writeResult(w, http.StatusOK, res, err)
}

// SettleInstallment pays a plan installment in full
// @Summary Settle installment
// @Tags Installments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param installmentId path string true "Installment ID"
// @Param request body services.SettleInstallmentInput true "Payment method and date"
// @Success 200 {object} services.Result
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /installments/{installmentId}/settle [post]
func (h *PaymentHandler) SettleInstallment(w http.ResponseWriter, r *http.Request) {
	var in services.SettleInstallmentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.InstallmentID = chi.URLParam(r, "installmentId")
	in.RecordedBy = actor(r)

	res, err := h.engine.SettleInstallment(r.Context(), in)
	writeResult(w, http.StatusOK, res, err)
}

// ListCredits lists the credits of the traveler's client
// @Summary Client credits
// @Tags Credits
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Success 200 {array} models.ClientCredit
// @Failure 404 {object} services.ErrorResponse
// @Router /charges/{chargeId}/credits [get]
func (h *PaymentHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.engine.ClientCredits(r.Context(), chi.URLParam(r, "chargeId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

// ApplyCredit applies part of a client credit to a category
// @Summary Apply credit
// @Tags Credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param request body services.ApplyCreditInput true "Credit application"
// @Success 201 {object} services.Result
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /charges/{chargeId}/credits [post]
func (h *PaymentHandler) ApplyCredit(w http.ResponseWriter, r *http.Request) {
	var in services.ApplyCreditInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ChargeID = chi.URLParam(r, "chargeId")
	in.AppliedBy = actor(r)

	res, err := h.engine.ApplyCredit(r.Context(), in)
	writeResult(w, http.StatusCreated, res, err)
}

// UpdateCharge edits discount, free flag or tours
// @Summary Update charge record
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param request body models.ChargeUpdate true "Fields to change"
// @Success 200 {object} services.Result
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /charges/{chargeId} [patch]
func (h *PaymentHandler) UpdateCharge(w http.ResponseWriter, r *http.Request) {
	var update models.ChargeUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	res, err := h.engine.UpdateCharge(r.Context(), chi.URLParam(r, "chargeId"), update, actor(r))
	writeResult(w, http.StatusOK, res, err)
}

// CancelEnrollment removes a traveler and its payment history
// @Summary Cancel enrollment
// @Tags Payments
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /charges/{chargeId} [delete]
func (h *PaymentHandler) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.engine.CancelEnrollment(r.Context(), chi.URLParam(r, "chargeId"), confirm, actor(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
