package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/services"
)

type PlanHandler struct {
	engine    PaymentEngine
	validator *services.ValidationHelper
}

func NewPlanHandler(engine PaymentEngine) *PlanHandler {
	return &PlanHandler{
		engine:    engine,
		validator: services.NewValidationHelper(),
	}
}

// PlanRequest is a plan as sent by the admin app, due dates as YYYY-MM-DD
type PlanRequest struct {
	Installments []PlanLine `json:"installments" validate:"required,min=1,dive"`
	Custom       bool       `json:"custom"`
}

type PlanLine struct {
	Number  int             `json:"number" validate:"gte=0"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

func (p PlanRequest) plan() billing.Plan {
	plan := billing.Plan{Custom: p.Custom, Installments: make([]billing.PlanInstallment, len(p.Installments))}
	for i, line := range p.Installments {
		due, _ := time.Parse(time.DateOnly, line.DueDate)
		number := line.Number
		if number == 0 {
			number = i + 1
		}
		plan.Installments[i] = billing.PlanInstallment{Number: number, Amount: line.Amount, DueDate: due}
	}
	return plan
}

// Routes mounts the installment plan endpoints
func (h *PlanHandler) Routes(r chi.Router) {
	r.Get("/charges/{chargeId}/installment-menu", h.GetMenu)
	r.Post("/charges/{chargeId}/plan/validate", h.ValidatePlan)
	r.Post("/charges/{chargeId}/plan", h.CommitPlan)
}

func (h *PlanHandler) decodePlan(w http.ResponseWriter, r *http.Request) (billing.Plan, bool) {
	var req PlanRequest
	if !decodeJSON(w, r, &req) {
		return billing.Plan{}, false
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return billing.Plan{}, false
	}
	return req.plan(), true
}

// GetMenu lists the installment plans on offer
// @Summary Installment menu
// @Description Single immediate payment plus every equal-installment plan ending before trip date minus the deadline offset
// @Tags Installments
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Success 200 {object} billing.Menu
// @Failure 404 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /charges/{chargeId}/installment-menu [get]
func (h *PlanHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.engine.InstallmentMenu(r.Context(), chi.URLParam(r, "chargeId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// ValidatePlan checks a plan without committing it
// @Summary Validate plan
// @Tags Installments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param request body PlanRequest true "Plan"
// @Success 200 {object} billing.Compliance
// @Failure 400 {object} services.ErrorResponse
// @Router /charges/{chargeId}/plan/validate [post]
func (h *PlanHandler) ValidatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}
	compliance, err := h.engine.ValidatePlan(r.Context(), chi.URLParam(r, "chargeId"), plan)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compliance)
}

// CommitPlan replaces the pending installments with a compliant plan
// @Summary Commit plan
// @Tags Installments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chargeId path string true "Charge record ID"
// @Param request body PlanRequest true "Plan"
// @Success 201 {object} services.Result
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} PlanErrorResponse
// @Router /charges/{chargeId}/plan [post]
func (h *PlanHandler) CommitPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}
	res, err := h.engine.CommitPlan(r.Context(), chi.URLParam(r, "chargeId"), plan, actor(r))
	writeResult(w, http.StatusCreated, res, err)
}
