package audit

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventPaymentRecorded    = "PAYMENT_RECORDED"
	EventPaymentDeleted     = "PAYMENT_DELETED"
	EventPaymentCorrected   = "PAYMENT_CORRECTED"
	EventInstallmentSettled = "INSTALLMENT_SETTLED"
	EventCreditApplied      = "CREDIT_APPLIED"
	EventPlanCommitted      = "PLAN_COMMITTED"
	EventChargeUpdated      = "CHARGE_UPDATED"
	EventEnrollmentCanceled = "ENROLLMENT_CANCELLED"
	EventError              = "ERROR"
)

type Event struct {
	Timestamp time.Time        `json:"timestamp"`
	EventType string           `json:"event_type"`
	ChargeID  string           `json:"charge_id"`
	EntityID  string           `json:"entity_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Actor     string           `json:"actor,omitempty"`
	Status    string           `json:"status"`
	Details   any              `json:"details,omitempty"`
}

type Logger struct {
	logger *log.Logger
	now    func() time.Time
}

func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr)
}

// NewLoggerTo writes audit lines to w.
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{
		logger: log.New(w, "", log.LstdFlags),
		now:    time.Now,
	}
}

func (a *Logger) LogMoney(eventType, chargeID, entityID, actor string, amount decimal.Decimal, details any) {
	a.log(Event{
		Timestamp: a.now(),
		EventType: eventType,
		ChargeID:  chargeID,
		EntityID:  entityID,
		Amount:    &amount,
		Actor:     actor,
		Status:    "SUCCESS",
		Details:   details,
	})
}

func (a *Logger) LogOperation(eventType, chargeID, entityID, actor string, details any) {
	a.log(Event{
		Timestamp: a.now(),
		EventType: eventType,
		ChargeID:  chargeID,
		EntityID:  entityID,
		Actor:     actor,
		Status:    "SUCCESS",
		Details:   details,
	})
}

func (a *Logger) LogError(operation, chargeID string, err error) {
	a.log(Event{
		Timestamp: a.now(),
		EventType: EventError,
		ChargeID:  chargeID,
		Status:    "FAILED",
		Details:   map[string]string{"operation": operation, "error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	if a == nil {
		return
	}
	data, _ := json.Marshal(event)
	a.logger.Printf("AUDIT: %s", string(data))
}
