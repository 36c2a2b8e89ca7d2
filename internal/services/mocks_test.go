package services

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/models"
)

type MockTourCatalog struct {
	mock.Mock
}

func (m *MockTourCatalog) ListPrices(ctx context.Context, names []string) (map[string]decimal.Decimal, error) {
	args := m.Called(names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// memoryStore is an in-memory Store with the same conflict rules as the
// Postgres repositories.
type memoryStore struct {
	mu            sync.Mutex
	charges       map[string]*models.ChargeRecord
	payments      []models.PaymentEntry
	installments  []models.Installment
	applied       []models.AppliedCredit
	clientCredits []models.ClientCredit

	readErr         error
	writeErr        error
	breakAfterWrite error
}

func newMemoryStore(records ...models.ChargeRecord) *memoryStore {
	s := &memoryStore{charges: map[string]*models.ChargeRecord{}}
	for i := range records {
		rec := records[i]
		s.charges[rec.ID] = &rec
	}
	return s
}

func (s *memoryStore) wrote() {
	if s.breakAfterWrite != nil {
		s.readErr = s.breakAfterWrite
	}
}

func (s *memoryStore) GetCharge(ctx context.Context, chargeID string) (*models.ChargeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	rec, ok := s.charges[chargeID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *rec
	return &out, nil
}

func (s *memoryStore) UpdateCharge(ctx context.Context, rec *models.ChargeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	if _, ok := s.charges[rec.ID]; !ok {
		return models.ErrNotFound
	}
	updated := *rec
	s.charges[rec.ID] = &updated
	s.wrote()
	return nil
}

func (s *memoryStore) DeleteCharge(ctx context.Context, chargeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	if _, ok := s.charges[chargeID]; !ok {
		return models.ErrNotFound
	}
	delete(s.charges, chargeID)

	keptPayments := s.payments[:0]
	for _, p := range s.payments {
		if p.ChargeID != chargeID {
			keptPayments = append(keptPayments, p)
		}
	}
	s.payments = keptPayments

	keptInstallments := s.installments[:0]
	for _, inst := range s.installments {
		if inst.ChargeID != chargeID {
			keptInstallments = append(keptInstallments, inst)
		}
	}
	s.installments = keptInstallments

	keptCredits := s.applied[:0]
	for _, c := range s.applied {
		if c.ChargeID != chargeID {
			keptCredits = append(keptCredits, c)
		}
	}
	s.applied = keptCredits
	s.wrote()
	return nil
}

func (s *memoryStore) ListPayments(ctx context.Context, chargeID string) ([]models.PaymentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := []models.PaymentEntry{}
	for _, p := range s.payments {
		if p.ChargeID == chargeID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out, nil
}

func (s *memoryStore) GetPayment(ctx context.Context, paymentID string) (*models.PaymentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, p := range s.payments {
		if p.ID == paymentID {
			out := p
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memoryStore) InsertPayment(ctx context.Context, entry *models.PaymentEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.payments = append(s.payments, *entry)
	s.wrote()
	return nil
}

func (s *memoryStore) DeletePayment(ctx context.Context, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	for i, p := range s.payments {
		if p.ID != paymentID {
			continue
		}
		s.payments = append(s.payments[:i], s.payments[i+1:]...)
		if p.InstallmentID != nil {
			kept := s.payments[:0]
			for _, other := range s.payments {
				if other.InstallmentID == nil || *other.InstallmentID != *p.InstallmentID {
					kept = append(kept, other)
				}
			}
			s.payments = kept
			for j := range s.installments {
				if s.installments[j].ID == *p.InstallmentID && s.installments[j].Status == models.InstallmentPaid {
					s.installments[j].Status = models.InstallmentPending
					s.installments[j].PaidAt = nil
					s.installments[j].Method = nil
				}
			}
		}
		s.wrote()
		return nil
	}
	return models.ErrNotFound
}

func (s *memoryStore) CorrectPayment(ctx context.Context, paymentID string, c models.PaymentCorrection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.payments {
		if s.payments[i].ID != paymentID {
			continue
		}
		if c.Method != nil {
			s.payments[i].Method = *c.Method
		}
		if c.Note != nil {
			s.payments[i].Note = *c.Note
		}
		if c.PaidAt != nil {
			s.payments[i].PaidAt = *c.PaidAt
		}
		s.wrote()
		return nil
	}
	return models.ErrNotFound
}

func (s *memoryStore) ListInstallments(ctx context.Context, chargeID string) ([]models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := []models.Installment{}
	for _, inst := range s.installments {
		if inst.ChargeID == chargeID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *memoryStore) GetInstallment(ctx context.Context, installmentID string) (*models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	for _, inst := range s.installments {
		if inst.ID == installmentID {
			out := inst
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memoryStore) SettleInstallment(ctx context.Context, installmentID string, entries []*models.PaymentEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.installments {
		inst := &s.installments[i]
		if inst.ID != installmentID {
			continue
		}
		if inst.Status != models.InstallmentPending {
			return models.ErrInstallmentNotPending
		}
		paidAt := entries[0].PaidAt
		method := entries[0].Method
		inst.Status = models.InstallmentPaid
		inst.PaidAt = &paidAt
		inst.Method = &method
		for _, e := range entries {
			id := installmentID
			e.InstallmentID = &id
			s.payments = append(s.payments, *e)
		}
		s.wrote()
		return nil
	}
	return models.ErrInstallmentNotPending
}

func (s *memoryStore) ReplacePlan(ctx context.Context, chargeID string, installments []models.Installment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.installments {
		if s.installments[i].ChargeID == chargeID && s.installments[i].Status == models.InstallmentPending {
			s.installments[i].Status = models.InstallmentCancelled
		}
	}
	s.installments = append(s.installments, installments...)
	s.wrote()
	return nil
}

func (s *memoryStore) ListAppliedCredits(ctx context.Context, chargeID string) ([]models.AppliedCredit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := []models.AppliedCredit{}
	for _, c := range s.applied {
		if c.ChargeID == chargeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memoryStore) remaining(creditID string) (decimal.Decimal, *models.ClientCredit) {
	for i := range s.clientCredits {
		credit := &s.clientCredits[i]
		if credit.ID != creditID {
			continue
		}
		left := credit.Amount
		for _, a := range s.applied {
			if a.CreditID == creditID {
				left = left.Sub(a.Amount)
			}
		}
		return left, credit
	}
	return decimal.Zero, nil
}

func (s *memoryStore) ListClientCredits(ctx context.Context, clientID string) ([]models.ClientCredit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := []models.ClientCredit{}
	for _, c := range s.clientCredits {
		if c.ClientID == clientID {
			c.Remaining, _ = s.remaining(c.ID)
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memoryStore) ApplyCredit(ctx context.Context, app *models.AppliedCredit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	left, credit := s.remaining(app.CreditID)
	rec, ok := s.charges[app.ChargeID]
	if credit == nil || !ok || credit.ClientID != rec.ClientID {
		return models.ErrNotFound
	}
	if left.LessThan(app.Amount) {
		return billing.ErrStaleCreditApplication
	}
	s.applied = append(s.applied, *app)
	s.wrote()
	return nil
}
