package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack/internal/domain"
)

// CalendarUseCase manages planned payments and generates the payment
// calendar forecast.
type CalendarUseCase struct {
	accountRepo AccountRepository
	paymentRepo PlannedPaymentRepository
	idGen       IDGenerator
}

// NewCalendarUseCase creates a new CalendarUseCase.
func NewCalendarUseCase(accountRepo AccountRepository, paymentRepo PlannedPaymentRepository, idGen IDGenerator) *CalendarUseCase {
	return &CalendarUseCase{
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		idGen:       idGen,
	}
}

// PlannedPaymentInput represents input for creating or updating a planned
// payment.
type PlannedPaymentInput struct {
	WorkspaceID string
	Description string
	Amount      decimal.Decimal
	Flow        domain.FlowType
	AnchorDate  time.Time
	Recurring   bool
	Rule        domain.RecurrenceRule
}

// CreatePlannedPayment creates a planned payment.
func (uc *CalendarUseCase) CreatePlannedPayment(ctx context.Context, input PlannedPaymentInput) (*domain.PlannedPayment, error) {
	now := time.Now().UTC()

	payment := &domain.PlannedPayment{
		ID:          uc.idGen.Generate(),
		WorkspaceID: input.WorkspaceID,
		Description: input.Description,
		Amount:      input.Amount,
		Flow:        input.Flow,
		AnchorDate:  domain.DateOnly(input.AnchorDate),
		Recurring:   input.Recurring,
		Rule:        input.Rule,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePlannedPayment replaces a planned payment's fields.
func (uc *CalendarUseCase) UpdatePlannedPayment(ctx context.Context, id string, input PlannedPaymentInput) (*domain.PlannedPayment, error) {
	existing, err := uc.paymentRepo.GetByID(ctx, input.WorkspaceID, id)
	if err != nil {
		return nil, err
	}

	payment := &domain.PlannedPayment{
		ID:          existing.ID,
		WorkspaceID: existing.WorkspaceID,
		Description: input.Description,
		Amount:      input.Amount,
		Flow:        input.Flow,
		AnchorDate:  domain.DateOnly(input.AnchorDate),
		Recurring:   input.Recurring,
		Rule:        input.Rule,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetPlannedPayment retrieves a planned payment by id within a workspace.
func (uc *CalendarUseCase) GetPlannedPayment(ctx context.Context, workspaceID, id string) (*domain.PlannedPayment, error) {
	return uc.paymentRepo.GetByID(ctx, workspaceID, id)
}

// ListPlannedPayments lists the workspace's planned payments.
func (uc *CalendarUseCase) ListPlannedPayments(ctx context.Context, workspaceID string, limit, offset int) ([]*domain.PlannedPayment, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.paymentRepo.List(ctx, workspaceID, limit, offset)
}

// DeletePlannedPayment removes a planned payment.
func (uc *CalendarUseCase) DeletePlannedPayment(ctx context.Context, workspaceID, id string) error {
	if _, err := uc.paymentRepo.GetByID(ctx, workspaceID, id); err != nil {
		return err
	}

	return uc.paymentRepo.Delete(ctx, workspaceID, id)
}

// Generate expands the workspace's planned payments over [start, end] and
// simulates the running balance day by day, starting from the current sum of
// active account balances. The forecast is a pure function of that state and
// re-derivable at any time; it reads history from nothing and persists
// nothing.
func (uc *CalendarUseCase) Generate(ctx context.Context, workspaceID string, start, end time.Time) (*domain.CalendarForecast, error) {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)

	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	opening, err := uc.accountRepo.SumActiveBalances(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListIntersecting(ctx, workspaceID, start, end)
	if err != nil {
		return nil, err
	}

	forecast := domain.SimulateCalendar(opening, payments, start, end)

	return &forecast, nil
}
