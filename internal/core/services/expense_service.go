package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/dto"
	"github.com/spendwise/spendwise_app/internal/middleware"
)

// ExpenseService manages a user's expense records and enforces the free-plan
// record ceiling on creation.
type ExpenseService struct {
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	subscriptionSvc portssvc.SubscriptionSvcFacade
	freePlanLimit   int
	now             func() time.Time
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, subscriptionSvc portssvc.SubscriptionSvcFacade, freePlanLimit int) *ExpenseService {
	return &ExpenseService{
		expenseRepo:     expenseRepo,
		subscriptionSvc: subscriptionSvc,
		freePlanLimit:   freePlanLimit,
		now:             time.Now,
	}
}

// CreateExpense creates a new expense. Users on the free plan are capped at
// a fixed number of expense records.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if err := s.checkPlanCeiling(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Date:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if expense.Currency == "" {
		expense.Currency = domain.BaseCurrencyCode
	}
	if expense.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}
	return &expense, nil
}

// GetExpenseByID returns an expense the user owns.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return s.findOwnedExpense(ctx, userID, expenseID)
}

// ListExpenses returns a page of the user's expenses with the total count.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, params dto.ListRecordsParams) ([]domain.Expense, int64, error) {
	filter, err := recordFilterFromParams(params)
	if err != nil {
		return nil, 0, err
	}
	expenses, total, err := s.expenseRepo.ListExpensesByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, total, nil
}

// UpdateExpense applies partial changes to an expense the user owns.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	expense.LastUpdatedAt = s.now()
	expense.LastUpdatedBy = userID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("updating expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense the user owns.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if _, err := s.findOwnedExpense(ctx, userID, expenseID); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("deleting expense %s: %w", expenseID, err)
	}
	return nil
}

// checkPlanCeiling rejects creation when a free-plan user has reached the
// record limit. Pro users are never capped.
func (s *ExpenseService) checkPlanCeiling(ctx context.Context, userID string) error {
	sub, err := s.subscriptionSvc.GetOrCreateSubscription(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolving plan for user %s: %w", userID, err)
	}
	if sub.Plan != domain.PlanFree {
		return nil
	}

	count, err := s.expenseRepo.CountExpensesByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("counting expenses for user %s: %w", userID, err)
	}
	if count >= int64(s.freePlanLimit) {
		middleware.GetLoggerFromCtx(ctx).Info("free plan expense limit reached",
			"userID", userID, "count", count, "limit", s.freePlanLimit)
		return fmt.Errorf("%w: free plan expense limit reached, upgrade to add more", apperrors.ErrForbidden)
	}
	return nil
}

func (s *ExpenseService) findOwnedExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("finding expense %s: %w", expenseID, err)
	}
	if expense.UserID != userID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return expense, nil
}

// recordFilterFromParams translates the query parameters into a repository
// filter. Dates are accepted as RFC 3339 or plain YYYY-MM-DD.
func recordFilterFromParams(params dto.ListRecordsParams) (portsrepo.RecordListFilter, error) {
	filter := portsrepo.RecordListFilter{
		CategoryID: params.CategoryID,
		Limit:      params.Limit,
		Offset:     (params.Page - 1) * params.Limit,
	}
	if params.StartDate != "" {
		t, err := parseDateParam(params.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid startDate", apperrors.ErrValidation)
		}
		filter.StartDate = &t
	}
	if params.EndDate != "" {
		t, err := parseDateParam(params.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid endDate", apperrors.ErrValidation)
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
