package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/spendwise_app/internal/apperrors"
	"github.com/spendwise/spendwise_app/internal/core/domain"
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	"github.com/spendwise/spendwise_app/internal/dto"
)

// IncomeService manages a user's income records. Incomes are not subject to
// the free-plan ceiling.
type IncomeService struct {
	incomeRepo portsrepo.IncomeRepositoryFacade
	now        func() time.Time
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(incomeRepo portsrepo.IncomeRepositoryFacade) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo, now: time.Now}
}

// CreateIncome creates a new income record.
func (s *IncomeService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	now := s.now()
	income := domain.Income{
		IncomeID:    uuid.NewString(),
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
		income.Date = *req.Date
	}
	if income.Currency == "" {
		income.Currency = domain.BaseCurrencyCode
	}
	if income.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	if err := s.incomeRepo.SaveIncome(ctx, income); err != nil {
		return nil, fmt.Errorf("saving income: %w", err)
	}
	return &income, nil
}

// GetIncomeByID returns an income the user owns.
func (s *IncomeService) GetIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	return s.findOwnedIncome(ctx, userID, incomeID)
}

// ListIncomes returns a page of the user's incomes with the total count.
func (s *IncomeService) ListIncomes(ctx context.Context, userID string, params dto.ListRecordsParams) ([]domain.Income, int64, error) {
	filter, err := recordFilterFromParams(params)
	if err != nil {
		return nil, 0, err
	}
	incomes, total, err := s.incomeRepo.ListIncomesByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("listing incomes: %w", err)
	}
	return incomes, total, nil
}

// UpdateIncome applies partial changes to an income the user owns.
func (s *IncomeService) UpdateIncome(ctx context.Context, userID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	income, err := s.findOwnedIncome(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		income.Title = *req.Title
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		income.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		income.CategoryID = *req.CategoryID
	}
	if req.Currency != nil {
		income.Currency = *req.Currency
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Date != nil {
		income.Date = *req.Date
	}
	income.LastUpdatedAt = s.now()
	income.LastUpdatedBy = userID

	if err := s.incomeRepo.UpdateIncome(ctx, *income); err != nil {
		return nil, fmt.Errorf("updating income %s: %w", incomeID, err)
	}
	return income, nil
}

// DeleteIncome removes an income the user owns.
func (s *IncomeService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	if _, err := s.findOwnedIncome(ctx, userID, incomeID); err != nil {
		return err
	}
	if err := s.incomeRepo.DeleteIncome(ctx, incomeID); err != nil {
		return fmt.Errorf("deleting income %s: %w", incomeID, err)
	}
	return nil
}

func (s *IncomeService) findOwnedIncome(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("finding income %s: %w", incomeID, err)
	}
	if income.UserID != userID {
		return nil, fmt.Errorf("income %s: %w", incomeID, apperrors.ErrNotFound)
	}
	return income, nil
}
