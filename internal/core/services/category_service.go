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

const defaultCategoryColor = "#94a3b8"

// CategoryService manages a user's expense/income categories.
type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	now          func() time.Time
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, now: time.Now}
}

// CreateCategory creates a new category owned by the user.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := s.now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}
	return &category, nil
}

// ListCategories returns all categories owned by the user.
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies partial changes to a category the user owns.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = s.now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("updating category %s: %w", categoryID, err)
	}
	return category, nil
}

// DeleteCategory removes a category the user owns.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("deleting category %s: %w", categoryID, err)
	}
	return nil
}

// findOwnedCategory loads a category and enforces ownership. A category
// owned by someone else is indistinguishable from a missing one.
func (s *CategoryService) findOwnedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("finding category %s: %w", categoryID, err)
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}
	return category, nil
}
