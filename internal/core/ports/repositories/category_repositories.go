package repositories

import (
	"context"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
