package mapping

import (
	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/models"
)

// ToDomainUser converts a model User to a domain User. Credential columns
// stay behind in the model.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Email:           m.Email,
		Name:            m.Name,
		Role:            domain.UserRole(m.Role),
		DefaultCurrency: m.DefaultCurrency,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
