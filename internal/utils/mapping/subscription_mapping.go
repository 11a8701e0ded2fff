package mapping

import (
	"database/sql"

	"github.com/spendwise/spendwise_app/internal/core/domain"
	"github.com/spendwise/spendwise_app/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	m := models.Subscription{
		SubscriptionID: d.SubscriptionID,
		UserID:         d.UserID,
		Plan:           string(d.Plan),
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.BillingCustomerID != nil {
		m.BillingCustomerID = sql.NullString{String: *d.BillingCustomerID, Valid: true}
	}
	if d.BillingSubscriptionID != nil {
		m.BillingSubscriptionID = sql.NullString{String: *d.BillingSubscriptionID, Valid: true}
	}
	if d.CurrentPeriodEnd != nil {
		m.CurrentPeriodEnd = sql.NullTime{Time: *d.CurrentPeriodEnd, Valid: true}
	}
	return m
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:        m.SubscriptionID,
		UserID:                m.UserID,
		Plan:                  domain.Plan(m.Plan),
		Status:                domain.SubscriptionStatus(m.Status),
		BillingCustomerID:     models.NullStringPtr(m.BillingCustomerID),
		BillingSubscriptionID: models.NullStringPtr(m.BillingSubscriptionID),
		CurrentPeriodEnd:      models.NullTimePtr(m.CurrentPeriodEnd),
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
