package dto

import (
	"time"

	"github.com/spendwise/spendwise_app/internal/core/domain"
)

// UpdateSubscriptionRequest is a full replacement of the caller's
// subscription record. CurrentPeriodEnd is provider-style epoch seconds;
// nil clears the period.
type UpdateSubscriptionRequest struct {
	Plan                  string  `json:"plan" binding:"required,oneof=FREE PRO"`
	Status                string  `json:"status" binding:"required,oneof=ACTIVE PAST_DUE CANCELLED"`
	BillingCustomerID     *string `json:"billingCustomerID"`
	BillingSubscriptionID *string `json:"billingSubscriptionID"`
	CurrentPeriodEnd      *int64  `json:"currentPeriodEnd"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID        string     `json:"subscriptionID"`
	Plan                  string     `json:"plan"`
	Status                string     `json:"status"`
	BillingCustomerID     *string    `json:"billingCustomerID,omitempty"`
	BillingSubscriptionID *string    `json:"billingSubscriptionID,omitempty"`
	CurrentPeriodEnd      *time.Time `json:"currentPeriodEnd,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	LastUpdatedAt         time.Time  `json:"lastUpdatedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse DTO
func ToSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:        sub.SubscriptionID,
		Plan:                  string(sub.Plan),
		Status:                string(sub.Status),
		BillingCustomerID:     sub.BillingCustomerID,
		BillingSubscriptionID: sub.BillingSubscriptionID,
		CurrentPeriodEnd:      sub.CurrentPeriodEnd,
		CreatedAt:             sub.CreatedAt,
		LastUpdatedAt:         sub.LastUpdatedAt,
	}
}

// CheckoutSessionResponse returns the hosted checkout or portal URL.
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}
