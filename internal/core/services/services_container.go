package services

import (
	portsrepo "github.com/spendwise/spendwise_app/internal/core/ports/repositories"
	portssvc "github.com/spendwise/spendwise_app/internal/core/ports/services"
	"github.com/spendwise/spendwise_app/internal/platform/billing"
	"github.com/spendwise/spendwise_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The provider client is shared by the subscription service (outbound
	// checkout/portal calls) and the reconciler (period-end enrichment).
	var provider portssvc.BillingProvider
	if cfg.BillingAPIKey != "" {
		provider = billing.NewClient(cfg.BillingAPIKey, cfg.BillingAPIBaseURL)
	}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(container.User, cfg)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	container.Currency = NewCurrencyService(
		NewHTTPRateSource(cfg.RateSourceURL),
		WithRateTTL(cfg.RateCacheTTL),
	)

	container.Subscription = NewSubscriptionService(
		repos.SubscriptionRepo,
		provider,
		cfg.BillingProPriceID,
		cfg.FrontendBaseURL,
	)
	container.Reconciler = NewBillingReconcilerService(repos.SubscriptionRepo, provider)

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, container.Subscription, cfg.FreePlanExpenseLimit)
	container.Income = NewIncomeService(repos.IncomeRepo)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		container.Subscription,
		repos.ExpenseRepo,
		cfg.FreePlanExpenseLimit,
	)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.TokenSvcFacade        = (*TokenService)(nil)
	_ portssvc.GoogleAuthSvcFacade   = (*GoogleAuthService)(nil)
	_ portssvc.CategorySvcFacade     = (*CategoryService)(nil)
	_ portssvc.ExpenseSvcFacade      = (*ExpenseService)(nil)
	_ portssvc.IncomeSvcFacade       = (*IncomeService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*SubscriptionService)(nil)
	_ portssvc.BillingReconcilerSvc  = (*BillingReconcilerService)(nil)
	_ portssvc.ReportingService      = (*ReportingService)(nil)
	_ portssvc.BillingProvider       = (*billing.Client)(nil)
)
