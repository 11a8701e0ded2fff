package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleAuth   GoogleAuthSvcFacade
	Category     CategorySvcFacade
	Expense      ExpenseSvcFacade
	Income       IncomeSvcFacade
	Currency     CurrencySvcFacade
	Subscription SubscriptionSvcFacade
	Reconciler   BillingReconcilerSvc
	Reporting    ReportingService
}
