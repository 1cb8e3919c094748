package services

// ServiceContainer holds instances of all the application services. It is the
// entry point used by the handlers.
type ServiceContainer struct {
	Transaction    TransactionSvcFacade
	Reconciliation ReconciliationSvcFacade
	User           UserSvcFacade
	Audit          AuditSvcFacade
}
