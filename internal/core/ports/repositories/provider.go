package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	TransactionRepo    TransactionRepositoryFacade
	ReconciliationRepo ReconciliationRepositoryFacade
	UserRepo           UserRepositoryFacade
	AuditLogRepo       AuditLogRepository
}
