package services

import (
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The audit service is built first so every other
// service can record its actions through it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Audit = NewAuditService(repos.AuditLogRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionAuditService(container.Audit),
	)
	container.Reconciliation = NewReconciliationService(
		repos.ReconciliationRepo,
		repos.TransactionRepo,
		WithReconciliationAuditService(container.Audit),
	)
	container.User = NewUserService(
		repos.UserRepo,
		WithUserAuditService(container.Audit),
	)

	return container
}
