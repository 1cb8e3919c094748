package pgsql

import (
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the concrete pgx repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		UserRepo:           newPgxUserRepository(dbPool),
		AuditLogRepo:       newPgxAuditLogRepository(dbPool),
	}
}
