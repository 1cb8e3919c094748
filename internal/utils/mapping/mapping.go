// Package mapping converts between persistence models and domain types.
// The two sets of structs are kept separate so schema changes never leak
// into the core packages.
package mapping

import (
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/models"
)

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// --- Transaction ---

func ToModelTransaction(t domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Status:        string(t.EffectiveStatus()),
		Category:      t.Category,
		ClientName:    t.ClientName,
		BankName:      t.BankName,
		AuditFields:   toModelAudit(t.AuditFields),
	}
}

func ToDomainTransaction(t models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: t.TransactionID,
		Date:          t.Date,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          domain.TransactionType(t.Type),
		Status:        domain.TransactionStatus(t.Status),
		Category:      t.Category,
		ClientName:    t.ClientName,
		BankName:      t.BankName,
		AuditFields:   toDomainAudit(t.AuditFields),
	}
}

func ToDomainTransactionSlice(ts []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ts))
	for i, t := range ts {
		out[i] = ToDomainTransaction(t)
	}
	return out
}

// --- Reconciliation ---

func ToModelReconciliation(r domain.Reconciliation) models.Reconciliation {
	var override *string
	if r.OverrideStatus != nil {
		s := string(*r.OverrideStatus)
		override = &s
	}
	return models.Reconciliation{
		ReconciliationID: r.ReconciliationID,
		ClientName:       r.ClientName,
		BankName:         r.BankName,
		FromDate:         r.FromDate,
		ToDate:           r.ToDate,
		OpeningBalance:   r.OpeningBalance,
		BankBalance:      r.BankBalance,
		TotalCredit:      r.TotalCredit,
		TotalDebit:       r.TotalDebit,
		SystemBalance:    r.SystemBalance,
		Difference:       r.Difference,
		ComputedStatus:   string(r.ComputedStatus),
		OverrideStatus:   override,
		TransactionCount: r.TransactionCount,
		AuditFields:      toModelAudit(r.AuditFields),
	}
}

func ToDomainReconciliation(r models.Reconciliation) domain.Reconciliation {
	var override *domain.MatchStatus
	if r.OverrideStatus != nil {
		s := domain.MatchStatus(*r.OverrideStatus)
		override = &s
	}
	return domain.Reconciliation{
		ReconciliationID: r.ReconciliationID,
		ClientName:       r.ClientName,
		BankName:         r.BankName,
		FromDate:         r.FromDate,
		ToDate:           r.ToDate,
		OpeningBalance:   r.OpeningBalance,
		BankBalance:      r.BankBalance,
		TotalCredit:      r.TotalCredit,
		TotalDebit:       r.TotalDebit,
		SystemBalance:    r.SystemBalance,
		Difference:       r.Difference,
		ComputedStatus:   domain.MatchStatus(r.ComputedStatus),
		OverrideStatus:   override,
		TransactionCount: r.TransactionCount,
		AuditFields:      toDomainAudit(r.AuditFields),
	}
}

func ToDomainReconciliationSlice(rs []models.Reconciliation) []domain.Reconciliation {
	out := make([]domain.Reconciliation, len(rs))
	for i, r := range rs {
		out[i] = ToDomainReconciliation(r)
	}
	return out
}

// --- User ---

func ToModelUser(u domain.User) models.User {
	return models.User{
		UserID:       u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		AuditFields:  toModelAudit(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
}

func ToDomainUser(u models.User) domain.User {
	return domain.User{
		UserID:       u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         domain.UserRole(u.Role),
		AuditFields:  toDomainAudit(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
}

func ToDomainUserSlice(us []models.User) []domain.User {
	out := make([]domain.User, len(us))
	for i, u := range us {
		out[i] = ToDomainUser(u)
	}
	return out
}

// --- AuditLog ---

func ToModelAuditLog(l domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditLogID: l.AuditLogID,
		Action:     l.Action,
		UserID:     l.UserID,
		Details:    l.Details,
		Timestamp:  l.Timestamp,
	}
}

func ToDomainAuditLog(l models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditLogID: l.AuditLogID,
		Action:     l.Action,
		UserID:     l.UserID,
		Details:    l.Details,
		Timestamp:  l.Timestamp,
	}
}

func ToDomainAuditLogSlice(ls []models.AuditLog) []domain.AuditLog {
	out := make([]domain.AuditLog, len(ls))
	for i, l := range ls {
		out[i] = ToDomainAuditLog(l)
	}
	return out
}
