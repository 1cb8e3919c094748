package models

import "time"

// AuditFields holds standard audit columns shared by the persistence models.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
