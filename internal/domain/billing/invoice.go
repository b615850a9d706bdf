package billing

import (
	"time"

	"github.com/google/uuid"
)

// Invoice bills one appointment; at most one exists per appointment,
// enforced by the unique index on AppointmentID. Re-issuing overwrites the
// amount and reopens the invoice as unpaid.
type Invoice struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IssuedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;not null;uniqueIndex"`

	Amount float64 `gorm:"column:amount;type:numeric(10,2);not null"`
	Paid   bool    `gorm:"column:paid;not null;default:false;index"`
}

func (Invoice) TableName() string {
	return "clinical.invoices"
}

// RevenueSummary aggregates every invoice in the system. Admin-only read.
type RevenueSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	PaidCount     int64   `json:"paid_count"`
	UnpaidCount   int64   `json:"unpaid_count"`
	PendingAmount float64 `json:"pending_amount"`
}
