package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliverableTimeEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeliverableID uuid.UUID       `gorm:"type:uuid;not null;index:ix_time_entries_deliverable_date,priority:1" json:"deliverable_id"`
	StaffID       uuid.UUID       `gorm:"type:uuid;not null;index:ix_time_entries_staff_date,priority:1" json:"staff_id"`
	EntryDate     time.Time       `gorm:"type:date;not null;index:ix_time_entries_deliverable_date,priority:2;index:ix_time_entries_staff_date,priority:2" json:"entry_date"`
	Hours         decimal.Decimal `gorm:"type:numeric(10,2);not null;check:hours > 0" json:"hours"`
	Note          string          `gorm:"type:text;not null;default:''" json:"note"`

	// Idempotency key for upstream integrations. When set, the pair is unique
	// (partial index created in infra/db since a conditional unique index is
	// outside gorm tag syntax).
	ExternalSource string `gorm:"type:varchar(100);not null;default:'';index:ix_time_entries_external,priority:1" json:"external_source"`
	ExternalID     string `gorm:"type:varchar(200);not null;default:'';index:ix_time_entries_external,priority:2" json:"external_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Deliverable *Deliverable `gorm:"foreignKey:DeliverableID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Staff       *Staff       `gorm:"foreignKey:StaffID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE;" json:"staff,omitempty"`
}

func (DeliverableTimeEntry) TableName() string { return "deliverable_time_entries" }

// HasExternalKey reports whether both idempotency fields are set.
func (e *DeliverableTimeEntry) HasExternalKey() bool {
	return e.ExternalSource != "" && e.ExternalID != ""
}
