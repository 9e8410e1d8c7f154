package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliverableAssignment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeliverableID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_deliverable_staff,priority:1" json:"deliverable_id"`
	StaffID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_deliverable_staff,priority:2" json:"staff_id"`
	BudgetHours   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:budget_hours >= 0" json:"budget_hours"`
	IsLead        bool            `gorm:"not null;default:false" json:"is_lead"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Deliverable *Deliverable `gorm:"foreignKey:DeliverableID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Staff       *Staff       `gorm:"foreignKey:StaffID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"staff,omitempty"`
}

func (DeliverableAssignment) TableName() string { return "deliverable_assignments" }
