package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DeliverableStatusPlanned    = "planned"
	DeliverableStatusInProgress = "in_progress"
	DeliverableStatusComplete   = "complete"
	DeliverableStatusBlocked    = "blocked"
)

type Deliverable struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"contract_id"`
	Name        string          `gorm:"type:varchar(255);not null;default:''" json:"name"`
	ChargeCode  string          `gorm:"type:varchar(100);not null;default:''" json:"charge_code"`
	BudgetHours decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:budget_hours >= 0" json:"budget_hours"`

	// Optional own window; rollups fall back to the contract dates when null.
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	DueDate   *time.Time `gorm:"type:date;check:deliverable_due_after_start,due_date >= start_date OR due_date IS NULL OR start_date IS NULL" json:"due_date,omitempty"`

	Status string `gorm:"type:text;not null;default:'planned';check:status IN ('planned','in_progress','complete','blocked')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Deliverable <-> Contract
	Contract *Contract `gorm:"foreignKey:ContractID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE;" json:"-"`

	// Children all cascade with the deliverable.
	Tasks         []Task                    `gorm:"foreignKey:DeliverableID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Assignments   []DeliverableAssignment   `gorm:"foreignKey:DeliverableID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	TimeEntries   []DeliverableTimeEntry    `gorm:"foreignKey:DeliverableID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	StatusUpdates []DeliverableStatusUpdate `gorm:"foreignKey:DeliverableID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Deliverable) TableName() string { return "deliverables" }
