package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ContractStatusDraft  = "draft"
	ContractStatusActive = "active"
	ContractStatusClosed = "closed"
)

type Contract struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null;default:''" json:"name"`
	ClientName  string          `gorm:"type:varchar(255);not null;default:''" json:"client_name"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null;check:contract_end_after_start,end_date >= start_date" json:"end_date"`
	BudgetHours decimal.Decimal `gorm:"type:numeric(10,2);not null;check:budget_hours >= 0" json:"budget_hours"`
	Status      string          `gorm:"type:text;not null;default:'draft';check:status IN ('draft','active','closed')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Contract <-> Deliverable. RESTRICT: a contract cannot be removed while
	// deliverables still hang off it.
	Deliverables []Deliverable `gorm:"foreignKey:ContractID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE;" json:"-"`
}

func (Contract) TableName() string { return "contracts" }
