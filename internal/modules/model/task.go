package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusBlocked    = "blocked"
)

type Task struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeliverableID uuid.UUID       `gorm:"type:uuid;not null;index" json:"deliverable_id"`
	AssigneeID    *uuid.UUID      `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	BudgetHours   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:budget_hours >= 0" json:"budget_hours"`
	Status        string          `gorm:"type:text;not null;default:'todo';check:status IN ('todo','in_progress','done','blocked')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Deliverable *Deliverable `gorm:"foreignKey:DeliverableID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Assignee    *Staff       `gorm:"foreignKey:AssigneeID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"assignee,omitempty"`
}

func (Task) TableName() string { return "tasks" }
