package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUpdateOnTrack  = "on_track"
	StatusUpdateAtRisk   = "at_risk"
	StatusUpdateOffTrack = "off_track"
	StatusUpdateComplete = "complete"
)

type DeliverableStatusUpdate struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeliverableID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_deliverable_period_end,priority:1" json:"deliverable_id"`
	PeriodEnd     time.Time `gorm:"type:date;not null;uniqueIndex:uq_deliverable_period_end,priority:2" json:"period_end"`
	Status        string    `gorm:"type:text;not null;check:status IN ('on_track','at_risk','off_track','complete')" json:"status"`
	Summary       string    `gorm:"type:text;not null;default:''" json:"summary"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Deliverable *Deliverable `gorm:"foreignKey:DeliverableID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	CreatedBy   *Staff       `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"created_by,omitempty"`
}

func (DeliverableStatusUpdate) TableName() string { return "deliverable_status_updates" }
