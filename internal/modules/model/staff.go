package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150);not null" json:"last_name"`
	Status    string    `gorm:"type:text;not null;default:'active';check:status IN ('active','inactive')" json:"status"`
	Role      string    `gorm:"type:text;not null;default:'staff';check:role IN ('staff','manager','admin')" json:"role"`

	// AuthSubject binds this staff record to at most one identity-provider
	// account (the JWT subject). Null means not yet provisioned for login.
	AuthSubject *string `gorm:"type:varchar(255);uniqueIndex" json:"auth_subject,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Staff <-> DeliverableAssignment
	Assignments []DeliverableAssignment `gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Staff <-> Task (assignee is cleared when the staff row goes away)
	Tasks []Task `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Staff) TableName() string { return "staff" }
