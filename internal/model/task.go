package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ColumnID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Status      string     `gorm:"not null;default:'pending'"`
	Priority    string     `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high')"`
	Type        string     `gorm:"not null;default:'task';check:type IN ('task', 'bug', 'feature', 'improvement')"`
	Assignee    *uuid.UUID `gorm:"type:uuid"`
	Client      string
	RequestDate *time.Time
	DueDate     *time.Time
	Observation string
	Jira        string
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	ColumnRef    Column `gorm:"foreignKey:ColumnID"`
	AssigneeUser *User  `gorm:"foreignKey:Assignee"`
}

// Приоритеты задач
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Типы задач
const (
	TypeTask        = "task"
	TypeBug         = "bug"
	TypeFeature     = "feature"
	TypeImprovement = "improvement"
)
