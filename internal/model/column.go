package model

import (
	"github.com/google/uuid"
)

type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title    string    `gorm:"not null"`
	Type     string    `gorm:"check:type IN ('', 'pending', 'in_progress', 'review', 'completed')"`
	Position int       `gorm:"not null"`
}

// Статусы задач, производные от типа колонки
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
)
