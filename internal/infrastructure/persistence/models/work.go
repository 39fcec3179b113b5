package models

import (
	"time"

	"github.com/beamworkflow/backend/internal/domain/work"
)

// WorkModel is the persistence model for the Work domain entity.
type WorkModel struct {
	WorkID      string     `gorm:"type:varchar(40);primaryKey"`
	WorkgroupID string     `gorm:"type:varchar(40);not null;index"`
	Title       string     `gorm:"type:varchar(30);not null"`
	Description string     `gorm:"type:text"`
	CreatedBy   string     `gorm:"type:varchar(200);not null;index"`
	AssignedTo  string     `gorm:"type:varchar(200);not null;index"`
	Priority    string     `gorm:"type:varchar(6);not null;default:'low'"`
	IsCompleted bool       `gorm:"not null;default:false"`
	Seen        bool       `gorm:"not null;default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	DueDate     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkModel) TableName() string {
	return "works"
}

// ToDomain converts the persistence model to a domain Work entity.
func (m *WorkModel) ToDomain() *work.Work {
	return &work.Work{
		WorkID:      m.WorkID,
		WorkgroupID: m.WorkgroupID,
		Title:       m.Title,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		AssignedTo:  m.AssignedTo,
		Priority:    m.Priority,
		IsCompleted: m.IsCompleted,
		Seen:        m.Seen,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DueDate:     m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain Work entity.
func (m *WorkModel) FromDomain(w *work.Work) {
	m.WorkID = w.WorkID
	m.WorkgroupID = w.WorkgroupID
	m.Title = w.Title
	m.Description = w.Description
	m.CreatedBy = w.CreatedBy
	m.AssignedTo = w.AssignedTo
	m.Priority = w.Priority
	m.IsCompleted = w.IsCompleted
	m.Seen = w.Seen
	m.CompletedAt = w.CompletedAt
	m.CreatedAt = w.CreatedAt
	m.UpdatedAt = w.UpdatedAt
	m.DueDate = w.DueDate
}

// WorkModelFromDomain creates a new persistence model from a domain Work entity.
func WorkModelFromDomain(w *work.Work) *WorkModel {
	m := &WorkModel{}
	m.FromDomain(w)
	return m
}
