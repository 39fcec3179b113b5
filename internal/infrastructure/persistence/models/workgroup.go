package models

import (
	"time"

	"github.com/beamworkflow/backend/internal/domain/workgroup"
)

// WorkgroupModel is the persistence model for the Workgroup domain entity.
type WorkgroupModel struct {
	WorkgroupID string    `gorm:"type:varchar(40);primaryKey"`
	Name        string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   string    `gorm:"type:varchar(200);not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WorkgroupModel) TableName() string {
	return "workgroups"
}

// ToDomain converts the persistence model to a domain Workgroup entity.
func (m *WorkgroupModel) ToDomain() *workgroup.Workgroup {
	return &workgroup.Workgroup{
		WorkgroupID: m.WorkgroupID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Workgroup entity.
func (m *WorkgroupModel) FromDomain(w *workgroup.Workgroup) {
	m.WorkgroupID = w.WorkgroupID
	m.Name = w.Name
	m.Description = w.Description
	m.CreatedBy = w.CreatedBy
	m.CreatedAt = w.CreatedAt
	m.UpdatedAt = w.UpdatedAt
}

// WorkgroupModelFromDomain creates a new persistence model from a domain Workgroup entity.
func WorkgroupModelFromDomain(w *workgroup.Workgroup) *WorkgroupModel {
	m := &WorkgroupModel{}
	m.FromDomain(w)
	return m
}

// MemberModel is the persistence model for a workgroup membership row.
type MemberModel struct {
	MemberID    string         `gorm:"type:varchar(40);primaryKey"`
	WorkgroupID string         `gorm:"type:varchar(40);not null;uniqueIndex:idx_members_group_email"`
	MemberEmail string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_members_group_email;index"`
	AddedBy     string         `gorm:"type:varchar(200);not null"`
	Role        workgroup.Role `gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "workgroup_members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *MemberModel) ToDomain() *workgroup.Member {
	return &workgroup.Member{
		MemberID:    m.MemberID,
		WorkgroupID: m.WorkgroupID,
		MemberEmail: m.MemberEmail,
		AddedBy:     m.AddedBy,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Member entity.
func (m *MemberModel) FromDomain(member *workgroup.Member) {
	m.MemberID = member.MemberID
	m.WorkgroupID = member.WorkgroupID
	m.MemberEmail = member.MemberEmail
	m.AddedBy = member.AddedBy
	m.Role = member.Role
	m.CreatedAt = member.CreatedAt
	m.UpdatedAt = member.UpdatedAt
}

// MemberModelFromDomain creates a new persistence model from a domain Member entity.
func MemberModelFromDomain(member *workgroup.Member) *MemberModel {
	m := &MemberModel{}
	m.FromDomain(member)
	return m
}

// RelationModel is the persistence model for a senior/junior relation row.
type RelationModel struct {
	RelationID  string    `gorm:"type:varchar(40);primaryKey"`
	WorkgroupID string    `gorm:"type:varchar(40);not null;index"`
	CreatedBy   string    `gorm:"type:varchar(200);not null"`
	SeniorEmail string    `gorm:"type:varchar(200);not null;index"`
	JuniorEmail string    `gorm:"type:varchar(200);not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RelationModel) TableName() string {
	return "user_relations"
}

// ToDomain converts the persistence model to a domain Relation entity.
func (m *RelationModel) ToDomain() *workgroup.Relation {
	return &workgroup.Relation{
		RelationID:  m.RelationID,
		WorkgroupID: m.WorkgroupID,
		CreatedBy:   m.CreatedBy,
		SeniorEmail: m.SeniorEmail,
		JuniorEmail: m.JuniorEmail,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Relation entity.
func (m *RelationModel) FromDomain(r *workgroup.Relation) {
	m.RelationID = r.RelationID
	m.WorkgroupID = r.WorkgroupID
	m.CreatedBy = r.CreatedBy
	m.SeniorEmail = r.SeniorEmail
	m.JuniorEmail = r.JuniorEmail
	m.CreatedAt = r.CreatedAt
}

// RelationModelFromDomain creates a new persistence model from a domain Relation entity.
func RelationModelFromDomain(r *workgroup.Relation) *RelationModel {
	m := &RelationModel{}
	m.FromDomain(r)
	return m
}
