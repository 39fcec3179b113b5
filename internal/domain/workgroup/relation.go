package workgroup

import (
	"time"

	"github.com/google/uuid"
)

// Relation is a directed senior/junior edge between two users, scoped
// to a workgroup. At most one relation may exist per unordered
// {senior, junior} pair; existence checks ignore direction.
type Relation struct {
	RelationID  string
	WorkgroupID string
	CreatedBy   string
	SeniorEmail string
	JuniorEmail string
	CreatedAt   time.Time
}

// NewRelation creates a relation row with a generated id.
func NewRelation(workgroupID, createdBy, seniorEmail, juniorEmail string) *Relation {
	return &Relation{
		RelationID:  uuid.New().String(),
		WorkgroupID: workgroupID,
		CreatedBy:   createdBy,
		SeniorEmail: seniorEmail,
		JuniorEmail: juniorEmail,
		CreatedAt:   time.Now().UTC(),
	}
}
