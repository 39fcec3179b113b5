// Package models contains the GORM persistence models and their
// conversions to and from the domain entities. Domain packages never
// import this package; the repositories in the parent package do the
// mapping at their boundary.
package models

// AllModels returns every persistence model for migration registration.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&WorkgroupModel{},
		&MemberModel{},
		&RelationModel{},
		&WorkModel{},
	}
}
