package persistence

import (
	"testing"
	"time"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/work"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with every
// persistence model migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()

	u := &identity.User{
		Email:        email,
		PasswordHash: "$2a$12$0123456789012345678901uCE6zXz9PqXlGz0G1s3mJH1C9u4vWm2",
		Username:     "user-" + email,
		Gender:       "male",
		UserImage:    "img_male.png",
		ThemeName:    "lumen",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(models.UserModelFromDomain(u)).Error)
	return u
}

func seedGroup(t *testing.T, db *gorm.DB, createdBy string) *workgroup.Workgroup {
	t.Helper()

	g := &workgroup.Workgroup{
		WorkgroupID: uuid.NewString(),
		Name:        "group of " + createdBy,
		Description: "seeded workgroup",
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(models.WorkgroupModelFromDomain(g)).Error)
	return g
}

func seedMember(t *testing.T, db *gorm.DB, workgroupID, email, addedBy string, role workgroup.Role) *workgroup.Member {
	t.Helper()

	m := workgroup.NewMember(workgroupID, email, addedBy, role)
	require.NoError(t, db.Create(models.MemberModelFromDomain(m)).Error)
	return m
}

func seedRelation(t *testing.T, db *gorm.DB, workgroupID, createdBy, senior, junior string) *workgroup.Relation {
	t.Helper()

	r := workgroup.NewRelation(workgroupID, createdBy, senior, junior)
	require.NoError(t, db.Create(models.RelationModelFromDomain(r)).Error)
	return r
}

func seedWork(t *testing.T, db *gorm.DB, workgroupID, createdBy, assignedTo string) *work.Work {
	t.Helper()

	w, err := work.NewWork("seeded work", "", createdBy, assignedTo, workgroupID, "low",
		time.Now().UTC().Add(72*time.Hour))
	require.NoError(t, err)
	require.NoError(t, db.Create(models.WorkModelFromDomain(w)).Error)
	return w
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}
