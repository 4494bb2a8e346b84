package services

import (
	"testing"
	"time"

	"contest-scoring-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the production schema.
// The single-connection pool keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Participant{},
		&models.Contest{},
		&models.Bloc{},
		&models.Zone{},
		&models.Validation{},
	))
	return db
}

func seedParticipant(t *testing.T, db *gorm.DB, first, last, category, sex string) *models.Participant {
	t.Helper()
	p := &models.Participant{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Category:  category,
		Sex:       sex,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedContest(t *testing.T, db *gorm.DB, name string, active bool) *models.Contest {
	t.Helper()
	contest := &models.Contest{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      name,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   time.Now().Add(time.Hour),
		Active:    active,
	}
	require.NoError(t, db.Create(contest).Error)
	return contest
}

// seedBlocWithZone creates one bloc carrying a single zone, the shape every
// real contest uses.
func seedBlocWithZone(t *testing.T, db *gorm.DB, contestID, name string) (*models.Bloc, *models.Zone) {
	t.Helper()
	bloc := &models.Bloc{
		ID:        uuid.NewString(),
		ContestID: contestID,
		Name:      name,
	}
	require.NoError(t, db.Create(bloc).Error)
	zone := &models.Zone{
		ID:        uuid.NewString(),
		BlocID:    bloc.ID,
		Name:      "Zone " + name,
		SortOrder: 1,
	}
	require.NoError(t, db.Create(zone).Error)
	return bloc, zone
}

func countValidations(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Validation{}).Count(&n).Error)
	return n
}
