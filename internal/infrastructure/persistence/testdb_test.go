package persistence

import (
	"testing"

	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database and migrates all models.
// TranslateError is enabled so unique constraint violations surface as
// gorm.ErrDuplicatedKey, matching the PostgreSQL behavior. The pool is
// pinned to one connection: every :memory: connection is its own empty
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.DocumentModel{},
		&models.AnalysisResultModel{},
		&models.ContractModel{},
		&models.ObligationModel{},
		&models.ContractDocumentModel{},
		&models.ContractPrefillModel{},
	)
	require.NoError(t, err)

	return db
}
