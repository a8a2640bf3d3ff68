package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potato/entities"
)

func TestOpenSQLite(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kb.db"), nil)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&entities.KBDocument{}))
	assert.True(t, db.Migrator().HasTable(&entities.KBChunk{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	require.NoError(t, sqlDB.Close())
}

func TestOpenSQLite_BadPath(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing", "dir", "kb.db"), nil)
	assert.Error(t, err)
}
