package database

import (
	"roomboard/internal/logger"
	"roomboard/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_StructCreation(t *testing.T) {
	log := logger.New("test")

	db := &DB{log: log}

	assert.Equal(t, log, db.log)
	assert.Nil(t, db.SQL)
	assert.Nil(t, db.Cache)
	assert.NoError(t, db.Close())
}

func TestOpenSQLite_MigratesStateTable(t *testing.T) {
	gormDB, err := OpenSQLite("file::memory:")
	require.NoError(t, err)

	assert.True(t, gormDB.Migrator().HasTable(&models.StateEntry{}))

	db := &DB{SQL: gormDB, log: logger.New("test")}
	assert.NoError(t, db.Close())
}

func TestCacheBuilder_KeyComposition(t *testing.T) {
	cb := NewCacheBuilder(nil, "rooms").WithHash("roomboard")

	assert.Equal(t, "roomboard:rooms", cb.Key())
}

func TestCacheBuilder_ValidatesBeforeCalling(t *testing.T) {
	err := NewCacheBuilder(nil, "").WithValue("x").Set()
	assert.EqualError(t, err, "key is required")

	err = NewCacheBuilder(nil, "rooms").Set()
	assert.EqualError(t, err, "value is required")
}
