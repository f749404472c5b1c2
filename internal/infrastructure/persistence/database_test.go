package persistence

import (
	"context"
	"testing"

	"github.com/branchstock/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewDatabaseWithLogger_SQLite(t *testing.T) {
	db, err := NewDatabaseWithLogger(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   ":memory:",
		MaxOpenConns: 25,
	}, logger.Discard)
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, db.PingContext(context.Background()))

	require.NoError(t, db.Close())
	assert.Error(t, db.PingContext(context.Background()))
}
