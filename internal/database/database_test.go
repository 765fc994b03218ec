package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akrotov/task-manager/internal/config"
)

func TestConnect_Sqlite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBName: ":memory:"}

	require.NoError(t, Connect(cfg))
	t.Cleanup(func() {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
		DB = nil
	})

	require.NoError(t, Migrate())
	require.NoError(t, AddIndexes(GetDB()))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle"}

	err := Connect(cfg)

	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}
