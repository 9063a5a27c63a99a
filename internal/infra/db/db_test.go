package db

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vibe-budget/backend/config"
)

func TestMigrate(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "refresh_tokens", "budget_settings", "bills", "credit_cards"} {
		assert.True(t, gdb.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Run("connects and reports healthy", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
		require.NoError(t, err)
		defer client.Close()

		check := RedisHealthCheck(client)
		assert.True(t, check())

		mr.Close()
		assert.False(t, check())
	})

	t.Run("rejects a malformed url", func(t *testing.T) {
		_, err := NewRedisClient(&config.RedisConfig{URL: "not a url"})
		assert.Error(t, err)
	})

	t.Run("fails when nothing is listening", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + addr})
		assert.Error(t, err)
	})
}
