package inits_test

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"splitboard/app/server/constants"
	"splitboard/app/server/inits"
	"splitboard/app/server/models"
	"splitboard/app/server/testutil"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("DB_CONN", "board.db")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := inits.Config()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.System.Listen)
	assert.Equal(t, "frontend", cfg.System.StaticDir)
	assert.False(t, cfg.System.IsProd)
	assert.False(t, cfg.System.APIDocs)
	assert.Zero(t, cfg.Security.TokenTTL)
	assert.Equal(t, constants.LoginMinLatency, cfg.Security.LoginMinLatency)
}

func TestConfigMode(t *testing.T) {
	t.Setenv("DB_CONN", "postgres://localhost/board")
	t.Setenv("MODE", "Production")

	cfg, err := inits.Config()
	require.NoError(t, err)
	assert.True(t, cfg.System.IsProd)
	assert.Equal(t, constants.DBDriverPostgres, cfg.System.DBDriver)
}

func TestConfigRejects(t *testing.T) {
	t.Run("missing DB_CONN", func(t *testing.T) {
		t.Setenv("DB_CONN", "")
		_, err := inits.Config()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_CONN", "x")
		t.Setenv("DB_DRIVER", "mysql")
		_, err := inits.Config()
		assert.ErrorContains(t, err, "mysql")
	})

	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("DB_CONN", "x")
		t.Setenv("TOKEN_TTL", "-1h")
		_, err := inits.Config()
		assert.Error(t, err)
	})
}

func TestConfigLatencyFloor(t *testing.T) {
	t.Setenv("DB_CONN", "x")
	t.Setenv("LOGIN_MIN_LATENCY", "10ms")

	cfg, err := inits.Config()
	require.NoError(t, err)
	assert.Equal(t, constants.LoginMinLatency, cfg.Security.LoginMinLatency)

	t.Setenv("LOGIN_MIN_LATENCY", "2s")
	cfg, err = inits.Config()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Security.LoginMinLatency)
}

func TestDBUnknownDriver(t *testing.T) {
	_, err := inits.DB("mysql", "x")
	assert.Error(t, err)
}

func TestSecret(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)

	first, err := inits.Secret(ctx, db, "")
	require.NoError(t, err)
	assert.Len(t, first, constants.AppSecretBytes*2)

	// 再次启动时复用同一个密钥
	second, err := inits.Secret(ctx, db, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&models.Env{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	overridden, err := inits.Secret(ctx, db, "from-env")
	require.NoError(t, err)
	assert.Equal(t, "from-env", overridden)
}

func TestRedis(t *testing.T) {
	rdb, err := inits.Redis("")
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)
	rdb, err = inits.Redis("redis://" + mr.Addr())
	require.NoError(t, err)
	require.NotNil(t, rdb)
	assert.NoError(t, rdb.Close())

	_, err = inits.Redis("not a url")
	assert.Error(t, err)
}
