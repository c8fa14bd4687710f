package database

import (
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "nested", "interview.db"),
	}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	iv := model.Interview{UserID: "u1", JobRole: "Backend"}
	require.NoError(t, db.Create(&iv).Error)
	assert.NotEmpty(t, iv.ID)
	assert.Equal(t, model.InterviewDraft, iv.Status)
}

func TestDialector_UnsupportedDriver(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDialector_Names(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		d, err := Dialector(&config.DatabaseConfig{Driver: driver, Host: "127.0.0.1", Port: 1})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, portStr, ok := strings.Cut(mr.Addr(), ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	rdb, err := InitRedis(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer rdb.Close()

	mr.Close()
	_, err = InitRedis(&config.RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}
