package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"path/filepath"
	"slices"
	"splitboard/app/server/constants"
	"splitboard/app/server/inits"
	"sync"
	"testing"
)

// OpenDB 在临时目录中打开一个已迁移的 sqlite 数据库，测试结束时自动关闭
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := inits.DB(constants.DBDriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Logger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))
}

// Recorder 记录所有广播过的频道
type Recorder struct {
	mu       sync.Mutex
	channels []string
}

func (r *Recorder) Broadcast(channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, channel)
}

func (r *Recorder) Channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.channels)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = nil
}
