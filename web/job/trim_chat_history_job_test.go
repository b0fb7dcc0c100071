package job

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("CHOIR_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func setup(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "choir-panel.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func TestTrimChatHistoryJob(t *testing.T) {
	setup(t)

	db := database.GetDB()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < trimKeep+50; i++ {
		msg := &model.Message{
			Id:        fmt.Sprintf("m%05d", i),
			UserId:    "u1",
			UserName:  "someone",
			Content:   fmt.Sprintf("msg %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
		}
		if err := db.Create(msg).Error; err != nil {
			t.Fatalf("insert message: %v", err)
		}
	}

	NewTrimChatHistoryJob().Run()

	var count int64
	assert.NoError(t, db.Model(model.Message{}).Count(&count).Error)
	assert.Equal(t, int64(trimKeep), count)

	// Running again with nothing over the threshold changes nothing.
	NewTrimChatHistoryJob().Run()
	assert.NoError(t, db.Model(model.Message{}).Count(&count).Error)
	assert.Equal(t, int64(trimKeep), count)
}

func TestScheduledBackupJobWritesFile(t *testing.T) {
	setup(t)

	dir := t.TempDir()
	os.Setenv("CHOIR_BACKUP_FOLDER", dir)
	defer os.Unsetenv("CHOIR_BACKUP_FOLDER")

	NewScheduledBackupJob().Run()

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "choir_ruvumera_backup_")
}
