package logger

import (
	"os"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("CHOIR_LOG_FOLDER", os.TempDir())
	InitLogger(logging.DEBUG)
	os.Exit(m.Run())
}

func TestGetLogsHonorsCount(t *testing.T) {
	for i := 0; i < 6; i++ {
		Infof("buffered entry %d", i)
	}

	got := GetLogs(3, "INFO")
	assert.Len(t, got, 3)
	// Newest first.
	assert.Contains(t, got[0], "buffered entry 5")
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	Debug("debug detail")
	Warning("warned once")

	lines := GetLogs(100, "WARNING")
	assert.NotEmpty(t, lines)
	for _, line := range lines {
		assert.NotContains(t, line, "debug detail")
	}
}
