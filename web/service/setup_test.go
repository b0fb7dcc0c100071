package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"

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

// seededAdmin returns the account created by InitDB.
func seededAdmin(t *testing.T) *model.User {
	t.Helper()
	db := database.GetDB()
	admin := &model.User{}
	err := db.Model(model.User{}).Where("email = ?", database.DefaultAdminEmail).First(admin).Error
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	return admin
}

func registerUser(t *testing.T, name, email, password string, role model.Role) *model.User {
	t.Helper()
	authService := AuthService{}
	user, err := authService.Register(name, email, password, role)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}
