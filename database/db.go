// Package database owns the GORM/SQLite connection, schema migration and the
// default admin seed.
package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruvumera/choir-panel/config"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/util/crypto"
)

var db *gorm.DB

// Reserved bootstrap identity. The unique index on users.email makes the
// check-then-create race harmless: the insert that loses reports a
// constraint violation and is treated as "already exists".
const (
	DefaultAdminEmail = "admin@ruvumera.choir"
	defaultAdminName  = "Main Admin"
	defaultPassword   = "admin"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Song{},
		&model.Member{},
		&model.Message{},
		&model.Setting{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// SeedAdmin creates the reserved admin account if it is missing. Safe to call
// concurrently and repeatedly.
func SeedAdmin() error {
	var count int64
	err := db.Model(&model.User{}).
		Where("email = ?", DefaultAdminEmail).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(defaultPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		Id:           uuid.NewString(),
		Name:         defaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	err = db.Create(admin).Error
	if err != nil && IsDuplicateKey(err) {
		// Lost the race, the other writer's row wins.
		return nil
	}
	return err
}

// InitDB opens (or creates) the SQLite database at dbPath, migrates the
// schema and seeds the admin account.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return SeedAdmin()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		err = sqlDB.Close()
		db = nil
		return err
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
