package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/acl"
)

// backupVersion tags exported documents so future schema changes can be
// detected on import.
const backupVersion = 3

// BackupMode selects the restore policy.
type BackupMode string

const (
	// BackupModeReplace wipes all four collections and inserts the document's
	// contents, atomically. This is the default and is destructive.
	BackupModeReplace BackupMode = "replace"
	// BackupModeMerge upserts by primary key and leaves other rows untouched.
	BackupModeMerge BackupMode = "merge"
)

// BackupUser is an account as it appears in a backup document: unlike API
// responses, the password hash is included so a restore preserves logins.
type BackupUser struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

// BackupDocument is the portable snapshot of the whole logical database.
// Messages are capped at the chat history limit; older rows are not exported.
type BackupDocument struct {
	Users      []BackupUser     `json:"users"`
	Songs      []*model.Song    `json:"songs"`
	Members    []*model.Member  `json:"members"`
	Messages   []*model.Message `json:"messages"`
	Version    int              `json:"version"`
	ExportedAt string           `json:"exportedAt"`
}

// BackupService produces and restores full-database snapshots.
type BackupService struct {
	chatService ChatService
}

// ExportAll assembles a snapshot of all four collections.
func (s *BackupService) ExportAll() (*BackupDocument, error) {
	db := database.GetDB()

	users := make([]*model.User, 0)
	if err := db.Model(model.User{}).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	songs := make([]*model.Song, 0)
	if err := db.Model(model.Song{}).Order("created_at ASC").Find(&songs).Error; err != nil {
		return nil, err
	}

	members := make([]*model.Member, 0)
	if err := db.Model(model.Member{}).Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	messages, err := s.chatService.GetMessages()
	if err != nil {
		return nil, err
	}

	backupUsers := make([]BackupUser, 0, len(users))
	for _, u := range users {
		backupUsers = append(backupUsers, BackupUser{User: *u, PasswordHash: u.PasswordHash})
	}

	return &BackupDocument{
		Users:      backupUsers,
		Songs:      songs,
		Members:    members,
		Messages:   messages,
		Version:    backupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ExportJSON serializes a fresh snapshot and suggests a download filename.
func (s *BackupService) ExportJSON() ([]byte, string, error) {
	doc, err := s.ExportAll()
	if err != nil {
		return nil, "", err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, "", err
	}
	return data, s.FileName(time.Now()), nil
}

// FileName returns the conventional backup filename for the given date.
func (s *BackupService) FileName(t time.Time) string {
	return fmt.Sprintf("choir_ruvumera_backup_%s.json", t.Format("2006-01-02"))
}

// ParseDocument validates the minimal document shape: songs must be present
// as a list, possibly empty. Anything else is rejected before any write.
func (s *BackupService) ParseDocument(data []byte) (*BackupDocument, error) {
	doc := &BackupDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, ErrValidation
	}
	if doc.Songs == nil {
		return nil, ErrValidation
	}
	return doc, nil
}

// ImportAll restores a document under the given mode. Both modes run inside
// a single transaction: either every collection lands or nothing changes.
func (s *BackupService) ImportAll(requester *model.User, doc *BackupDocument, mode BackupMode) error {
	if err := guard(requester, acl.CapSettings); err != nil {
		return err
	}
	if doc == nil || doc.Songs == nil {
		return ErrValidation
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		switch mode {
		case BackupModeReplace:
			return s.restoreReplace(tx, doc)
		case BackupModeMerge:
			return s.restoreMerge(tx, doc)
		default:
			return ErrValidation
		}
	})
	if err != nil {
		logger.Warning("database restore failed, rolled back:", err)
		return err
	}

	logger.Infof("database restored (%s): %d users, %d songs, %d members, %d messages",
		mode, len(doc.Users), len(doc.Songs), len(doc.Members), len(doc.Messages))
	return nil
}

// restoreReplace deletes every row of every collection and inserts the
// document's rows. Runs inside the caller's transaction; a failed insert
// rolls back the deletes too.
func (s *BackupService) restoreReplace(tx *gorm.DB, doc *BackupDocument) error {
	for _, m := range []any{model.Message{}, model.Song{}, model.Member{}, model.User{}} {
		if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
			return err
		}
	}
	return s.insertAll(tx, doc, false)
}

// restoreMerge upserts by primary key, leaving unrelated rows untouched.
func (s *BackupService) restoreMerge(tx *gorm.DB, doc *BackupDocument) error {
	return s.insertAll(tx, doc, true)
}

func (s *BackupService) insertAll(tx *gorm.DB, doc *BackupDocument, upsert bool) error {
	// Each collection gets its own statement; chaining one clause-carrying
	// *gorm.DB across several Create calls corrupts statement state.
	create := func(rows any) error {
		if upsert {
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error
		}
		return tx.Create(rows).Error
	}

	if len(doc.Users) > 0 {
		users := make([]*model.User, 0, len(doc.Users))
		for i := range doc.Users {
			u := doc.Users[i].User
			u.PasswordHash = doc.Users[i].PasswordHash
			users = append(users, &u)
		}
		if err := create(users); err != nil {
			return err
		}
	}
	if len(doc.Songs) > 0 {
		if err := create(doc.Songs); err != nil {
			return err
		}
	}
	if len(doc.Members) > 0 {
		if err := create(doc.Members); err != nil {
			return err
		}
	}
	if len(doc.Messages) > 0 {
		if err := create(doc.Messages); err != nil {
			return err
		}
	}
	return nil
}

// WriteToFolder exports a snapshot to dir, creating it if needed. Used by
// the scheduled backup job.
func (s *BackupService) WriteToFolder(dir string) (string, error) {
	data, name, err := s.ExportJSON()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}
