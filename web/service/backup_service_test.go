package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
)

func createSong(t *testing.T, id, title string) *model.Song {
	t.Helper()
	song := &model.Song{
		Id:        id,
		Title:     title,
		Lyrics:    "lyrics of " + title,
		Category:  "Praise",
		Language:  "Swahili",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := database.GetDB().Create(song).Error; err != nil {
		t.Fatalf("create song %s: %v", title, err)
	}
	return song
}

func TestBackupFileName(t *testing.T) {
	backupService := BackupService{}
	date := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "choir_ruvumera_backup_2026-03-14.json", backupService.FileName(date))
}

func TestExportRoundTrip(t *testing.T) {
	setup(t)

	createSong(t, "s1", "Mwamba")
	createSong(t, "s2", "Tumaini")

	backupService := BackupService{}
	data, name, err := backupService.ExportJSON()
	assert.NoError(t, err)
	assert.Contains(t, name, "choir_ruvumera_backup_")

	doc, err := backupService.ParseDocument(data)
	assert.NoError(t, err)
	assert.Len(t, doc.Songs, 2)
	assert.Len(t, doc.Users, 1, "seeded admin is part of the export")
	assert.NotEmpty(t, doc.Users[0].PasswordHash, "exports carry credentials so restores preserve logins")
	assert.NotEmpty(t, doc.ExportedAt)
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	backupService := BackupService{}

	_, err := backupService.ParseDocument([]byte("not json at all"))
	assert.True(t, errors.Is(err, ErrValidation))

	// Valid JSON but no songs list.
	_, err = backupService.ParseDocument([]byte(`{"users": []}`))
	assert.True(t, errors.Is(err, ErrValidation))

	// An empty songs list is a valid, if drastic, document.
	doc, err := backupService.ParseDocument([]byte(`{"songs": []}`))
	assert.NoError(t, err)
	assert.NotNil(t, doc.Songs)
	assert.Len(t, doc.Songs, 0)
}

func TestImportReplace(t *testing.T) {
	setup(t)

	for i, title := range []string{"One", "Two", "Three"} {
		createSong(t, string(rune('a'+i)), title)
	}
	admin := seededAdmin(t)

	doc := &BackupDocument{
		Users: []BackupUser{{User: *admin, PasswordHash: admin.PasswordHash}},
		Songs: []*model.Song{
			{Id: "n1", Title: "New One", CreatedAt: "2026-01-01T00:00:00Z"},
			{Id: "n2", Title: "New Two", CreatedAt: "2026-01-02T00:00:00Z"},
		},
		Members: []*model.Member{
			{Id: "m1", Name: "Bahati", VoicePart: model.VoiceSoprano, IsActive: true},
		},
		Version: 3,
	}

	backupService := BackupService{}
	assert.NoError(t, backupService.ImportAll(admin, doc, BackupModeReplace))

	songService := SongService{}
	songs, err := songService.GetSongs()
	assert.NoError(t, err)
	assert.Len(t, songs, 2, "replace mode discards rows missing from the document")

	memberService := MemberService{}
	members, err := memberService.GetMembers()
	assert.NoError(t, err)
	assert.Len(t, members, 1)

	// The admin came back from the document, so login still works.
	authService := AuthService{}
	_, err = authService.Login(database.DefaultAdminEmail, "admin")
	assert.NoError(t, err)
}

func TestImportMerge(t *testing.T) {
	setup(t)

	createSong(t, "keep", "Untouched")
	createSong(t, "upd", "Old Title")
	admin := seededAdmin(t)

	doc := &BackupDocument{
		Songs: []*model.Song{
			{Id: "upd", Title: "New Title", CreatedAt: "2026-01-01T00:00:00Z"},
			{Id: "extra", Title: "Extra", CreatedAt: "2026-01-02T00:00:00Z"},
		},
		Version: 3,
	}

	backupService := BackupService{}
	assert.NoError(t, backupService.ImportAll(admin, doc, BackupModeMerge))

	songService := SongService{}
	songs, err := songService.GetSongs()
	assert.NoError(t, err)
	assert.Len(t, songs, 3, "merge mode leaves rows outside the document alone")

	updated, err := songService.GetSong("upd")
	assert.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)

	kept, err := songService.GetSong("keep")
	assert.NoError(t, err)
	assert.Equal(t, "Untouched", kept.Title)
}

func TestImportMergeUpdatesAccountAcrossCollections(t *testing.T) {
	setup(t)

	admin := seededAdmin(t)
	other := registerUser(t, "Other", "other@example.com", "pw123456", model.RoleUser)
	createSong(t, "upd", "Old Title")

	renamed := *admin
	renamed.Name = "Renamed Admin"
	doc := &BackupDocument{
		Users: []BackupUser{{User: renamed, PasswordHash: admin.PasswordHash}},
		Songs: []*model.Song{
			{Id: "upd", Title: "New Title", CreatedAt: "2026-01-01T00:00:00Z"},
		},
		Members: []*model.Member{
			{Id: "m1", Name: "Bahati", VoicePart: model.VoiceSoprano, IsActive: true},
		},
		Version: 3,
	}

	backupService := BackupService{}
	assert.NoError(t, backupService.ImportAll(admin, doc, BackupModeMerge))

	// The account named in the document is updated in place.
	fresh := &model.User{}
	assert.NoError(t, database.GetDB().First(fresh, "id = ?", admin.Id).Error)
	assert.Equal(t, "Renamed Admin", fresh.Name)

	// Accounts outside the document stay as they were.
	untouched := &model.User{}
	assert.NoError(t, database.GetDB().First(untouched, "id = ?", other.Id).Error)
	assert.Equal(t, "Other", untouched.Name)

	// The other collections merge in the same call.
	songService := SongService{}
	song, err := songService.GetSong("upd")
	assert.NoError(t, err)
	assert.Equal(t, "New Title", song.Title)

	memberService := MemberService{}
	members, err := memberService.GetMembers()
	assert.NoError(t, err)
	assert.Len(t, members, 1)

	// The merged account kept its credentials.
	authService := AuthService{}
	_, err = authService.Login(database.DefaultAdminEmail, "admin")
	assert.NoError(t, err)
}

func TestImportRequiresAdmin(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	doc := &BackupDocument{Songs: []*model.Song{}, Version: 3}
	backupService := BackupService{}
	err := backupService.ImportAll(editor, doc, BackupModeReplace)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestImportUnknownModeRejected(t *testing.T) {
	setup(t)

	admin := seededAdmin(t)
	doc := &BackupDocument{Songs: []*model.Song{}, Version: 3}

	backupService := BackupService{}
	err := backupService.ImportAll(admin, doc, BackupMode("sideways"))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestWriteToFolder(t *testing.T) {
	setup(t)

	backupService := BackupService{}
	path, err := backupService.WriteToFolder(t.TempDir())
	assert.NoError(t, err)
	assert.FileExists(t, path)
}
