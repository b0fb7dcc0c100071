package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruvumera/choir-panel/database/model"
)

func TestCreateSongStampsAuthor(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	songService := SongService{}
	song, err := songService.CreateSong(editor, &model.Song{Title: "Mwamba", Lyrics: "..."})
	assert.NoError(t, err)
	assert.NotEmpty(t, song.Id)
	assert.Equal(t, editor.Id, song.CreatedBy)
	assert.Equal(t, editor.Id, song.UpdatedBy)
	assert.NotEmpty(t, song.CreatedAt)
}

func TestCreateSongRequiresWriteCapability(t *testing.T) {
	setup(t)

	user := registerUser(t, "Plain", "plain@example.com", "pw123456", model.RoleUser)

	songService := SongService{}
	_, err := songService.CreateSong(user, &model.Song{Title: "Nope"})
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCreateSongRequiresTitle(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	songService := SongService{}
	_, err := songService.CreateSong(editor, &model.Song{Lyrics: "words only"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateSongPreservesProvenance(t *testing.T) {
	setup(t)

	creator := registerUser(t, "Creator", "creator@example.com", "pw123456", model.RoleEditor)
	updater := registerUser(t, "Updater", "updater@example.com", "pw123456", model.RoleEditor)

	songService := SongService{}
	song, err := songService.CreateSong(creator, &model.Song{Title: "Original"})
	assert.NoError(t, err)

	updated, err := songService.UpdateSong(updater, song.Id, &model.Song{Title: "Edited", Category: "Worship"})
	assert.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, creator.Id, updated.CreatedBy, "createdBy never changes")
	assert.Equal(t, updater.Id, updated.UpdatedBy)
}

func TestUpdateSongNotFound(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	songService := SongService{}
	_, err := songService.UpdateSong(editor, "missing", &model.Song{Title: "X"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteSong(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	songService := SongService{}
	song, err := songService.CreateSong(editor, &model.Song{Title: "Short lived"})
	assert.NoError(t, err)

	assert.NoError(t, songService.DeleteSong(editor, song.Id))

	err = songService.DeleteSong(editor, song.Id)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = songService.GetSong(song.Id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemberLifecycle(t *testing.T) {
	setup(t)

	editor := registerUser(t, "Editor", "editor@example.com", "pw123456", model.RoleEditor)

	memberService := MemberService{}
	member, err := memberService.CreateMember(editor, &model.Member{
		Name:      "Bahati",
		VoicePart: model.VoiceAlto,
		IsActive:  true,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, member.Id)

	updated, err := memberService.UpdateMember(editor, member.Id, &model.Member{
		Name:      "Bahati M.",
		VoicePart: model.VoiceSoprano,
		IsActive:  false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Bahati M.", updated.Name)
	assert.Equal(t, model.VoiceSoprano, updated.VoicePart)
	assert.False(t, updated.IsActive)

	assert.NoError(t, memberService.DeleteMember(editor, member.Id))
	err = memberService.DeleteMember(editor, member.Id)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemberWritesRequireCapability(t *testing.T) {
	setup(t)

	user := registerUser(t, "Plain", "plain@example.com", "pw123456", model.RoleUser)

	memberService := MemberService{}
	_, err := memberService.CreateMember(user, &model.Member{Name: "X"})
	assert.True(t, errors.Is(err, ErrForbidden))
}
