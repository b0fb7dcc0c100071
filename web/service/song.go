package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
)

// SongService manages the lyrics library.
type SongService struct{}

// GetSongs lists all songs, newest first.
func (s *SongService) GetSongs() ([]*model.Song, error) {
	db := database.GetDB()
	songs := make([]*model.Song, 0)
	err := db.Model(model.Song{}).
		Order("created_at DESC").
		Find(&songs).
		Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (s *SongService) GetSong(id string) (*model.Song, error) {
	db := database.GetDB()
	song := &model.Song{}
	err := db.Model(model.Song{}).Where("id = ?", id).First(song).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return song, nil
}

// CreateSong stores a new song stamped with the creating account.
func (s *SongService) CreateSong(requester *model.User, song *model.Song) (*model.Song, error) {
	if err := guard(requester, acl.CapSongsWrite); err != nil {
		return nil, err
	}
	if song.Title == "" {
		return nil, ErrValidation
	}
	now := time.Now().UTC().Format(time.RFC3339)
	song.Id = uuid.NewString()
	song.CreatedBy = requester.Id
	song.UpdatedBy = requester.Id
	song.CreatedAt = now
	song.UpdatedAt = now

	db := database.GetDB()
	if err := db.Create(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

// UpdateSong applies the editable fields and stamps updatedBy/updatedAt.
// CreatedBy and CreatedAt are never modified.
func (s *SongService) UpdateSong(requester *model.User, id string, updates *model.Song) (*model.Song, error) {
	if err := guard(requester, acl.CapSongsWrite); err != nil {
		return nil, err
	}
	song, err := s.GetSong(id)
	if err != nil {
		return nil, err
	}
	if updates.Title == "" {
		return nil, ErrValidation
	}

	song.Title = updates.Title
	song.Lyrics = updates.Lyrics
	song.Category = updates.Category
	song.Language = updates.Language
	song.Author = updates.Author
	song.UpdatedBy = requester.Id
	song.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	db := database.GetDB()
	if err := db.Save(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

func (s *SongService) DeleteSong(requester *model.User, id string) error {
	if err := guard(requester, acl.CapSongsWrite); err != nil {
		return err
	}
	db := database.GetDB()
	res := db.Where("id = ?", id).Delete(model.Song{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
