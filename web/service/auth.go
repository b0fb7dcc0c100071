package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/util/crypto"
)

// restoreTimeout bounds session re-validation at startup so a slow database
// cannot block the login flow indefinitely.
const restoreTimeout = 3 * time.Second

// AuthService owns login, session re-validation, account registration and
// profile updates.
type AuthService struct{}

// SeedAdmin ensures the reserved admin account exists. Idempotent; duplicate
// inserts from concurrent callers resolve through the email unique index.
func (s *AuthService) SeedAdmin() error {
	return database.SeedAdmin()
}

// Login authenticates by exact email match and bcrypt comparison. The
// returned account has its password hash stripped.
func (s *AuthService) Login(email string, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	safe := *user
	safe.PasswordHash = ""
	return &safe, nil
}

// RestoreSession re-validates a previously stored session account against the
// database. If the account no longer exists the session is stale and the
// caller must clear it. The lookup is bounded by restoreTimeout; a result
// arriving after the deadline is discarded, never applied to newer state.
func (s *AuthService) RestoreSession(ctx context.Context, stored *model.User) (*model.User, error) {
	if stored == nil || stored.Id == "" {
		return nil, ErrNotFound
	}

	type result struct {
		user *model.User
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		user, err := s.GetUserById(stored.Id)
		ch <- result{user: user, err: err}
	}()

	ctx, cancel := context.WithTimeout(ctx, restoreTimeout)
	defer cancel()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		safe := *r.user
		safe.PasswordHash = ""
		return &safe, nil
	case <-ctx.Done():
		logger.Warning("session restore timed out, forcing completion")
		return nil, ctx.Err()
	}
}

// GetUserById returns the account or ErrNotFound.
func (s *AuthService) GetUserById(id string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new account. The route gate restricts this to admins.
func (s *AuthService) Register(name string, email string, password string, role model.Role) (*model.User, error) {
	if name == "" || email == "" || password == "" || !role.Valid() {
		return nil, ErrValidation
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	safe := *user
	safe.PasswordHash = ""
	return &safe, nil
}

// ResetPassword overwrites the stored credential without confirming the old
// one. Privileged operation, gated at the route.
func (s *AuthService) ResetPassword(id string, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}
	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	db := database.GetDB()
	res := db.Model(model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileUpdate lists the optional profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Avatar   *string
	Password *string
}

// UpdateProfile applies the requested field changes and returns the fresh
// account so the caller can refresh its session copy. An email change fails
// with ErrEmailTaken when another account already holds the address; the
// account's stored email is left untouched in that case.
func (s *AuthService) UpdateProfile(id string, upd ProfileUpdate) (*model.User, error) {
	db := database.GetDB()

	if _, err := s.GetUserById(id); err != nil {
		return nil, err
	}

	if upd.Email != nil {
		var count int64
		err := db.Model(model.User{}).
			Where("email = ? AND id <> ?", *upd.Email, id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
	}

	patch := map[string]any{}
	if upd.Name != nil {
		patch["name"] = *upd.Name
	}
	if upd.Email != nil {
		patch["email"] = *upd.Email
	}
	if upd.Avatar != nil {
		patch["avatar"] = *upd.Avatar
	}
	if upd.Password != nil {
		hash, err := crypto.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		patch["password_hash"] = hash
	}

	if len(patch) > 0 {
		err := db.Model(model.User{}).
			Where("id = ?", id).
			Updates(patch).
			Error
		if err != nil {
			// Unique index backstop for the race between check and write.
			if database.IsDuplicateKey(err) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	}

	user, err := s.GetUserById(id)
	if err != nil {
		return nil, err
	}
	safe := *user
	safe.PasswordHash = ""
	return &safe, nil
}
