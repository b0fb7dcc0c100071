package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
)

func TestLoginSeededAdmin(t *testing.T) {
	setup(t)

	authService := AuthService{}
	user, err := authService.Login(database.DefaultAdminEmail, "admin")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Empty(t, user.PasswordHash, "login must not leak the credential")
}

func TestLoginWrongPassword(t *testing.T) {
	setup(t)

	authService := AuthService{}
	_, err := authService.Login(database.DefaultAdminEmail, "not-the-password")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLoginUnknownEmail(t *testing.T) {
	setup(t)

	authService := AuthService{}
	_, err := authService.Login("nobody@ruvumera.choir", "admin")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSeedAdminIdempotent(t *testing.T) {
	setup(t)

	authService := AuthService{}
	assert.NoError(t, authService.SeedAdmin())
	assert.NoError(t, authService.SeedAdmin())

	var count int64
	db := database.GetDB()
	err := db.Model(model.User{}).Where("email = ?", database.DefaultAdminEmail).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)

	registerUser(t, "Asha", "asha@example.com", "pw123456", model.RoleUser)

	authService := AuthService{}
	_, err := authService.Register("Imposter", "asha@example.com", "pw123456", model.RoleUser)
	assert.True(t, errors.Is(err, ErrEmailTaken))
}

func TestRegisterValidation(t *testing.T) {
	setup(t)

	authService := AuthService{}
	_, err := authService.Register("", "x@example.com", "pw", model.RoleUser)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = authService.Register("X", "x@example.com", "pw", model.Role("SUPERVISOR"))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRestoreSession(t *testing.T) {
	setup(t)

	admin := seededAdmin(t)
	authService := AuthService{}

	user, err := authService.RestoreSession(context.Background(), admin)
	assert.NoError(t, err)
	assert.Equal(t, admin.Id, user.Id)
	assert.Empty(t, user.PasswordHash)
}

func TestRestoreSessionDeletedAccount(t *testing.T) {
	setup(t)

	ghost := registerUser(t, "Ghost", "ghost@example.com", "pw123456", model.RoleUser)

	db := database.GetDB()
	assert.NoError(t, db.Where("id = ?", ghost.Id).Delete(model.User{}).Error)

	authService := AuthService{}
	_, err := authService.RestoreSession(context.Background(), ghost)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRestoreSessionEmptyStored(t *testing.T) {
	setup(t)

	authService := AuthService{}
	_, err := authService.RestoreSession(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = authService.RestoreSession(context.Background(), &model.User{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResetPasswordUnknownUser(t *testing.T) {
	setup(t)

	authService := AuthService{}
	err := authService.ResetPassword("no-such-id", "newpassword")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResetPasswordChangesLogin(t *testing.T) {
	setup(t)

	user := registerUser(t, "Neema", "neema@example.com", "oldpass99", model.RoleEditor)

	authService := AuthService{}
	assert.NoError(t, authService.ResetPassword(user.Id, "newpass99"))

	_, err := authService.Login("neema@example.com", "oldpass99")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	logged, err := authService.Login("neema@example.com", "newpass99")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, logged.Id)
}

func TestUpdateProfileFields(t *testing.T) {
	setup(t)

	user := registerUser(t, "Old Name", "old@example.com", "pw123456", model.RoleUser)

	name := "New Name"
	avatar := "data:image/png;base64,abc"
	authService := AuthService{}
	updated, err := authService.UpdateProfile(user.Id, ProfileUpdate{Name: &name, Avatar: &avatar})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, avatar, updated.Avatar)
	assert.Equal(t, "old@example.com", updated.Email, "unset fields stay unchanged")
	assert.Empty(t, updated.PasswordHash)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	setup(t)

	registerUser(t, "Holder", "taken@example.com", "pw123456", model.RoleUser)
	user := registerUser(t, "Mover", "mover@example.com", "pw123456", model.RoleUser)

	taken := "taken@example.com"
	authService := AuthService{}
	_, err := authService.UpdateProfile(user.Id, ProfileUpdate{Email: &taken})
	assert.True(t, errors.Is(err, ErrEmailTaken))

	// The stored email must be untouched after the refused change.
	fresh, err := authService.GetUserById(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, "mover@example.com", fresh.Email)
}
