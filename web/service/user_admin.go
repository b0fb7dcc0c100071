package service

import (
	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
)

// UserAdminService implements the admin-only account management operations.
type UserAdminService struct {
	authService AuthService
}

// GetUsers lists all accounts, oldest first, password hashes stripped.
func (s *UserAdminService) GetUsers() ([]*model.User, error) {
	db := database.GetDB()
	users := make([]*model.User, 0)
	err := db.Model(model.User{}).
		Order("created_at ASC").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// CreateUser registers a new account on behalf of an admin.
func (s *UserAdminService) CreateUser(requester *model.User, name, email, password string, role model.Role) (*model.User, error) {
	if err := guard(requester, acl.CapUsersAdmin); err != nil {
		return nil, err
	}
	return s.authService.Register(name, email, password, role)
}

// UpdateUserRole changes an account's role. Demoting the last remaining
// admin is refused so the panel cannot lock itself out.
func (s *UserAdminService) UpdateUserRole(requester *model.User, id string, role model.Role) (*model.User, error) {
	if err := guard(requester, acl.CapUsersAdmin); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrValidation
	}

	user, err := s.authService.GetUserById(id)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleAdmin && role != model.RoleAdmin {
		count, err := s.countAdmins()
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, ErrForbidden
		}
	}

	db := database.GetDB()
	err = db.Model(model.User{}).
		Where("id = ?", id).
		Update("role", role).
		Error
	if err != nil {
		return nil, err
	}

	user.Role = role
	user.PasswordHash = ""
	return user, nil
}

// ResetPassword overwrites an account's credential.
func (s *UserAdminService) ResetPassword(requester *model.User, id string, newPassword string) error {
	if err := guard(requester, acl.CapUsersAdmin); err != nil {
		return err
	}
	return s.authService.ResetPassword(id, newPassword)
}

// DeleteUser removes an account. Self-deletion is forbidden, and the last
// admin account can never be deleted.
func (s *UserAdminService) DeleteUser(requester *model.User, id string) error {
	if err := guard(requester, acl.CapUsersAdmin); err != nil {
		return err
	}
	if id == requester.Id {
		return ErrForbidden
	}

	user, err := s.authService.GetUserById(id)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		count, err := s.countAdmins()
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrForbidden
		}
	}

	db := database.GetDB()
	return db.Where("id = ?", id).Delete(model.User{}).Error
}

func (s *UserAdminService) countAdmins() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).
		Where("role = ?", model.RoleAdmin).
		Count(&count).Error
	return count, err
}
