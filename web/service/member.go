package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
)

// MemberService manages the choir member directory.
type MemberService struct{}

// GetMembers lists all members ordered by name.
func (s *MemberService) GetMembers() ([]*model.Member, error) {
	db := database.GetDB()
	members := make([]*model.Member, 0)
	err := db.Model(model.Member{}).
		Order("name ASC").
		Find(&members).
		Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MemberService) CreateMember(requester *model.User, member *model.Member) (*model.Member, error) {
	if err := guard(requester, acl.CapMembersWrite); err != nil {
		return nil, err
	}
	if member.Name == "" {
		return nil, ErrValidation
	}
	member.Id = uuid.NewString()
	member.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	db := database.GetDB()
	if err := db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) UpdateMember(requester *model.User, id string, updates *model.Member) (*model.Member, error) {
	if err := guard(requester, acl.CapMembersWrite); err != nil {
		return nil, err
	}
	db := database.GetDB()
	member := &model.Member{}
	err := db.Model(model.Member{}).Where("id = ?", id).First(member).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if updates.Name == "" {
		return nil, ErrValidation
	}

	member.Name = updates.Name
	member.VoicePart = updates.VoicePart
	member.Phone = updates.Phone
	member.Address = updates.Address
	member.IsActive = updates.IsActive

	if err := db.Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) DeleteMember(requester *model.User, id string) error {
	if err := guard(requester, acl.CapMembersWrite); err != nil {
		return err
	}
	db := database.GetDB()
	res := db.Where("id = ?", id).Delete(model.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
