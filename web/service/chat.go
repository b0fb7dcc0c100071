package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ruvumera/choir-panel/database"
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/websocket"
)

// ChatHistoryLimit caps how much history the panel serves and exports.
// Older messages stay in the database but are not part of the API contract.
const ChatHistoryLimit = 200

// ChatService manages the group chat. Message events are additionally pushed
// over the websocket hub; polling GetMessages stays authoritative.
type ChatService struct{}

// GetMessages returns the most recent messages in ascending timestamp order.
func (s *ChatService) GetMessages() ([]*model.Message, error) {
	db := database.GetDB()
	messages := make([]*model.Message, 0, ChatHistoryLimit)
	err := db.Model(model.Message{}).
		Order("timestamp DESC").
		Limit(ChatHistoryLimit).
		Find(&messages).
		Error
	if err != nil {
		return nil, err
	}
	// Reverse into chronological order for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage stores a message from sender. The sender's name and avatar are
// denormalized onto the row. Suspended accounts are rejected against the
// database, not the session copy.
func (s *ChatService) SendMessage(requester *model.User, msg *model.Message) (*model.Message, error) {
	if err := guard(requester, acl.CapChat); err != nil {
		return nil, err
	}
	if msg.Content == "" && msg.MediaUrl == "" {
		return nil, ErrValidation
	}

	db := database.GetDB()
	sender := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", requester.Id).First(sender).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if sender.IsChatSuspended {
		return nil, ErrForbidden
	}

	msg.Id = uuid.NewString()
	msg.UserId = sender.Id
	msg.UserName = sender.Name
	msg.UserAvatar = sender.Avatar
	if msg.Type == "" {
		msg.Type = "text"
	}
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	if err := db.Create(msg).Error; err != nil {
		return nil, err
	}

	websocket.BroadcastMessageCreated(msg)
	return msg, nil
}

// DeleteMessage removes a message. Authors may delete their own messages,
// admins anyone's. Deleting an already-deleted message is a no-op so
// duplicate realtime deliveries stay harmless.
func (s *ChatService) DeleteMessage(id string, requester *model.User) error {
	db := database.GetDB()
	msg := &model.Message{}
	err := db.Model(model.Message{}).Where("id = ?", id).First(msg).Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}

	if requester.Role != model.RoleAdmin && msg.UserId != requester.Id {
		return ErrForbidden
	}

	if err := db.Where("id = ?", id).Delete(model.Message{}).Error; err != nil {
		return err
	}

	websocket.BroadcastMessageDeleted(id)
	return nil
}

// SetChatSuspended toggles an account's ability to send messages.
func (s *ChatService) SetChatSuspended(requester *model.User, userId string, suspended bool) error {
	if err := guard(requester, acl.CapUsersAdmin); err != nil {
		return err
	}
	db := database.GetDB()
	res := db.Model(model.User{}).
		Where("id = ?", userId).
		Update("is_chat_suspended", suspended)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TrimHistory deletes messages beyond keep, oldest first. Used by the
// scheduled maintenance job.
func (s *ChatService) TrimHistory(keep int) (int64, error) {
	db := database.GetDB()
	var total int64
	if err := db.Model(model.Message{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total <= int64(keep) {
		return 0, nil
	}

	res := db.Where("id IN (?)",
		db.Model(model.Message{}).
			Select("id").
			Order("timestamp ASC").
			Limit(int(total)-keep),
	).Delete(model.Message{})
	return res.RowsAffected, res.Error
}
