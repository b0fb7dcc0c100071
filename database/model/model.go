// Package model defines the database entities for the choir panel.
package model

// Role controls which panel capabilities an account holds.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleUser   Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// User is a panel account. PasswordHash is a bcrypt digest and is never
// serialized into API responses; backup export includes it explicitly via
// its own document type.
type User struct {
	Id              string `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"not null"`
	Email           string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string `json:"-" gorm:"column:password_hash;not null"`
	Role            Role   `json:"role" gorm:"not null"`
	Avatar          string `json:"avatar,omitempty"` // base64 image payload
	IsChatSuspended bool   `json:"isChatSuspended"`
	CreatedAt       string `json:"createdAt"`
}

// Song is one lyrics library entry.
type Song struct {
	Id        string `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"not null"`
	Lyrics    string `json:"lyrics"`
	Category  string `json:"category"`
	Language  string `json:"language,omitempty"`
	Author    string `json:"author,omitempty"`
	CreatedBy string `json:"createdBy"`
	UpdatedBy string `json:"updatedBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// VoicePart values mirror the member directory form.
const (
	VoiceSoprano         = "Soprano"
	VoiceAlto            = "Alto"
	VoiceTenor           = "Tenor"
	VoiceBass            = "Bass"
	VoiceInstrumentalist = "Instrumentalist"
)

// Member is a choir member directory entry. Members are not accounts.
type Member struct {
	Id        string `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	VoicePart string `json:"voicePart"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// Message is a group chat entry. UserName and UserAvatar are denormalized at
// send time so history survives account deletion.
type Message struct {
	Id         string `json:"id" gorm:"primaryKey"`
	UserId     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar,omitempty"`
	Content    string `json:"content"`
	Type       string `json:"type,omitempty"` // text | image | file
	MediaUrl   string `json:"mediaUrl,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// Setting is one key/value row of panel configuration.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
}
