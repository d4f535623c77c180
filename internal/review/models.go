package review

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a review conversation. Messages are never edited in
// place; every submit replaces the session transcript wholesale.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is one code-review conversation. SessionID is the opaque token the
// client passes back on later turns; UserID is nil while the session is
// anonymous and is set once an owner email resolves to a user.
type Session struct {
	ID        uint64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string                       `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_id"`
	UserID    *uint64                      `gorm:"index" json:"-"`
	Messages  datatypes.JSONSlice[Message] `json:"messages"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (Session) TableName() string { return "chat_histories" }
