package dbmysql

import (
	"time"
)

type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID *uint64   `gorm:"column:conversation_id;index:idx_message_conversation_created" json:"conversation_id"`
	SenderID       uint64    `gorm:"column:sender_id;index;not null" json:"sender_id"`
	Content        string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"column:created_at;index:idx_message_conversation_created" json:"created_at"`
	IsRead         bool      `gorm:"column:is_read;not null" json:"is_read"`

	Conversation *Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	Sender       *User         `gorm:"foreignKey:SenderID;references:UserID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
}
