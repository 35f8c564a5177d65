package dbmysql

import (
	"time"
)

// Conversation is a 1:1 thread. ParticipantOneID is the initiator and
// ParticipantTwoID the recipient; PairLowID/PairHighID hold the same two ids
// sorted so the unique index covers the unordered pair.
type Conversation struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ParticipantOneID uint64    `gorm:"column:participant_one_id;index;not null" json:"participant_one_id"`
	ParticipantTwoID uint64    `gorm:"column:participant_two_id;index;not null" json:"participant_two_id"`
	PairLowID        uint64    `gorm:"column:pair_low_id;not null;index:idx_conversation_pair,unique" json:"-"`
	PairHighID       uint64    `gorm:"column:pair_high_id;not null;index:idx_conversation_pair,unique" json:"-"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	LastMessage      *string   `gorm:"column:last_message;type:text" json:"last_message"`
	LastMessageDate  time.Time `gorm:"column:last_message_date;index" json:"last_message_date"`

	ParticipantOne *User `gorm:"foreignKey:ParticipantOneID;references:UserID;constraint:OnDelete:CASCADE" json:"participant_one,omitempty"`
	ParticipantTwo *User `gorm:"foreignKey:ParticipantTwoID;references:UserID;constraint:OnDelete:CASCADE" json:"participant_two,omitempty"`
}

// NewConversation builds an unsaved conversation opened by initiatorID.
func NewConversation(initiatorID, recipientID uint64, now time.Time) *Conversation {
	low, high := PairKey(initiatorID, recipientID)
	return &Conversation{
		ParticipantOneID: initiatorID,
		ParticipantTwoID: recipientID,
		PairLowID:        low,
		PairHighID:       high,
		CreatedAt:        now,
		LastMessageDate:  now,
	}
}

// PairKey orders two user ids so {a,b} and {b,a} map to the same key.
func PairKey(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uint64) bool {
	return c.ParticipantOneID == userID || c.ParticipantTwoID == userID
}

// OtherParticipant returns the id on the opposite side from userID.
func (c *Conversation) OtherParticipant(userID uint64) uint64 {
	if c.ParticipantOneID == userID {
		return c.ParticipantTwoID
	}
	return c.ParticipantOneID
}
