package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=../service/mocks/mock_chat_repository.go -package=mocks gomentor/internal/chat/repository ChatRepository

type ChatRepository interface {
	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(repo ChatRepository) error) error

	UserExists(ctx context.Context, userID uint64) (bool, error)

	FindConversation(ctx context.Context, conversationID uint64) (*dbmysql.Conversation, error)
	FindConversationByPair(ctx context.Context, userA, userB uint64) (*dbmysql.Conversation, error)
	// CreateConversationIfAbsent inserts conv unless its pair already exists.
	// It reports whether a row was inserted.
	CreateConversationIfAbsent(ctx context.Context, conv *dbmysql.Conversation) (bool, error)
	ListConversations(ctx context.Context, userID uint64) ([]*dbmysql.Conversation, error)
	TouchLastMessage(ctx context.Context, conversationID uint64, text string, at time.Time) error

	CreateMessage(ctx context.Context, msg *dbmysql.Message) error
	ListMessages(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error)
	MarkRead(ctx context.Context, conversationID, viewerID uint64) (int64, error)
	UnreadCounts(ctx context.Context, userID uint64, conversationIDs []uint64) (map[uint64]int64, error)
	TotalUnread(ctx context.Context, userID uint64) (int64, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Transaction(ctx context.Context, fn func(repo ChatRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&chatRepo{db: tx})
	})
}

func (r *chatRepo) UserExists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return count > 0, nil
}

func (r *chatRepo) FindConversation(ctx context.Context, conversationID uint64) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).First(&conv, "id = ?", conversationID).Error
	if err != nil {
		return nil, notFound(err, "conversation")
	}
	return &conv, nil
}

func (r *chatRepo) FindConversationByPair(ctx context.Context, userA, userB uint64) (*dbmysql.Conversation, error) {
	low, high := dbmysql.PairKey(userA, userB)

	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("pair_low_id = ? AND pair_high_id = ?", low, high).
		First(&conv).Error
	if err != nil {
		return nil, notFound(err, "conversation")
	}
	return &conv, nil
}

func (r *chatRepo) CreateConversationIfAbsent(ctx context.Context, conv *dbmysql.Conversation) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(conv)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create conversation: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *chatRepo) ListConversations(ctx context.Context, userID uint64) ([]*dbmysql.Conversation, error) {
	var convs []*dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Preload("ParticipantOne").
		Preload("ParticipantTwo").
		Where("participant_one_id = ? OR participant_two_id = ?", userID, userID).
		Order("last_message_date DESC").
		Order("id DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *chatRepo) TouchLastMessage(ctx context.Context, conversationID uint64, text string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]interface{}{
			"last_message":      text,
			"last_message_date": at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *dbmysql.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// MarkRead flips every unread message in the conversation not sent by viewerID
// and returns how many rows changed.
func (r *chatRepo) MarkRead(ctx context.Context, conversationID, viewerID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, viewerID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *chatRepo) UnreadCounts(ctx context.Context, userID uint64, conversationIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ConversationID uint64
		Unread         int64
	}
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Select("conversation_id, COUNT(*) AS unread").
		Where("conversation_id IN ? AND is_read = ? AND sender_id <> ?", conversationIDs, false, userID).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	for _, row := range rows {
		counts[row.ConversationID] = row.Unread
	}
	return counts, nil
}

func (r *chatRepo) TotalUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.participant_one_id = ? OR conversations.participant_two_id = ?) AND messages.is_read = ? AND messages.sender_id <> ?",
			userID, userID, false, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get unread count: %w", err)
	}
	return count, nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", common.ErrNotFound, what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
