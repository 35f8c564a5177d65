package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gomentor/internal/cache"
	"gomentor/internal/chat/repository"
	"gomentor/internal/common"
	"gomentor/internal/dbmysql"
)

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	Conversation *dbmysql.Conversation `json:"conversation"`
	UnreadCount  int64                 `json:"unread_count"`
}

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	GetOrCreateConversation(ctx context.Context, userID, otherUserID uint64) (*dbmysql.Conversation, error)
	ListConversations(ctx context.Context, userID uint64) ([]ConversationSummary, error)
	// OpenConversation resolves sel, marks the other side's messages read and
	// returns the full history oldest first.
	OpenConversation(ctx context.Context, userID uint64, sel Selector) (*dbmysql.Conversation, []*dbmysql.Message, error)
	SendMessage(ctx context.Context, userID, conversationID uint64, body string) (*dbmysql.Message, error)
	TotalUnread(ctx context.Context, userID uint64) (int64, error)
}

type chatService struct {
	repo   repository.ChatRepository
	unread *cache.UnreadCounter
	now    func() time.Time
}

// Constructor used in DI/wire. unread may be nil.
func NewChatService(r repository.ChatRepository, unread *cache.UnreadCounter) ChatService {
	return &chatService{
		repo:   r,
		unread: unread,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *chatService) GetOrCreateConversation(ctx context.Context, userID, otherUserID uint64) (*dbmysql.Conversation, error) {
	if userID == 0 || otherUserID == 0 {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if userID == otherUserID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", common.ErrValidation)
	}

	conv, err := s.repo.FindConversationByPair(ctx, userID, otherUserID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", common.ErrNotFound, otherUserID)
	}

	// Statements run outside a transaction so the re-read below sees a row
	// committed by a concurrent creator of the same pair.
	created, err := s.repo.CreateConversationIfAbsent(ctx, dbmysql.NewConversation(userID, otherUserID, s.now()))
	if err != nil {
		return nil, err
	}
	if created {
		log.Printf("Conversation opened between users %d and %d", userID, otherUserID)
	}

	return s.repo.FindConversationByPair(ctx, userID, otherUserID)
}

func (s *chatService) ListConversations(ctx context.Context, userID uint64) ([]ConversationSummary, error) {
	convs, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
	}
	counts, err := s.repo.UnreadCounts(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, len(convs))
	for i, c := range convs {
		summaries[i] = ConversationSummary{Conversation: c, UnreadCount: counts[c.ID]}
	}
	return summaries, nil
}

func (s *chatService) OpenConversation(ctx context.Context, userID uint64, sel Selector) (*dbmysql.Conversation, []*dbmysql.Message, error) {
	var conv *dbmysql.Conversation
	var err error

	switch v := sel.(type) {
	case ByConversationID:
		conv, err = s.repo.FindConversation(ctx, v.ID)
		if err != nil {
			return nil, nil, err
		}
		if !conv.HasParticipant(userID) {
			return nil, nil, fmt.Errorf("%w: not a participant of conversation %d", common.ErrForbidden, v.ID)
		}
	case ByRecipientID:
		conv, err = s.GetOrCreateConversation(ctx, userID, v.ID)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: unsupported conversation selector %T", common.ErrValidation, sel)
	}

	var messages []*dbmysql.Message
	var flipped int64
	err = s.repo.Transaction(ctx, func(repo repository.ChatRepository) error {
		n, err := repo.MarkRead(ctx, conv.ID, userID)
		if err != nil {
			return err
		}
		flipped = n

		messages, err = repo.ListMessages(ctx, conv.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if flipped > 0 {
		s.unread.Invalidate(ctx, userID)
	}
	return conv, messages, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID uint64, body string) (*dbmysql.Message, error) {
	body, err := common.RequireText("message", body)
	if err != nil {
		return nil, err
	}

	var msg *dbmysql.Message
	var recipientID uint64
	err = s.repo.Transaction(ctx, func(repo repository.ChatRepository) error {
		conv, err := repo.FindConversation(ctx, conversationID)
		if err != nil {
			return err
		}
		if !conv.HasParticipant(userID) {
			return fmt.Errorf("%w: not a participant of conversation %d", common.ErrForbidden, conversationID)
		}

		now := s.now()
		msg = &dbmysql.Message{
			ConversationID: &conv.ID,
			SenderID:       userID,
			Content:        body,
			CreatedAt:      now,
			IsRead:         false,
		}
		if err := repo.CreateMessage(ctx, msg); err != nil {
			return err
		}
		recipientID = conv.OtherParticipant(userID)
		return repo.TouchLastMessage(ctx, conv.ID, body, now)
	})
	if err != nil {
		return nil, err
	}

	s.unread.Invalidate(ctx, recipientID)
	return msg, nil
}

func (s *chatService) TotalUnread(ctx context.Context, userID uint64) (int64, error) {
	if n, ok := s.unread.Get(ctx, userID); ok {
		return n, nil
	}

	n, err := s.repo.TotalUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.unread.Put(ctx, userID, n)
	return n, nil
}
