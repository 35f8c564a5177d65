package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gomentor/internal/cache"
	"gomentor/internal/chat/repository"
	"gomentor/internal/common"
	"gomentor/internal/dbmysql"
	"gomentor/internal/dbmysql/dbtest"
)

type fixture struct {
	db    *gorm.DB
	svc   *chatService
	clock time.Time
	alice *dbmysql.User
	bob   *dbmysql.User
	carol *dbmysql.User
}

func newFixture(t *testing.T, unread *cache.UnreadCounter) *fixture {
	db := dbtest.New(t)
	f := &fixture{
		db:    db,
		clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		alice: dbtest.CreateUser(t, db, "alice", false),
		bob:   dbtest.CreateUser(t, db, "bob", true),
		carol: dbtest.CreateUser(t, db, "carol", false),
	}
	f.svc = NewChatService(repository.NewChatRepository(db), unread).(*chatService)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func (f *fixture) countRows(t *testing.T, model interface{}) int64 {
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestGetOrCreateConversation_SymmetricAndIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	first, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)
	again, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)
	reversed, err := f.svc.GetOrCreateConversation(ctx, f.bob.UserID, f.alice.UserID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.ID, reversed.ID)
	assert.Equal(t, f.alice.UserID, reversed.ParticipantOneID)
	assert.Equal(t, f.bob.UserID, reversed.ParticipantTwoID)
	assert.Nil(t, first.LastMessage)
	assert.Equal(t, int64(1), f.countRows(t, &dbmysql.Conversation{}))
}

func TestGetOrCreateConversation_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.alice.UserID)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = f.svc.GetOrCreateConversation(ctx, f.alice.UserID, 4242)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, f.db.Model(f.carol).Update("is_active", false).Error)
	_, err = f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.carol.UserID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Zero(t, f.countRows(t, &dbmysql.Conversation{}))
}

func TestSendMessage_UpdatesSummaryAndUnread(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)

	msg, err := f.svc.SendMessage(ctx, f.alice.UserID, conv.ID, "  can we talk about Go?  ")
	require.NoError(t, err)
	assert.Equal(t, "can we talk about Go?", msg.Content)
	assert.False(t, msg.IsRead)

	stored, err := repository.NewChatRepository(f.db).FindConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastMessage)
	assert.Equal(t, "can we talk about Go?", *stored.LastMessage)
	assert.True(t, stored.LastMessageDate.Equal(msg.CreatedAt))

	n, err := f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = f.svc.TotalUnread(ctx, f.alice.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendMessage_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, f.alice.UserID, conv.ID, "   ")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = f.svc.SendMessage(ctx, f.carol.UserID, conv.ID, "let me in")
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = f.svc.SendMessage(ctx, f.alice.UserID, conv.ID+100, "hello?")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Zero(t, f.countRows(t, &dbmysql.Message{}))
}

func TestOpenConversation_MarksOnlyIncomingRead(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)
	for _, send := range []struct {
		from uint64
		body string
	}{
		{f.alice.UserID, "hi"},
		{f.bob.UserID, "hello"},
		{f.alice.UserID, "got a minute?"},
	} {
		_, err := f.svc.SendMessage(ctx, send.from, conv.ID, send.body)
		require.NoError(t, err)
	}

	_, messages, err := f.svc.OpenConversation(ctx, f.alice.UserID, ByConversationID{ID: conv.ID})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"hi", "hello", "got a minute?"},
		[]string{messages[0].Content, messages[1].Content, messages[2].Content})
	assert.False(t, messages[0].IsRead)
	assert.True(t, messages[1].IsRead)
	assert.False(t, messages[2].IsRead)

	n, err := f.svc.TotalUnread(ctx, f.alice.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestOpenConversation_OrdersByTimestamp(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	repo := repository.NewChatRepository(f.db)

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		require.NoError(t, repo.CreateMessage(ctx, &dbmysql.Message{
			ConversationID: &conv.ID,
			SenderID:       f.bob.UserID,
			Content:        []string{"third", "first", "second"}[i],
			CreatedAt:      base.Add(offset),
		}))
	}

	_, messages, err := f.svc.OpenConversation(ctx, f.alice.UserID, ByConversationID{ID: conv.ID})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestOpenConversation_ByRecipientCreatesOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	conv, messages, err := f.svc.OpenConversation(ctx, f.carol.UserID, ByRecipientID{ID: f.bob.UserID})
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Equal(t, f.carol.UserID, conv.ParticipantOneID)

	again, _, err := f.svc.OpenConversation(ctx, f.bob.UserID, ByRecipientID{ID: f.carol.UserID})
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
	assert.Equal(t, int64(1), f.countRows(t, &dbmysql.Conversation{}))

	_, _, err = f.svc.OpenConversation(ctx, f.bob.UserID, ByRecipientID{ID: f.bob.UserID})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestOpenConversation_OutsiderIsForbidden(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.alice.UserID, conv.ID, "private")
	require.NoError(t, err)

	_, _, err = f.svc.OpenConversation(ctx, f.carol.UserID, ByConversationID{ID: conv.ID})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, _, err = f.svc.OpenConversation(ctx, f.carol.UserID, ByConversationID{ID: conv.ID + 1})
	assert.ErrorIs(t, err, common.ErrNotFound)

	n, err := f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListConversations_MostRecentFirstWithUnread(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	withBob, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)
	withCarol, err := f.svc.GetOrCreateConversation(ctx, f.carol.UserID, f.alice.UserID)
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, f.carol.UserID, withCarol.ID, "one")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.bob.UserID, withBob.ID, "two")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.bob.UserID, withBob.ID, "three")
	require.NoError(t, err)

	summaries, err := f.svc.ListConversations(ctx, f.alice.UserID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, withBob.ID, summaries[0].Conversation.ID)
	assert.Equal(t, int64(2), summaries[0].UnreadCount)
	require.NotNil(t, summaries[0].Conversation.ParticipantTwo)
	assert.Equal(t, "bob", summaries[0].Conversation.ParticipantTwo.Username)

	assert.Equal(t, withCarol.ID, summaries[1].Conversation.ID)
	assert.Equal(t, int64(1), summaries[1].UnreadCount)

	empty, err := f.svc.ListConversations(ctx, 4242)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTotalUnread_CacheIsInvalidated(t *testing.T) {
	srv := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache("redis://" + srv.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	f := newFixture(t, cache.NewUnreadCounter(redisCache, time.Minute))
	ctx := context.Background()

	conv, err := f.svc.GetOrCreateConversation(ctx, f.alice.UserID, f.bob.UserID)
	require.NoError(t, err)

	n, err := f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)
	cached, err := srv.Get("unread:" + strconv.FormatUint(f.bob.UserID, 10))
	require.NoError(t, err)
	assert.Equal(t, "0", cached)

	_, err = f.svc.SendMessage(ctx, f.alice.UserID, conv.ID, "ping")
	require.NoError(t, err)
	assert.False(t, srv.Exists("unread:"+strconv.FormatUint(f.bob.UserID, 10)))

	n, err = f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, _, err = f.svc.OpenConversation(ctx, f.bob.UserID, ByConversationID{ID: conv.ID})
	require.NoError(t, err)
	assert.False(t, srv.Exists("unread:"+strconv.FormatUint(f.bob.UserID, 10)))

	n, err = f.svc.TotalUnread(ctx, f.bob.UserID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
