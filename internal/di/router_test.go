package di

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chathandler "gomentor/internal/chat/handler"
	chatrepo "gomentor/internal/chat/repository"
	chatservice "gomentor/internal/chat/service"
	"gomentor/internal/common"
	"gomentor/internal/content"
	"gomentor/internal/dbmysql/dbtest"
	"gomentor/internal/user"
)

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	db := dbtest.New(t)
	tokens := common.NewTokenManager("router-test", time.Hour, "gomentor")

	userHandler := user.NewHandler(user.NewUserService(user.NewUserRepository(db), user.NewProfileRepository(db), tokens))
	chatHandler := chathandler.NewChatHandler(chatservice.NewChatService(chatrepo.NewChatRepository(db), nil))
	repo := content.NewContentRepository(db)
	contentHandlers := &content.ContentHandlers{ContentSvc: content.NewContentService(repo, repo, repo, repo)}

	return &apiClient{t: t, router: NewRouter(db, tokens, userHandler, chatHandler, contentHandlers)}
}

func (c *apiClient) do(method, path, token string, body interface{}, out interface{}) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return rec.Code
}

func (c *apiClient) register(username string) (uint64, string) {
	var resp struct {
		Token string `json:"token"`
		User  struct {
			UserID uint64 `json:"user_id"`
		} `json:"user"`
	}
	code := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    username + "@example.com",
		"username": username,
		"password": "correct-horse",
	}, &resp)
	require.Equal(c.t, http.StatusCreated, code)
	return resp.User.UserID, resp.Token
}

func TestRouter_Health(t *testing.T) {
	c := newAPIClient(t)

	var status map[string]string
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", nil, &status))
	assert.Equal(t, "healthy", status["status"])
}

func TestRouter_ChatFlow(t *testing.T) {
	c := newAPIClient(t)

	aliceID, aliceToken := c.register("alice")
	bobID, bobToken := c.register("bob")

	var login struct {
		Token string `json:"token"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/auth/login", "", map[string]string{
		"login": "alice@example.com", "password": "correct-horse",
	}, &login))
	assert.NotEmpty(t, login.Token)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/conversations", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/conversations", "not-a-jwt", nil, nil))

	var conv struct {
		ID uint64 `json:"id"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/conversations", aliceToken,
		map[string]uint64{"recipient_id": bobID}, &conv))
	require.NotZero(t, conv.ID)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/conversations/%d/messages", conv.ID), aliceToken,
		map[string]string{"content": "hi bob"}, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, fmt.Sprintf("/conversations/%d/messages", conv.ID), aliceToken,
		map[string]string{"content": "   "}, nil))

	var unread map[string]int64
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/messages/unread", bobToken, nil, &unread))
	assert.Equal(t, int64(1), unread["unread_count"])

	var view struct {
		Conversation struct {
			ID uint64 `json:"id"`
		} `json:"conversation"`
		Messages []struct {
			Content string `json:"content"`
			IsRead  bool   `json:"is_read"`
		} `json:"messages"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/conversations/with/%d", aliceID), bobToken, nil, &view))
	assert.Equal(t, conv.ID, view.Conversation.ID)
	require.Len(t, view.Messages, 1)
	assert.True(t, view.Messages[0].IsRead)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/messages/unread", bobToken, nil, &unread))
	assert.Zero(t, unread["unread_count"])

	_, eveToken := c.register("eve")
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, fmt.Sprintf("/conversations/%d", conv.ID), eveToken, nil, nil))
}

func TestRouter_PublicReadsProtectedWrites(t *testing.T) {
	c := newAPIClient(t)
	_, token := c.register("author")

	var blogs []interface{}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/blogs", "", nil, &blogs))
	assert.Empty(t, blogs)

	blog := map[string]string{"title": "Hello", "content": "First post"}
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/blogs", "", blog, nil))
	assert.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/blogs", token, blog, nil))

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/blogs", "", nil, &blogs))
	assert.Len(t, blogs, 1)
}
