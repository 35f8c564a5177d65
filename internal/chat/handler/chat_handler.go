// Package handler exposes the chat service over HTTP.
package handler

import (
	"net/http"

	"gomentor/internal/chat/service"
	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type startConversationRequest struct {
	RecipientID uint64 `json:"recipient_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type conversationView struct {
	Conversation *dbmysql.Conversation `json:"conversation"`
	Messages     []*dbmysql.Message    `json:"messages"`
}

// RegisterRoutes mounts the chat endpoints; every one of them goes through auth.
func (h *ChatHandler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	protected := func(f http.HandlerFunc) http.Handler { return auth(f) }

	r.Handle("/conversations", protected(h.ListConversations)).Methods(http.MethodGet)
	r.Handle("/conversations", protected(h.StartConversation)).Methods(http.MethodPost)
	r.Handle("/conversations/with/{userID}", protected(h.OpenWithUser)).Methods(http.MethodGet)
	r.Handle("/conversations/{id}", protected(h.OpenConversation)).Methods(http.MethodGet)
	r.Handle("/conversations/{id}/messages", protected(h.SendMessage)).Methods(http.MethodPost)
	r.Handle("/messages/unread", protected(h.UnreadCount)).Methods(http.MethodGet)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	summaries, err := h.chatService.ListConversations(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if summaries == nil {
		summaries = []service.ConversationSummary{}
	}
	common.WriteJSON(w, http.StatusOK, summaries)
}

func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var req startConversationRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	conv, err := h.chatService.GetOrCreateConversation(r.Context(), userID, req.RecipientID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, conv)
}

func (h *ChatHandler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	h.open(w, r, service.ByConversationID{ID: id})
}

func (h *ChatHandler) OpenWithUser(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "userID")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	h.open(w, r, service.ByRecipientID{ID: id})
}

func (h *ChatHandler) open(w http.ResponseWriter, r *http.Request, sel service.Selector) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	conv, messages, err := h.chatService.OpenConversation(r.Context(), userID, sel)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if messages == nil {
		messages = []*dbmysql.Message{}
	}
	common.WriteJSON(w, http.StatusOK, conversationView{Conversation: conv, Messages: messages})
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}
	conversationID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var req sendMessageRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), userID, conversationID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	n, err := h.chatService.TotalUnread(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]int64{"unread_count": n})
}
