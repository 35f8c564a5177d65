package content

import (
	"net/http"
	"strconv"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"github.com/gorilla/mux"
)

type ContentHandlers struct {
	ContentSvc ContentUsecase
}

type commentRequest struct {
	Content string `json:"content"`
}

type reactionRequest struct {
	Reaction string `json:"reaction"`
}

// RegisterRoutes mounts the catalogue. Reads are public, writes go through auth.
func (h *ContentHandlers) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	protected := func(f http.HandlerFunc) http.Handler { return auth(f) }

	r.HandleFunc("/blogs", h.ListBlogs).Methods(http.MethodGet)
	r.Handle("/blogs", protected(h.CreateBlog)).Methods(http.MethodPost)
	r.HandleFunc("/blogs/trending", h.TrendingBlogs).Methods(http.MethodGet)
	r.HandleFunc("/blogs/{id}", h.GetBlog).Methods(http.MethodGet)
	r.Handle("/blogs/{id}/comments", protected(h.AddBlogComment)).Methods(http.MethodPost)
	r.Handle("/blogs/{id}/reactions", protected(h.reactTo(TargetBlog))).Methods(http.MethodPost)

	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/tutorials", h.ListTutorials).Methods(http.MethodGet)
	r.Handle("/tutorials", protected(h.CreateTutorial)).Methods(http.MethodPost)
	r.HandleFunc("/tutorials/{id}", h.GetTutorial).Methods(http.MethodGet)
	r.Handle("/tutorials/{id}/comments", protected(h.AddTutorialComment)).Methods(http.MethodPost)
	r.Handle("/tutorials/{id}/reactions", protected(h.reactTo(TargetTutorial))).Methods(http.MethodPost)
}

func (h *ContentHandlers) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.ContentSvc.ListBlogs(r.Context(), queryInt(r, "limit"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if blogs == nil {
		blogs = []*dbmysql.Blog{}
	}
	common.WriteJSON(w, http.StatusOK, blogs)
}

func (h *ContentHandlers) TrendingBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.ContentSvc.TrendingBlogs(r.Context(), queryInt(r, "limit"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if blogs == nil {
		blogs = []*dbmysql.Blog{}
	}
	common.WriteJSON(w, http.StatusOK, blogs)
}

func (h *ContentHandlers) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	detail, err := h.ContentSvc.GetBlog(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, detail)
}

func (h *ContentHandlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var in BlogInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}

	blog, err := h.ContentSvc.CreateBlog(r.Context(), userID, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, blog)
}

func (h *ContentHandlers) AddBlogComment(w http.ResponseWriter, r *http.Request) {
	userID, id, body, err := commentParams(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	comment, err := h.ContentSvc.AddBlogComment(r.Context(), userID, id, body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, comment)
}

func (h *ContentHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.ContentSvc.ListCategories(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if categories == nil {
		categories = []*dbmysql.Category{}
	}
	common.WriteJSON(w, http.StatusOK, categories)
}

func (h *ContentHandlers) ListTutorials(w http.ResponseWriter, r *http.Request) {
	var categoryID uint64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			common.WriteError(w, common.ErrValidation)
			return
		}
		categoryID = id
	}

	tutorials, err := h.ContentSvc.ListTutorials(r.Context(), categoryID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if tutorials == nil {
		tutorials = []*dbmysql.Tutorial{}
	}
	common.WriteJSON(w, http.StatusOK, tutorials)
}

func (h *ContentHandlers) GetTutorial(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	detail, err := h.ContentSvc.GetTutorial(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, detail)
}

func (h *ContentHandlers) CreateTutorial(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	var in TutorialInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}

	tutorial, err := h.ContentSvc.CreateTutorial(r.Context(), userID, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, tutorial)
}

func (h *ContentHandlers) AddTutorialComment(w http.ResponseWriter, r *http.Request) {
	userID, id, body, err := commentParams(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	comment, err := h.ContentSvc.AddTutorialComment(r.Context(), userID, id, body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, comment)
}

func (h *ContentHandlers) reactTo(kind TargetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.UserIDFromContext(r.Context())
		if !ok {
			common.WriteError(w, common.ErrUnauthenticated)
			return
		}
		id, err := common.PathID(r, "id")
		if err != nil {
			common.WriteError(w, err)
			return
		}

		var req reactionRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(w, err)
			return
		}
		reaction, err := common.ParseReactionKind(req.Reaction)
		if err != nil {
			common.WriteError(w, err)
			return
		}

		summary, err := h.ContentSvc.React(r.Context(), userID, Target{Kind: kind, ID: id}, reaction)
		if err != nil {
			common.WriteError(w, err)
			return
		}
		common.WriteJSON(w, http.StatusOK, summary)
	}
}

func commentParams(r *http.Request) (userID, targetID uint64, body string, err error) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		return 0, 0, "", common.ErrUnauthenticated
	}
	targetID, err = common.PathID(r, "id")
	if err != nil {
		return 0, 0, "", err
	}

	var req commentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return 0, 0, "", err
	}
	return userID, targetID, req.Content, nil
}

// queryInt returns 0 when the parameter is missing or malformed.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
