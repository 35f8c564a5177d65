package user

import (
	"net/http"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"

	"github.com/gorilla/mux"
)

// Handler wires HTTP requests to UserService.
type Handler struct {
	userService UserService
}

func NewHandler(userService UserService) *Handler {
	return &Handler{userService: userService}
}

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *dbmysql.User `json:"user"`
}

// RegisterRoutes mounts the auth and directory endpoints. Only /me needs a caller.
func (h *Handler) RegisterRoutes(r *mux.Router, auth mux.MiddlewareFunc) {
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.Handle("/me", auth(http.HandlerFunc(h.Me))).Methods(http.MethodGet)
	r.HandleFunc("/mentors", h.ListMentors).Methods(http.MethodGet)
	r.HandleFunc("/profiles", h.ListProfiles).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{id}", h.GetProfile).Methods(http.MethodGet)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	user, token, err := h.userService.RegisterUser(r.Context(), req.Email, req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	user, token, err := h.userService.LoginUser(r.Context(), req.Login, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.userService.ListMentors(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if mentors == nil {
		mentors = []*dbmysql.User{}
	}
	common.WriteJSON(w, http.StatusOK, mentors)
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.ListProfiles(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if profiles == nil {
		profiles = []*dbmysql.Profile{}
	}
	common.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, profile)
}
