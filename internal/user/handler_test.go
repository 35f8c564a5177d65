package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"gomentor/internal/common"
	"gomentor/internal/dbmysql"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, h *Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	router := mux.NewRouter()
	h.RegisterRoutes(router, func(next http.Handler) http.Handler { return next })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	tests := []struct {
		name       string
		body       string
		setup      func()
		wantStatus int
	}{
		{
			name: "happy path",
			body: `{"email":"a@x.com","username":"alice","first_name":"A","last_name":"L","password":"pwgood123"}`,
			setup: func() {
				mockSvc.EXPECT().RegisterUser(gomock.Any(), "a@x.com", "alice", "A", "L", "pwgood123").
					Return(&dbmysql.User{UserID: 2, Username: "alice"}, "tok", nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "validation error",
			body: `{"email":"bad","username":"!","password":""}`,
			setup: func() {
				mockSvc.EXPECT().RegisterUser(gomock.Any(), "bad", "!", "", "", "").
					Return(nil, "", fmt.Errorf("%w: invalid email format", common.ErrValidation))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "already registered",
			body: `{"email":"b@x.com","username":"bob","password":"pwgood123"}`,
			setup: func() {
				mockSvc.EXPECT().RegisterUser(gomock.Any(), "b@x.com", "bob", "", "", "pwgood123").
					Return(nil, "", fmt.Errorf("%w: username or email already registered", common.ErrConflict))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "malformed json",
			body:       `{`,
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup()
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			rec, env := doRequest(t, h, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusCreated {
				var resp authResponse
				require.NoError(t, json.Unmarshal(env.Data, &resp))
				require.Equal(t, "tok", resp.Token)
				require.Equal(t, uint64(2), resp.User.UserID)
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	mockSvc.EXPECT().LoginUser(gomock.Any(), "bob", "pw").
		Return(nil, "", fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"bob","password":"pw"}`))
	rec, env := doRequest(t, h, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, env.Success)
	require.Contains(t, env.Message, "invalid credentials")
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("anonymous", func(t *testing.T) {
		rec, _ := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/me", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		mockSvc.EXPECT().GetUser(gomock.Any(), uint64(5)).Return(&dbmysql.User{UserID: 5, Username: "eve"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req = req.WithContext(common.WithUser(req.Context(), 5, "eve"))
		rec, env := doRequest(t, h, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var user dbmysql.User
		require.NoError(t, json.Unmarshal(env.Data, &user))
		require.Equal(t, "eve", user.Username)
	})
}

func TestHandler_Directory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockSvc := NewMockUserService(ctrl)
	h := NewHandler(mockSvc)

	t.Run("mentors empty list", func(t *testing.T) {
		mockSvc.EXPECT().ListMentors(gomock.Any()).Return(nil, nil)

		rec, env := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/mentors", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, string(env.Data))
	})

	t.Run("profiles", func(t *testing.T) {
		mockSvc.EXPECT().ListProfiles(gomock.Any()).Return([]*dbmysql.Profile{{ID: 1, UserID: 4, Bio: "Go mentor"}}, nil)

		rec, env := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/profiles", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var profiles []dbmysql.Profile
		require.NoError(t, json.Unmarshal(env.Data, &profiles))
		require.Len(t, profiles, 1)
		require.Equal(t, "Go mentor", profiles[0].Bio)
	})

	t.Run("profile not found", func(t *testing.T) {
		mockSvc.EXPECT().GetProfile(gomock.Any(), uint64(9)).Return(nil, fmt.Errorf("%w: profile", common.ErrNotFound))

		rec, _ := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/profiles/9", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("profile bad id", func(t *testing.T) {
		rec, _ := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/profiles/abc", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		mockSvc.EXPECT().ListMentors(gomock.Any()).Return(nil, errors.New("db connection lost"))

		rec, env := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/mentors", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal server error", env.Message)
	})
}
