package di

import (
	"net/http"

	chathandler "gomentor/internal/chat/handler"
	"gomentor/internal/common"
	"gomentor/internal/content"
	"gomentor/internal/user"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// NewRouter mounts every handler under /api/v1.
func NewRouter(
	db *gorm.DB,
	tokens *common.TokenManager,
	userHandler *user.Handler,
	chatHandler *chathandler.ChatHandler,
	contentHandlers *content.ContentHandlers,
) http.Handler {
	router := mux.NewRouter()
	router.Use(common.CORSMiddleware)
	router.Use(common.LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthCheckHandler(db)).Methods(http.MethodGet)

	auth := common.AuthMiddleware(tokens)
	userHandler.RegisterRoutes(api, auth)
	contentHandlers.RegisterRoutes(api, auth)
	chatHandler.RegisterRoutes(api, auth)

	return router
}

// healthCheckHandler reports whether the database answers a ping.
func healthCheckHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			common.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "service": "gomentor"})
			return
		}
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "gomentor"})
	}
}
