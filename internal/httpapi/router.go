package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"codementor-backend/internal/common"
	"codementor-backend/internal/config"
	"codementor-backend/internal/httpapi/handlers"
	"codementor-backend/internal/httpapi/middleware"
	"codementor-backend/internal/store/rabbitmq"
	"codementor-backend/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, pub *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, pub)

	r.GET("/", h.Home)
	r.GET("/ping", h.Ping)

	// a nil *Store must stay a nil Limiter, not a non-nil interface
	var limiter middleware.Limiter
	if rds != nil {
		limiter = rds
	}

	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter, cfg.RateLimitPerMinute, time.Minute))
	api.POST("/signup", h.Signup)
	api.POST("/code-review", h.CodeReview)
	api.POST("/fetch-user-chats", h.FetchUserChats)

	return r
}
