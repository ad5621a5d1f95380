package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpHandler "qa-forum/internal/handler/http"
	"qa-forum/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth     *httpHandler.AuthHandler
	Question *httpHandler.QuestionHandler
	Answer   *httpHandler.AnswerHandler
}

// RouterOptions carries the router settings that do not come from handlers.
type RouterOptions struct {
	JWTSecret      string
	AllowedOrigins []string
	// FrontendDir holds index.html and an assets/ directory. Empty disables
	// the static frontend.
	FrontendDir string
	// RateLimiter is applied to /api when set.
	RateLimiter gin.HandlerFunc
	Log         *logrus.Logger
}

// NewRouter builds the Gin engine with middleware, API routes, the static
// frontend and the JSON 404 fallback.
func NewRouter(h Handlers, opts RouterOptions) (*gin.Engine, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := httpHandler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := router.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter)
	}
	requireAuth := middleware.Auth(opts.JWTSecret)

	userRoutes := api.Group("/user")
	{
		userRoutes.POST("/create", h.Auth.Register)
		userRoutes.POST("/login", h.Auth.Login)
		userRoutes.GET("/me", requireAuth, h.Auth.Me)
	}

	questionRoutes := api.Group("/question")
	{
		questionRoutes.GET("/list", h.Question.List)
		questionRoutes.GET("/detail/:id", h.Question.Detail)
		questionRoutes.POST("/create", requireAuth, h.Question.Create)
		questionRoutes.PUT("/update", requireAuth, h.Question.Update)
		questionRoutes.DELETE("/delete", requireAuth, h.Question.Delete)
		questionRoutes.POST("/vote", requireAuth, h.Question.Vote)
	}

	answerRoutes := api.Group("/answer")
	{
		answerRoutes.GET("/list", h.Answer.List)
		answerRoutes.GET("/detail/:id", h.Answer.Detail)
		answerRoutes.POST("/create", requireAuth, h.Answer.Create)
		answerRoutes.PUT("/update", requireAuth, h.Answer.Update)
		answerRoutes.DELETE("/delete", requireAuth, h.Answer.Delete)
		answerRoutes.POST("/vote", requireAuth, h.Answer.Vote)
	}

	mountFrontend(router, opts.FrontendDir, log)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "path": c.Request.URL.Path})
	})
	return router, nil
}

func mountFrontend(router *gin.Engine, dir string, log *logrus.Logger) {
	index := filepath.Join(dir, "index.html")
	if dir == "" {
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Q&A forum API is running"})
		})
		return
	}
	if _, err := os.Stat(index); err != nil {
		log.WithError(err).WithField("dir", dir).Warn("Frontend index not found, serving API only")
	}
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})
}
