// Package httpapi exposes the feedback services over HTTP/JSON using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/logging"
	"github.com/dmitrijs2005/feedbackhub/internal/server/authz"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, email, name, password string, role models.Role, managerID *string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListTeam(ctx context.Context, caller authz.Caller) ([]*models.User, error)
}

type FeedbackService interface {
	Create(ctx context.Context, caller authz.Caller, employeeID, strengths, improvements string, sentiment models.Sentiment) (string, error)
	List(ctx context.Context, caller authz.Caller) ([]*models.Feedback, error)
	Get(ctx context.Context, caller authz.Caller, id string) (*models.Feedback, error)
	Update(ctx context.Context, caller authz.Caller, id string, patch models.FeedbackPatch) error
	Acknowledge(ctx context.Context, caller authz.Caller, id string) error
}

type DashboardService interface {
	Get(ctx context.Context, caller authz.Caller) (*services.Dashboard, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	feedback  FeedbackService
	dashboard DashboardService
	origins   []string
}

func NewHTTPServer(a string, l logging.Logger, us UserService, fs FeedbackService, ds DashboardService, corsOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		feedback:  fs,
		dashboard: ds,
		origins:   corsOrigins,
	}
}

// Handler builds the gin engine with all routes registered.
func (s *HTTPServer) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors.New(s.corsConfig()))

	r.GET("/ping", s.ping)
	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.GET("/users/:id", s.getUser)

	authed := r.Group("")
	authed.Use(s.authRequired())
	{
		authed.GET("/auth/me", s.me)
		authed.GET("/team", s.team)

		authed.POST("/feedback", s.createFeedback)
		authed.GET("/feedback", s.listFeedback)
		authed.POST("/feedback/ack", s.acknowledgeFeedback)
		authed.GET("/feedback/:id", s.getFeedback)
		authed.PATCH("/feedback/:id", s.updateFeedback)

		authed.GET("/dashboard", s.getDashboard)
	}

	return r
}

// corsConfig allows every method and the headers the API reads. A "*"
// origin echoes the request origin so credentials keep working.
func (s *HTTPServer) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(s.origins) == 0 || slices.Contains(s.origins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = s.origins
	}
	return cfg
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
