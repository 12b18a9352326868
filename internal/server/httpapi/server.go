// Package httpapi exposes the application over HTTP. It owns routing, the
// cookie-based session middleware, and the mapping from service errors to
// status codes; all business rules stay in the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tanvirrahman/matrimony/internal/logging"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Service dependencies, narrowed to what the handlers actually call.

type AccountService interface {
	Register(ctx context.Context, email, password string) (bool, error)
	Login(ctx context.Context, email, password string) (string, error)
	RequestPremium(ctx context.Context, actorEmail string, bioID int64) error
	ApprovePremium(ctx context.Context, adminEmail, targetEmail string) error
	PromoteToAdmin(ctx context.Context, adminEmail, targetEmail string) error
	ListRequested(ctx context.Context, adminEmail string) ([]*models.Account, error)
}

type ProfileService interface {
	Submit(ctx context.Context, actorEmail string, p *models.Profile) (bool, int64, error)
	PublicList(ctx context.Context, category string, limit int) ([]*models.ProfileSummary, error)
	ByID(ctx context.Context, viewerEmail string, bioID int64) (*models.Profile, error)
	FullByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error)
}

type UnlockService interface {
	Record(ctx context.Context, requesterEmail string, bioID int64, amountCents int64) (*models.ContactUnlock, error)
	Approve(ctx context.Context, adminEmail, unlockID string) error
	ListMine(ctx context.Context, requesterEmail string) ([]*models.ContactUnlockDetail, error)
	ListPending(ctx context.Context, adminEmail string) ([]*models.ContactUnlock, error)
	CreatePaymentIntent(ctx context.Context, amountMajor float64) (string, error)
}

type ReportService interface {
	Stats(ctx context.Context, adminEmail string) (*models.Stats, error)
}

type FavoriteService interface {
	Add(ctx context.Context, ownerEmail string, bioID int64) (*models.Favorite, error)
	List(ctx context.Context, ownerEmail string) ([]*models.FavoriteDetail, error)
	Remove(ctx context.Context, ownerEmail, id string) error
}

type StoryService interface {
	Create(ctx context.Context, story *models.SuccessStory) (*models.SuccessStory, error)
	List(ctx context.Context) ([]*models.SuccessStory, error)
	Get(ctx context.Context, id string) (*models.SuccessStory, error)
}

type PhotoService interface {
	UploadURL(ctx context.Context) (string, string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	config    *config.Config
	logger    logging.Logger
	accounts  AccountService
	profiles  ProfileService
	unlocks   UnlockService
	reports   ReportService
	favorites FavoriteService
	stories   StoryService
	photos    PhotoService
}

func NewServer(cfg *config.Config, l logging.Logger,
	accounts AccountService, profiles ProfileService, unlocks UnlockService,
	reports ReportService, favorites FavoriteService, stories StoryService,
	photos PhotoService) *Server {
	return &Server{
		config:    cfg,
		logger:    l.With("module", "http_server"),
		accounts:  accounts,
		profiles:  profiles,
		unlocks:   unlocks,
		reports:   reports,
		favorites: favorites,
		stories:   stories,
		photos:    photos,
	}
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{s.config.AllowedOrigin},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(s.requestLogger)

	s.routes(e)
	return e
}

func (s *Server) routes(e *echo.Echo) {
	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/logout", s.handleLogout)

	e.GET("/biodatas", s.handleListProfiles)
	e.GET("/biodatas/self", s.handleOwnProfile, s.requireAuth)
	e.GET("/biodatas/:id", s.handleProfileByID, s.optionalAuth)
	e.POST("/biodatas", s.handleSubmitProfile, s.requireAuth)

	e.POST("/premium/request", s.handleRequestPremium, s.requireAuth)
	e.POST("/premium/approve", s.handleApprovePremium, s.requireAuth)
	e.GET("/premium/requests", s.handleListRequested, s.requireAuth)

	e.POST("/admin/promote", s.handlePromote, s.requireAuth)
	e.GET("/admin/stats", s.handleStats, s.requireAuth)

	e.POST("/contact-unlocks", s.handleRecordUnlock, s.requireAuth)
	e.GET("/contact-unlocks/mine", s.handleMyUnlocks, s.requireAuth)
	e.GET("/contact-unlocks/pending", s.handlePendingUnlocks, s.requireAuth)
	e.POST("/contact-unlocks/:id/approve", s.handleApproveUnlock, s.requireAuth)

	e.POST("/payments/intent", s.handlePaymentIntent, s.requireAuth)

	e.POST("/favorites", s.handleAddFavorite, s.requireAuth)
	e.GET("/favorites", s.handleListFavorites, s.requireAuth)
	e.DELETE("/favorites/:id", s.handleRemoveFavorite, s.requireAuth)

	e.POST("/stories", s.handleCreateStory, s.requireAuth)
	e.GET("/stories", s.handleListStories)
	e.GET("/stories/:id", s.handleStoryByID)

	e.GET("/photos/upload-url", s.handlePhotoUploadURL, s.requireAuth)
	e.GET("/photos/download-url", s.handlePhotoDownloadURL, s.requireAuth)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := e.Shutdown(context.Background()); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP)

	if err := e.Start(s.config.EndpointAddrHTTP); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status)
		return err
	}
}
