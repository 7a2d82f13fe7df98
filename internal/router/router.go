package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "supanos/docs" // register swagger spec
	"supanos/internal/auth"
	"supanos/internal/config"
	apperrors "supanos/internal/errors"
	"supanos/internal/handler"
	"supanos/internal/logging"
	"supanos/internal/model"
	"supanos/internal/service"
)

const jsonBodyLimit = "1M"

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Menu        *handler.MenuHandler
	Event       *handler.EventHandler
	Reservation *handler.ReservationHandler
	Setting     *handler.SettingHandler
	Upload      *handler.UploadHandler
	Score       *handler.ScoreHandler
	Audit       *handler.AuditHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, sessions []echo.MiddlewareFunc) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(cors(cfg))

	uploadLimit := strconv.FormatInt(cfg.UploadMaxBytes+1<<20, 10)
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: jsonBodyLimit,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/upload"
		},
	}))

	e.Static(service.UploadURLPrefix, cfg.UploadDir)

	if !cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api", sessions...)
	admin := auth.RequireRole(model.RoleAdmin)

	api.GET("/health", handler.Health)

	// Auth
	api.POST("/init-admin", h.Auth.InitAdmin)
	api.POST("/auth/login", h.Auth.Login, loginLimiter(cfg.LoginRatePerMinute))
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me, auth.RequireAuth())

	// Users (admin)
	api.POST("/users", h.User.CreateUser, admin)
	api.GET("/users", h.User.ListUsers, admin)
	api.GET("/users/:id", h.User.GetUser, admin)
	api.PATCH("/users/:id", h.User.UpdateUser, admin)
	api.DELETE("/users/:id", h.User.DeleteUser, admin)
	api.GET("/audit-logs", h.Audit.ListAuditLogs, admin)

	// Uploads
	api.POST("/upload", h.Upload.UploadImage, middleware.BodyLimit(uploadLimit))

	// Menu
	api.GET("/menu/categories", h.Menu.ListCategories)
	api.POST("/menu/categories", h.Menu.CreateCategory)
	api.PATCH("/menu/categories/:id", h.Menu.UpdateCategory)
	api.DELETE("/menu/categories/:id", h.Menu.DeleteCategory)
	api.GET("/menu/items", h.Menu.ListItems)
	api.GET("/menu/items/:id", h.Menu.GetItem)
	api.POST("/menu/items", h.Menu.CreateItem)
	api.PATCH("/menu/items/:id", h.Menu.UpdateItem)
	api.DELETE("/menu/items/:id", h.Menu.DeleteItem)

	// Events
	api.GET("/events", h.Event.ListEvents)
	api.GET("/events/:id", h.Event.GetEvent)
	api.POST("/events", h.Event.CreateEvent)
	api.PATCH("/events/:id", h.Event.UpdateEvent)
	api.DELETE("/events/:id", h.Event.DeleteEvent)

	// Reservations
	api.GET("/reservations", h.Reservation.ListReservations)
	api.GET("/reservations/:id", h.Reservation.GetReservation)
	api.POST("/reservations", h.Reservation.CreateReservation)
	api.PATCH("/reservations/:id", h.Reservation.UpdateReservation)
	api.DELETE("/reservations/:id", h.Reservation.DeleteReservation)

	// Scores and settings
	api.GET("/scores", h.Score.GetScores)
	api.GET("/settings", h.Setting.ListSettings)
	api.GET("/settings/:key", h.Setting.GetSetting)
	api.POST("/settings", h.Setting.UpsertSetting)
}

// cors allows credentialed requests from the configured origins. A wildcard
// disables credentials, as browsers reject that combination.
func cors(cfg *config.Config) echo.MiddlewareFunc {
	origins := cfg.AllowedOrigins()
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: !wildcard,
	})
}

// loginLimiter throttles login attempts per client IP. A non-positive rate
// disables the limit.
func loginLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperrors.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
		},
	})
}
