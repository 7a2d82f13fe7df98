package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"supanos/docs"
	"supanos/internal/auth"
	"supanos/internal/cache"
	"supanos/internal/config"
	"supanos/internal/db"
	"supanos/internal/handler"
	"supanos/internal/logging"
	"supanos/internal/repository"
	"supanos/internal/router"
	"supanos/internal/service"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 10 * time.Minute
)

// @title Supano's Sports Bar API
// @version 1.0
// @description Menu, events, reservations, settings and user management for the Supano's website.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sid
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	defer db.Close(gormDB)

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("failed to reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	cacheClient, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure redis")
	}
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, caching degraded")
		}
	}

	store, err := sessionStore(cfg, gormDB, cacheClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure session store")
	}
	signer := auth.NewCookieSigner(cfg.SessionSecret, cfg.CookieSecure)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewMenuCategoryRepository(gormDB)
	itemRepo := repository.NewMenuItemRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)
	uploadRepo := repository.NewUploadRepository(gormDB)
	auditRepo := repository.NewAuditLogRepository(gormDB)

	// Services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, store, signer, cfg.SessionTTL)
	userService := service.NewUserService(userRepo, auditService)
	menuService := service.NewMenuService(categoryRepo, itemRepo, cacheClient, auditService)
	eventService := service.NewEventService(eventRepo, auditService)
	reservationService := service.NewReservationService(reservationRepo, auditService)
	settingService := service.NewSettingService(settingRepo, cacheClient, auditService)
	uploadService := service.NewUploadService(uploadRepo, cfg.UploadDir, cfg.UploadMaxBytes)

	e := echo.New()
	router.Register(e, cfg, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, signer),
		User:        handler.NewUserHandler(userService),
		Menu:        handler.NewMenuHandler(menuService),
		Event:       handler.NewEventHandler(eventService),
		Reservation: handler.NewReservationHandler(reservationService),
		Setting:     handler.NewSettingHandler(settingService),
		Upload:      handler.NewUploadHandler(uploadService),
		Score:       handler.NewScoreHandler(service.NewScoreService()),
		Audit:       handler.NewAuditHandler(auditService),
	}, auth.Sessions(signer, store, userRepo))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	if !cfg.IsProduction() {
		log.Info().Msgf("swagger UI at http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sweeperDone := auth.StartSweeper(ctx, store, sweepInterval)

	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("db", cfg.DBDriver).Msg("server listening")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	cancel()
	<-sweeperDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

func sessionStore(cfg *config.Config, gormDB *gorm.DB, c *cache.Client) (auth.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		return auth.NewRedisStore(c)
	case "", "db":
		return auth.NewDBStore(repository.NewSessionRepository(gormDB)), nil
	default:
		return nil, errors.New("SESSION_STORE must be db or redis")
	}
}
