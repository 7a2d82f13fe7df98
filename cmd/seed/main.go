package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"supanos/internal/config"
	"supanos/internal/db"
	apperrors "supanos/internal/errors"
	"supanos/internal/logging"
	"supanos/internal/model"
	"supanos/internal/repository"
	"supanos/internal/service"
)

//go:embed data.json
var defaultData []byte

// seedData is the layout of the seed file.
type seedData struct {
	Categories []seedCategory        `json:"categories"`
	Events     []seedEvent           `json:"events"`
	Settings   map[string]model.JSON `json:"settings"`
}

type seedCategory struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Order       int        `json:"order"`
	Items       []seedItem `json:"items"`
}

type seedItem struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Tags        []string        `json:"tags"`
	SpicyLevel  *int            `json:"spicyLevel"`
}

type seedEvent struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	SportType   model.SportType `json:"sportType"`
	DaysFromNow int             `json:"daysFromNow"`
	Hour        int             `json:"hour"`
	IsFeatured  bool            `json:"isFeatured"`
}

type seedStats struct {
	Categories, Items, Events, Settings, Skipped int
}

func main() {
	file := flag.String("file", "", "seed data JSON (defaults to the built-in sample)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	raw := defaultData
	if *file != "" {
		if raw, err = os.ReadFile(*file); err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
		}
	}
	var data seedData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatal().Err(err).Msg("failed to parse seed data")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close(gormDB)
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	ctx := context.Background()
	if err := ensureAdmin(ctx, gormDB, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	stats, err := seed(ctx, gormDB, data, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Int("categories", stats.Categories).
		Int("items", stats.Items).
		Int("events", stats.Events).
		Int("settings", stats.Settings).
		Int("skipped", stats.Skipped).
		Msg("seed completed")
}

// ensureAdmin creates the bootstrap admin unless one already exists.
func ensureAdmin(ctx context.Context, gormDB *gorm.DB, cfg *config.Config) error {
	users := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(users, nil, nil, cfg.SessionTTL)
	admin, err := authService.BootstrapAdmin(ctx)
	if errors.Is(err, apperrors.ErrAdminExists) {
		log.Info().Msg("admin already exists")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("username", admin.Username).Msg("admin created")
	return nil
}

// seed inserts categories, items and events that do not exist yet (matched
// by name or title) and upserts every setting.
func seed(ctx context.Context, gormDB *gorm.DB, data seedData, now time.Time) (seedStats, error) {
	var stats seedStats
	audit := service.NewAuditService(repository.NewAuditLogRepository(gormDB))
	menu := service.NewMenuService(
		repository.NewMenuCategoryRepository(gormDB),
		repository.NewMenuItemRepository(gormDB),
		nil,
		audit,
	)
	events := service.NewEventService(repository.NewEventRepository(gormDB), audit)
	settings := service.NewSettingService(repository.NewSettingRepository(gormDB), nil, audit)

	existingCategories, err := menu.ListCategories(ctx)
	if err != nil {
		return stats, err
	}
	categoryIDs := make(map[string]model.MenuCategory, len(existingCategories))
	for _, c := range existingCategories {
		categoryIDs[strings.ToLower(c.Name)] = c
	}

	for _, sc := range data.Categories {
		category, ok := categoryIDs[strings.ToLower(sc.Name)]
		if ok {
			stats.Skipped++
		} else {
			created, err := menu.CreateCategory(ctx, service.CategoryRequest{Name: sc.Name, Description: sc.Description, Order: sc.Order})
			if err != nil {
				return stats, fmt.Errorf("category %q: %w", sc.Name, err)
			}
			category = *created
			stats.Categories++
		}

		existingItems, err := menu.ListItems(ctx, repository.MenuItemFilter{CategoryID: &category.ID})
		if err != nil {
			return stats, err
		}
		names := make(map[string]bool, len(existingItems))
		for _, it := range existingItems {
			names[strings.ToLower(it.Name)] = true
		}
		for _, si := range sc.Items {
			if names[strings.ToLower(si.Name)] {
				stats.Skipped++
				continue
			}
			_, err := menu.CreateItem(ctx, service.MenuItemRequest{
				CategoryID:  category.ID,
				Name:        si.Name,
				Description: si.Description,
				Price:       si.Price,
				Tags:        si.Tags,
				SpicyLevel:  si.SpicyLevel,
			})
			if err != nil {
				return stats, fmt.Errorf("item %q: %w", si.Name, err)
			}
			stats.Items++
		}
	}

	existingEvents, err := events.ListEvents(ctx, nil)
	if err != nil {
		return stats, err
	}
	titles := make(map[string]bool, len(existingEvents))
	for _, ev := range existingEvents {
		titles[strings.ToLower(ev.Title)] = true
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, se := range data.Events {
		if titles[strings.ToLower(se.Title)] {
			stats.Skipped++
			continue
		}
		_, err := events.CreateEvent(ctx, service.EventRequest{
			Title:       se.Title,
			Description: se.Description,
			DateTime:    day.AddDate(0, 0, se.DaysFromNow).Add(time.Duration(se.Hour) * time.Hour),
			SportType:   se.SportType,
			IsFeatured:  se.IsFeatured,
		})
		if err != nil {
			return stats, fmt.Errorf("event %q: %w", se.Title, err)
		}
		stats.Events++
	}

	for key, value := range data.Settings {
		if _, err := settings.UpsertSetting(ctx, service.SettingRequest{Key: key, Value: value}); err != nil {
			return stats, fmt.Errorf("setting %q: %w", key, err)
		}
		stats.Settings++
	}
	return stats, nil
}
