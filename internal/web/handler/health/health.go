// Package health implements the health reporting endpoint.
package health

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/web/handler"
)

const (
	// Path is the path to the health endpoint.
	Path = handler.APIPrefix + "/health"
)

// ErrNilAppConfigDB is returned if a required dependency is nil at init.
var ErrNilAppConfigDB = errors.New("app, config or db is nil")

// Service is the health handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the health handler.
var Handler = Service{}

// Init initializes the health handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ *auth.Service) error {
	if app == nil || cfg == nil || db == nil {
		return ErrNilAppConfigDB
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// Get reports service and database health.
func (s *Service) Get(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		log.Error().Err(err).Msg("database health check failed")

		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": "unreachable",
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "ok",
	})
}
