// Package handler defines the contract web handler packages implement.
package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, identity *auth.Service) error
}

// Validate is the shared request validator used by handler packages.
var Validate = validator.New() //nolint:gochecknoglobals
