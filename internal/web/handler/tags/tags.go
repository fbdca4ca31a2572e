// Package tags implements the tag management endpoints. All operations
// are scoped to the authenticated account; one user never sees another
// user's tags.
package tags

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/controller/tag"
	"github.com/conftrack/conftrack/internal/web/handler"
	middlewareauth "github.com/conftrack/conftrack/internal/web/middleware/auth"
)

const (
	// Path is the base path of the tags endpoints.
	Path = handler.APIPrefix + "/tags"
)

// Service is the tags handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the tags handler.
var Handler = Service{}

// Request is the tag create/update request body.
type Request struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=255"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// Init initializes the tags handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, identity *auth.Service) error {
	if app == nil || cfg == nil || db == nil || identity == nil {
		return ErrNilAppConfigIdentity
	}

	s.cfg = cfg
	s.db = db

	protect := middlewareauth.New(identity)

	app.Route(Path, func(router fiber.Router) {
		router.Use(protect)
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:id", s.Get)
		router.Patch("/:id", s.Update)
		router.Delete("/:id", s.Delete)
	})

	return nil
}

// List returns the authenticated user's tags.
func (s *Service) List(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	tags, err := tag.List(s.db, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tags")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(handler.NewTagsPublic(tags))
}

// Get returns one of the authenticated user's tags.
func (s *Service) Get(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag id")
	}

	found, err := tag.Get(s.db, user.ID, id)
	if err != nil {
		return failForTagErr(c, err)
	}

	return c.JSON(handler.NewTagPublic(found))
}

// Create adds a tag for the authenticated user.
func (s *Service) Create(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag fields")
	}

	created, err := tag.Create(s.db, user.ID, req.Name, req.Color)
	if err != nil {
		return failForTagErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(handler.NewTagPublic(created))
}

// Update changes name and/or color of one of the authenticated user's tags.
func (s *Service) Update(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag fields")
	}

	updated, err := tag.Update(s.db, user.ID, id, req.Name, req.Color)
	if err != nil {
		return failForTagErr(c, err)
	}

	return c.JSON(handler.NewTagPublic(updated))
}

// Delete removes one of the authenticated user's tags.
func (s *Service) Delete(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag id")
	}

	if err := tag.Delete(s.db, user.ID, id); err != nil {
		return failForTagErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func failForTagErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tag.ErrTagNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "tag not found")
	case errors.Is(err, tag.ErrTagNameEmpty):
		return handler.Fail(c, fiber.StatusBadRequest, "tag name cannot be empty")
	default:
		log.Error().Err(err).Msg("tag operation failed")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
