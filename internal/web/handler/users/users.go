// Package users implements account signup and administration endpoints.
package users

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/models"
	"github.com/conftrack/conftrack/internal/web/handler"
	middlewareauth "github.com/conftrack/conftrack/internal/web/middleware/auth"
)

const (
	// Path is the base path of the users endpoints.
	Path = handler.APIPrefix + "/users"
)

// Service is the users handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	identity *auth.Service
}

// Handler is the users handler.
var Handler = Service{}

// SignupRequest is the account registration request body.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required"`
}

// Init initializes the users handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, identity *auth.Service) error {
	if app == nil || cfg == nil || db == nil || identity == nil {
		return ErrNilAppConfigIdentity
	}

	s.cfg = cfg
	s.db = db
	s.identity = identity

	protect := middlewareauth.New(identity)

	app.Route(Path, func(router fiber.Router) {
		router.Post("/signup", s.Signup)
		router.Get("/me", protect, s.Me)
		router.Get(handler.RootPath, protect, middlewareauth.RequireSuperuser, s.List)
		router.Get("/:id", protect, middlewareauth.RequireSuperuser, s.Get)
		router.Delete("/:id", protect, middlewareauth.RequireSuperuser, s.Delete)
	})

	return nil
}

// Signup handles account registration.
func (s *Service) Signup(c *fiber.Ctx) error {
	req := new(SignupRequest)

	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "username and password are required")
	}

	user, err := s.identity.Signup(req.Username, req.Password)
	if err != nil {
		return handler.FailForAuthErr(c, err)
	}

	log.Info().Str("username", user.Username).Msg("account created")

	return c.Status(fiber.StatusCreated).JSON(handler.NewUserPublic(user))
}

// Me returns the authenticated account.
func (s *Service) Me(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)
	if user == nil {
		return handler.Fail(c, fiber.StatusUnauthorized, "missing bearer token")
	}

	return c.JSON(handler.NewUserPublic(user))
}

// List returns all accounts.
func (s *Service) List(c *fiber.Ctx) error {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	out := make([]handler.UserPublic, len(users))
	for i := range users {
		out[i] = handler.NewUserPublic(&users[i])
	}

	return c.JSON(out)
}

// Get returns a single account by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to load user")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.JSON(handler.NewUserPublic(&user))
}

// Delete removes an account, its credential and its tags. Accounts may
// not delete themselves.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	actor := middlewareauth.CurrentUser(c)
	if actor != nil && actor.ID == id {
		return handler.Fail(c, fiber.StatusBadRequest, "accounts can not delete themselves")
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to load user")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	creds := auth.NewCredentialStore(s.db)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := creds.DeleteForUser(tx, id); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete user")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	log.Info().Str("username", user.Username).Msg("account deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
