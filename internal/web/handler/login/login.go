// Package login implements the token issuing endpoint.
package login

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/web/handler"
)

const (
	// Path is the path to the login endpoint.
	Path = handler.APIPrefix + "/login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	identity *auth.Service
}

// Handler is the login handler.
var Handler = Service{}

// Request is the login request body.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response is the issued token envelope.
type Response struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB, identity *auth.Service) error {
	if app == nil || cfg == nil || identity == nil {
		return ErrNilAppConfigIdentity
	}

	s.cfg = cfg
	s.identity = identity

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Post handles credential submission and issues a bearer token.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "username and password are required")
	}

	token, err := s.identity.Login(req.Username, req.Password)
	if err != nil {
		log.Debug().Str("username", req.Username).Msg("login rejected")
		return handler.FailForAuthErr(c, err)
	}

	return c.JSON(Response{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
