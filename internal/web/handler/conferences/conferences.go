// Package conferences implements the conference tracking endpoints.
// Conferences are shared between accounts; tag attachments go through
// the owner-scoped tag controller so labels stay private.
package conferences

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/controller/conference"
	"github.com/conftrack/conftrack/internal/db/controller/tag"
	"github.com/conftrack/conftrack/internal/db/models"
	"github.com/conftrack/conftrack/internal/web/handler"
	middlewareauth "github.com/conftrack/conftrack/internal/web/middleware/auth"
)

const (
	// Path is the base path of the conferences endpoints.
	Path = handler.APIPrefix + "/conferences"
)

// Service is the conferences handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the conferences handler.
var Handler = Service{}

// Request is the conference create/update request body.
type Request struct {
	Name             string     `json:"name" validate:"omitempty,min=1,max=255"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Location         string     `json:"location" validate:"omitempty,max=255"`
	WebsiteURL       string     `json:"website_url" validate:"omitempty,url,max=255"`
	AbstractDeadline *time.Time `json:"abstract_deadline"`
	PaperDeadline    *time.Time `json:"paper_deadline"`
}

// TagRequest is the tag attach/detach request body.
type TagRequest struct {
	TagID uint64 `json:"tag_id" validate:"required"`
}

// Init initializes the conferences handler.
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
		router.Put("/:id", s.Update)
		router.Delete("/:id", s.Delete)
		router.Post("/:id/tags", s.AttachTag)
		router.Delete("/:id/tags/:tagid", s.DetachTag)
	})

	return nil
}

// List returns all tracked conferences.
func (s *Service) List(c *fiber.Ctx) error {
	confs, err := conference.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list conferences")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	out := make([]handler.ConferencePublic, len(confs))
	for i := range confs {
		out[i] = handler.NewConferencePublic(&confs[i])
	}

	return c.JSON(out)
}

// Get returns a single conference.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference id")
	}

	conf, err := conference.Get(s.db, id)
	if err != nil {
		return failForConferenceErr(c, err)
	}

	return c.JSON(handler.NewConferencePublic(conf))
}

// Create adds a conference.
func (s *Service) Create(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference fields")
	}

	conf := req.model()
	conf.CreatedByUserID = user.ID

	created, err := conference.Create(s.db, conf)
	if err != nil {
		return failForConferenceErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(handler.NewConferencePublic(created))
}

// Update changes an existing conference.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference fields")
	}

	updated, err := conference.Update(s.db, id, req.model())
	if err != nil {
		return failForConferenceErr(c, err)
	}

	return c.JSON(handler.NewConferencePublic(updated))
}

// Delete removes a conference and its tag attachments.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference id")
	}

	if err := conference.Delete(s.db, id); err != nil {
		return failForConferenceErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AttachTag links one of the authenticated user's tags to a conference.
func (s *Service) AttachTag(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference id")
	}

	req := new(TagRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "malformed request body")
	}

	if err := handler.Validate.Struct(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "tag_id is required")
	}

	// only the user's own tags may be attached
	owned, err := tag.Get(s.db, user.ID, req.TagID)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "tag not found")
		}

		log.Error().Err(err).Msg("failed to load tag")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	if err := conference.AttachTag(s.db, id, owned); err != nil {
		return failForConferenceErr(c, err)
	}

	conf, err := conference.Get(s.db, id)
	if err != nil {
		return failForConferenceErr(c, err)
	}

	return c.JSON(handler.NewConferencePublic(conf))
}

// DetachTag unlinks one of the authenticated user's tags from a conference.
func (s *Service) DetachTag(c *fiber.Ctx) error {
	user := middlewareauth.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid conference id")
	}

	tagID, err := parseID(c, "tagid")
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "invalid tag id")
	}

	owned, err := tag.Get(s.db, user.ID, tagID)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "tag not found")
		}

		log.Error().Err(err).Msg("failed to load tag")

		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}

	if err := conference.DetachTag(s.db, id, owned); err != nil {
		return failForConferenceErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (r *Request) model() *models.Conference {
	return &models.Conference{
		Name:             r.Name,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Location:         r.Location,
		WebsiteURL:       r.WebsiteURL,
		AbstractDeadline: r.AbstractDeadline,
		PaperDeadline:    r.PaperDeadline,
	}
}

func failForConferenceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, conference.ErrConferenceNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "conference not found")
	case errors.Is(err, conference.ErrConferenceNameEmpty):
		return handler.Fail(c, fiber.StatusBadRequest, "conference name cannot be empty")
	default:
		log.Error().Err(err).Msg("conference operation failed")
		return handler.Fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func parseID(c *fiber.Ctx, param string) (uint64, error) {
	return strconv.ParseUint(c.Params(param), 10, 64)
}
