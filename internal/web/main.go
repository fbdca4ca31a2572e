// Package web wires the fiber application: middleware, handlers and
// the lifecycle of the http server.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	loggeradapter "github.com/conftrack/conftrack/internal/logger/adapter/fiber"
	"github.com/conftrack/conftrack/internal/web/handler/conferences"
	"github.com/conftrack/conftrack/internal/web/handler/health"
	"github.com/conftrack/conftrack/internal/web/handler/login"
	"github.com/conftrack/conftrack/internal/web/handler/tags"
	"github.com/conftrack/conftrack/internal/web/handler/users"
)

// CheckAlivePath answers load balancer liveness probes.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	identity     *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, identity *auth.Service) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if identity == nil {
		panic("identity service cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access logging
	app.Use(loggeradapter.New(loggeradapter.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		cfg:      cfg,
		App:      app,
		db:       db,
		identity: identity,
	}

	// liveness probe, stays unauthenticated
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	// init handlers (they register their own routes and guards)
	mustInit("login", login.Handler.Init(app, cfg, db, identity))
	mustInit("users", users.Handler.Init(app, cfg, db, identity))
	mustInit("tags", tags.Handler.Init(app, cfg, db, identity))
	mustInit("conferences", conferences.Handler.Init(app, cfg, db, identity))
	mustInit("health", health.Handler.Init(app, cfg, db, identity))

	return service
}

func mustInit(name string, err error) {
	if err != nil {
		log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
	}
}
