// Package daemon assembles the application: database, identity service
// and web service.
package daemon

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/dsn"
	"github.com/conftrack/conftrack/internal/db/models"
	"github.com/conftrack/conftrack/internal/uniuri"
	"github.com/conftrack/conftrack/internal/web"
)

const devTokenSecretLen = 48

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db := openDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Credential{},
		&models.Tag{},
		&models.Conference{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	identity := buildIdentityService(cfg, db)

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, identity),
	}
}

// openDatabase connects gorm with the engine named in the configuration.
func openDatabase(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case dsn.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case dsn.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal().Err(err).Str("engine", cfg.DB.GormEngine).Msg("failed to connect database")
	}

	return db
}

// buildIdentityService wires hasher, token codec, providers and router.
func buildIdentityService(cfg *config.Config, db *gorm.DB) *auth.Service {
	secret := cfg.Auth.TokenSecret
	if secret == "" {
		if !cfg.DevMode {
			log.Fatal().Msg("auth.tokensecret must be set outside dev mode")
		}

		secret = uniuri.NewLen(devTokenSecretLen)

		log.Warn().Msg("generated ephemeral token secret: issued tokens will not survive a restart")
	}

	codec := auth.NewTokenCodec(secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	database := auth.NewDatabaseProvider(db, auth.NewHasher(nil))

	var directory auth.Provider
	if cfg.Auth.Mode == config.AuthModeDirectory {
		directory = auth.NewDirectoryProvider(db, auth.NewDirectoryClient(cfg.Auth.Directory))
	}

	router := auth.NewRouter(database, directory, reservedUsernames(cfg))

	return auth.NewService(router, codec, db)
}

// reservedUsernames returns the configured reserved set, always including
// the seeded first user so that account stays locally authenticatable in
// directory mode.
func reservedUsernames(cfg *config.Config) []string {
	reserved := cfg.Auth.ReservedUsernames

	first := cfg.Auth.FirstUser.Username
	if first == "" {
		return reserved
	}

	for _, username := range reserved {
		if username == first {
			return reserved
		}
	}

	return append(reserved, first)
}
