package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/auth"
	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/models"
)

// seed creates the first superuser account if the user table is empty.
// It goes through the database provider so the account gets a password
// hash and the starter tags like any other signup.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to count users")
	}

	if count > 0 {
		return
	}

	if cfg.Auth.FirstUser.Username == "" || cfg.Auth.FirstUser.Password == "" {
		log.Warn().Msg("user table is empty and auth.firstuser is not configured, skipping seed")
		return
	}

	provider := auth.NewDatabaseProvider(db, auth.NewHasher(nil))

	user, err := provider.CreateUser(auth.UserCreate{
		Username:  cfg.Auth.FirstUser.Username,
		Password:  cfg.Auth.FirstUser.Password,
		Superuser: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed first user")
	}

	log.Info().Str("username", user.Username).Msg("seeded first superuser account")
}
