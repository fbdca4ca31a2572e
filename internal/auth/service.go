package auth

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/db/models"
)

// Service is the identity façade the route layer talks to. It wraps the
// provider router and the token codec to turn a username/password pair into
// a signed bearer token and a token back into a user record.
type Service struct {
	provider Provider
	codec    *TokenCodec
	db       *gorm.DB
}

// NewService creates a new identity service.
func NewService(provider Provider, codec *TokenCodec, db *gorm.DB) *Service {
	return &Service{
		provider: provider,
		codec:    codec,
		db:       db,
	}
}

// Login authenticates the credentials and issues a bearer token scoped to
// the resolved user's id. Every failure cause collapses into
// ErrInvalidCredentials; the underlying reason is only logged.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.provider.Authenticate(username, password)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("authentication error")
		return "", ErrInvalidCredentials
	}

	if user == nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(strconv.FormatUint(user.ID, 10))
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")
		return "", ErrInvalidCredentials
	}

	return token, nil
}

// Resolve verifies a bearer token and loads the user it identifies.
// Token failures surface as ErrInvalidToken-class errors; a subject whose
// user row no longer exists yields ErrUserNotFound, and a deactivated
// account yields ErrUserDisabled so outstanding tokens stop working.
func (s *Service) Resolve(tokenString string) (*models.User, error) {
	subject, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, storageErr("failed to load user", err)
	}

	if !user.Active {
		return nil, ErrUserDisabled
	}

	return &user, nil
}

// Signup registers a new account through the provider router.
func (s *Service) Signup(username, password string) (*models.User, error) {
	return s.provider.CreateUser(UserCreate{
		Username: username,
		Password: password,
	})
}

// LookupByUsername resolves a username through the provider router.
func (s *Service) LookupByUsername(username string) (*models.User, error) {
	return s.provider.Lookup(username)
}
