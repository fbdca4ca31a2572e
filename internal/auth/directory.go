package auth

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/conftrack/conftrack/internal/config"
	"github.com/conftrack/conftrack/internal/db/models"
)

// Binder authenticates a username/password pair against an external
// directory. Implemented by DirectoryClient; tests substitute fakes.
type Binder interface {
	Bind(username, password string) bool
}

// DirectoryClient attempts simple binds against an external LDAP directory.
// The bind DN is built by substituting the username into the configured
// template.
type DirectoryClient struct {
	cfg config.Directory
}

// NewDirectoryClient creates a directory client for the configured server.
func NewDirectoryClient(cfg config.Directory) *DirectoryClient {
	return &DirectoryClient{cfg: cfg}
}

// Bind authenticates by binding with the user's DN and password.
// Every failure mode returns false: a rejected bind, an unreachable server
// and a timeout are indistinguishable to the caller so infrastructure state
// is not leaked through authentication results. A failed attempt mutates no
// local state.
func (c *DirectoryClient) Bind(username, password string) bool {
	// An empty password would be an unauthenticated (anonymous) LDAP bind,
	// which many servers report as success.
	if password == "" {
		return false
	}

	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	userDN := strings.ReplaceAll(c.cfg.DNTemplate, "{username}", ldap.EscapeDN(username))

	conn, err := ldap.DialURL(
		c.cfg.ServerURL,
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
	)
	if err != nil {
		log.Warn().Err(err).Str("server", c.cfg.ServerURL).Msg("directory unreachable")
		return false
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close directory connection")
		}
	}()

	conn.SetTimeout(timeout)

	if err := conn.Bind(userDN, password); err != nil {
		log.Debug().Str("dn", userDN).Msg("directory bind rejected")
		return false
	}

	return true
}

// DirectoryProvider authenticates users against the external directory and
// provisions local User records just in time on first successful bind.
type DirectoryProvider struct {
	db     *gorm.DB
	client Binder
}

// NewDirectoryProvider creates a directory-backed authentication provider.
func NewDirectoryProvider(db *gorm.DB, client Binder) *DirectoryProvider {
	return &DirectoryProvider{
		db:     db,
		client: client,
	}
}

// Authenticate delegates the credential check to the directory. On the
// first successful bind for an unseen username a minimal local User row and
// the starter tags are created atomically.
func (p *DirectoryProvider) Authenticate(username, password string) (*models.User, error) {
	if !p.client.Bind(username, password) {
		return nil, nil
	}

	user, err := p.Lookup(username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = p.provision(username)
		if err != nil {
			return nil, err
		}
	}

	if !user.Active {
		return nil, ErrUserDisabled
	}

	return user, nil
}

// Lookup retrieves a user by username.
func (p *DirectoryProvider) Lookup(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, storageErr("failed to query user", err)
	}

	return &user, nil
}

// CreateUser always fails: directory identities are never created locally.
func (p *DirectoryProvider) CreateUser(_ UserCreate) (*models.User, error) {
	return nil, ErrCreationNotSupported
}

// provision creates the local user record and starter tags for a username
// the directory just authenticated. A concurrent first login for the same
// username loses the insert race on the unique constraint and falls back to
// the row the winner created.
func (p *DirectoryProvider) provision(username string) (*models.User, error) {
	user := models.User{
		Active:     true,
		Username:   username,
		AuthSource: models.AuthSourceDirectory,
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if errCreate := tx.Create(&user).Error; errCreate != nil {
			return errCreate
		}

		tags := models.DefaultTags(user.ID)

		return tx.Create(&tags).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return p.Lookup(username)
	}

	if err != nil {
		return nil, storageErr("failed to provision directory user", err)
	}

	log.Info().Str("username", username).Msg("provisioned directory user")

	return &user, nil
}
