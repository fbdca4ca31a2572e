package auth

import (
	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Hasher produces and verifies salted one-way password digests using the
// Argon2id algorithm. The cost parameters are tunable so deployments can
// raise the work factor as hardware improves.
type Hasher struct {
	params *argon2id.Params
}

// NewHasher creates a password hasher. A nil params uses the argon2id defaults.
func NewHasher(params *argon2id.Params) *Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &Hasher{params: params}
}

// Hash hashes a plaintext password. The returned encoded form embeds the
// salt and cost parameters.
func (h *Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params) //nolint:wrapcheck
}

// Verify checks a plaintext password against an encoded digest.
// It uses constant-time comparison and returns false on malformed input
// instead of failing.
func (h *Hasher) Verify(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		log.Debug().Err(err).Msg("failed to verify password hash")
		return false
	}

	return match
}
