package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for every authentication failure.
	// The cause (unknown user, wrong password, unreachable directory) is
	// intentionally not distinguishable by callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserExists is returned when attempting to create a user with a username that already exists.
	ErrUserExists = errors.New("user already exists")

	// ErrMissingPassword is returned when a signup request carries no password.
	ErrMissingPassword = errors.New("password is required")

	// ErrCreationNotSupported is returned when local account creation is refused
	// for a username governed by the external directory.
	ErrCreationNotSupported = errors.New("user creation not supported for this username")

	// ErrInvalidToken is returned when a bearer token cannot be accepted.
	// The token sub-errors below all match it with errors.Is.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token's embedded expiry has passed.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)

	// ErrTokenMalformed is returned when the token structure cannot be parsed.
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)

	// ErrTokenSignature is returned when the token signature does not verify
	// under the process signing key and algorithm.
	ErrTokenSignature = fmt.Errorf("%w: bad signature", ErrInvalidToken)

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserDisabled = errors.New("user account is disabled")

	// ErrDuplicateCredential is returned when a credential row already exists for a user.
	ErrDuplicateCredential = errors.New("credential already exists for user")

	// ErrStorage wraps any underlying persistence failure surfaced by a provider.
	ErrStorage = errors.New("storage failure")
)

// storageErr tags an underlying persistence failure with ErrStorage while
// keeping the original error in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
