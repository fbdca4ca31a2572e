package login

import "errors"

// ErrNilAppConfigIdentity is returned if a required dependency is nil at init.
var ErrNilAppConfigIdentity = errors.New("app, config or identity service is nil")
