package conferences

import "errors"

// ErrNilAppConfigIdentity is returned if a required dependency is nil at init.
var ErrNilAppConfigIdentity = errors.New("app, config, db or identity service is nil")
