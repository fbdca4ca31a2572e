// Package auth provides authentication and identity resolution for conftrack.
//
// This package reconciles two authoritative sources of identity behind a
// single contract:
//   - Local database authentication with Argon2id password hashing
//   - LDAP directory authentication with just-in-time user provisioning
//
// # Authentication Providers
//
// DatabaseProvider handles username/password authentication against the
// local database. Accounts it creates carry a Credential row written in the
// same transaction as the User row.
//
// DirectoryProvider delegates credential checks to an external LDAP
// directory by binding with a DN built from a configured template. On the
// first successful bind for an unseen username it creates a minimal local
// User record; it never creates directory-side accounts.
//
// # Routing
//
// Router selects exactly one provider per username. Usernames in the
// configured reserved set always resolve to the DatabaseProvider, for
// authentication, lookup and creation alike; the membership check happens
// before any directory traffic, so a reserved account can never be
// authenticated against the directory. All other usernames are governed by
// the directory, and local creation for them is refused.
//
// # Tokens
//
// TokenCodec issues and verifies HMAC-signed bearer tokens carrying the
// user id as subject and an absolute expiry. Tokens are stateless: nothing
// is persisted per login and nothing is revoked server-side.
//
// # Façade
//
// Service is what the route layer talks to:
//
//	svc := auth.NewService(router, codec, db)
//	token, err := svc.Login(username, password)
//	user, err := svc.Resolve(token)
//	user, err := svc.Signup(username, password)
//
// Login collapses every failure cause (unknown user, wrong password,
// unreachable directory, disabled account) into ErrInvalidCredentials so
// callers cannot enumerate usernames or probe infrastructure state.
package auth
