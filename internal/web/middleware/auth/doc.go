// Package auth provides bearer token middleware for the web application.
//
// The middleware extracts the token from the Authorization header,
// resolves it through the identity service and stores the authenticated
// user in the request locals. Handlers read the user back with
// CurrentUser; RequireSuperuser gates administrative routes.
package auth
