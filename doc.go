// Package main provides the entry point for the conftrack backend.
// It initializes and runs a web server using the Fiber framework that lets
// researchers track conferences, deadlines, and submission tags through a
// REST API. Authentication supports local database accounts and an external
// LDAP directory, with signed bearer tokens issued per login. The
// application uses gorm for data persistence.
package main
