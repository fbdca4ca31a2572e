package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// APIPrefix is the base path for the JSON API.
	APIPrefix = "/api"
)
