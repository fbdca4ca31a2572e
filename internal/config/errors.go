package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrInvalidAuthMode error if auth.mode is not a known provider mode.
	ErrInvalidAuthMode = errors.New("toml config auth.mode must be \"database\" or \"directory\"")

	// ErrDirectoryServerEmpty error if directory mode is enabled without a server address.
	ErrDirectoryServerEmpty = errors.New("toml config auth.directory.serverurl can not be empty in directory mode")

	// ErrDNTemplateInvalid error if the directory DN template lacks the {username} placeholder.
	ErrDNTemplateInvalid = errors.New("toml config auth.directory.dntemplate must contain {username}")

	// ErrTokenSecretTooShort error if the configured signing secret is below 256 bits.
	ErrTokenSecretTooShort = errors.New("toml config auth.tokensecret must be at least 32 bytes")
)
