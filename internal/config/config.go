// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const (
	defaultShutDownTime  = 5   // seconds
	defaultTokenTTLHours = 168 // one week
	defaultBindTimeout   = 10  // seconds
	minTokenSecretLen    = 32  // bytes, 256 bits
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("CONFTRACK_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for conftrack.
// Defaults are filled in here so the rest of the process can rely on them.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate access-control-allow-origin
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeDatabase
	}

	if c.Auth.Mode != AuthModeDatabase && c.Auth.Mode != AuthModeDirectory {
		return errors.Wrap(ErrInvalidAuthMode, invalidErrMessage)
	}

	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = defaultTokenTTLHours
	}

	if c.Auth.TokenSecret != "" && len(c.Auth.TokenSecret) < minTokenSecretLen {
		return errors.Wrap(ErrTokenSecretTooShort, invalidErrMessage)
	}

	if c.Auth.Mode == AuthModeDirectory {
		if c.Auth.Directory.ServerURL == "" {
			return errors.Wrap(ErrDirectoryServerEmpty, invalidErrMessage)
		}

		if !strings.Contains(c.Auth.Directory.DNTemplate, "{username}") {
			return errors.Wrap(ErrDNTemplateInvalid, invalidErrMessage)
		}
	}

	if c.Auth.Directory.TimeoutSeconds == 0 {
		c.Auth.Directory.TimeoutSeconds = defaultBindTimeout
	}

	return nil
}
