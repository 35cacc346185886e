// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail composes the revision-request emails, saves them for
// review, and sends them over SMTP. The SMTP settings are read once into
// an SMTPConfig and passed to the Sender; nothing reads the environment
// at send time.
package mail

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Environment variables holding the SMTP settings.
const (
	EnvServer   = "SMTP_SERVER"
	EnvPort     = "SMTP_PORT"
	EnvUser     = "SMTP_USER"
	EnvUsername = "SMTP_USERNAME"
	EnvPassword = "SMTP_PASSWORD"
)

// SMTPConfig holds the SMTP connection settings. User is the account and
// sender address; Username is the display name on the From header.
type SMTPConfig struct {
	Server   string
	Port     int
	User     string
	Username string
	// Password is optional; without it the client does not authenticate.
	Password string
}

// From returns the formatted sender, e.g. "Program Committee <pc@example.org>".
func (c SMTPConfig) From() string {
	return c.Username + " <" + c.User + ">"
}

// LoadSMTPConfig reads the SMTP settings from the environment through v,
// falling back to fallback (typically the secrets directory) for unset
// variables. A missing mandatory variable is an error.
func LoadSMTPConfig(v *viper.Viper, fallback map[string]string) (SMTPConfig, error) {
	get := func(env string) (string, error) {
		key := "smtp." + env
		if err := v.BindEnv(key, env); err != nil {
			return "", fmt.Errorf("binding %s: %w", env, err)
		}
		if s := v.GetString(key); s != "" {
			return s, nil
		}
		return fallback[env], nil
	}

	values := make(map[string]string)
	for _, env := range []string{EnvServer, EnvPort, EnvUser, EnvUsername, EnvPassword} {
		s, err := get(env)
		if err != nil {
			return SMTPConfig{}, err
		}
		if s == "" && env != EnvPassword {
			return SMTPConfig{}, fmt.Errorf("environment variable %s is not set", env)
		}
		values[env] = s
	}

	port, err := strconv.Atoi(values[EnvPort])
	if err != nil || port <= 0 {
		return SMTPConfig{}, fmt.Errorf("environment variable %s: invalid port %q", EnvPort, values[EnvPort])
	}

	return SMTPConfig{
		Server:   values[EnvServer],
		Port:     port,
		User:     values[EnvUser],
		Username: values[EnvUsername],
		Password: values[EnvPassword],
	}, nil
}
