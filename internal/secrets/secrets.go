// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads SMTP credentials from a directory of plain-text
// files, for setups that keep them out of the environment and .env files.
// Each file holds one value; its name is the lower-case, dash-separated
// form of the environment variable it stands in for, so smtp-password
// supplies SMTP_PASSWORD.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// Load reads all files in dir and returns a map of variable name to
// trimmed contents. A missing directory is not an error; Load returns an
// empty map. Unreadable and empty files are skipped with a warning.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			log.Warn().Str("secret", name).Msg("empty secret file")
			continue
		}
		secrets[VarName(name)] = value
	}
	return secrets, nil
}

// VarName maps a secret file name to its environment variable name.
func VarName(file string) string {
	return strings.ToUpper(strings.ReplaceAll(file, "-", "_"))
}
