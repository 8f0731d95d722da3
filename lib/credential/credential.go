// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	appDirectory = "buybot-cli"
	fileName     = "config.ini"

	authSection = "auth"
	keyUserID   = "user_id"
	keyToken    = "token"
)

// ErrPartialCredential is returned by Save for a credential that has a
// token but no user id (or the reverse).
var ErrPartialCredential = errors.New("credential: token and user id must be saved together")

// Credential is the identity issued by a completed device login.
type Credential struct {
	UserID string `json:"user_id" yaml:"user_id"`
	Token  string `json:"-"       yaml:"-"`
}

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool {
	return c.UserID == "" && c.Token == ""
}

// Complete reports whether both halves of the credential are present.
func (c Credential) Complete() bool {
	return c.UserID != "" && c.Token != ""
}

// DefaultPath returns $BUYBOT_CONFIG, or config.ini under the user's
// configuration directory.
func DefaultPath() (string, error) {
	if envPath := os.Getenv("BUYBOT_CONFIG"); envPath != "" {
		return envPath, nil
	}
	configDirectory, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDirectory, appDirectory, fileName), nil
}
