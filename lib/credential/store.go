// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Store reads and writes the credential file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore returns a Store for path. A nil logger discards.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger.With("config", path)}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the stored credential, or the zero Credential when the
// file is missing, unreadable, malformed, or holds only half of a
// credential.
func (s *Store) Load() Credential {
	file, err := s.read()
	if err != nil {
		s.logger.Warn("ignoring unreadable config", "error", err)
		return Credential{}
	}

	section := file.Section(authSection)
	credential := Credential{
		UserID: section.Key(keyUserID).String(),
		Token:  section.Key(keyToken).String(),
	}
	if !credential.Complete() {
		if !credential.IsZero() {
			s.logger.Warn("ignoring partial credential in config")
		}
		return Credential{}
	}
	return credential
}

// Save persists credential, replacing any previous one. Both fields
// must be set.
func (s *Store) Save(credential Credential) error {
	if !credential.Complete() {
		return ErrPartialCredential
	}
	return s.update(func(file *ini.File) {
		section := file.Section(authSection)
		section.Key(keyUserID).SetValue(credential.UserID)
		section.Key(keyToken).SetValue(credential.Token)
	})
}

// Clear removes the [auth] section. Clearing an absent credential is
// not an error.
func (s *Store) Clear() error {
	return s.update(func(file *ini.File) {
		file.DeleteSection(authSection)
	})
}

// read parses the config file. A missing file parses as empty.
// Surrounding quotes are kept so opaque tokens read back unchanged.
func (s *Store) read() (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{Loose: true, PreserveSurroundedQuote: true}, s.path)
}

// update runs a read-modify-write cycle under the advisory lock and
// atomically replaces the file with the result.
func (s *Store) update(modify func(*ini.File)) error {
	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", directory, err)
	}

	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return err
	}
	defer unlock()

	file, err := s.read()
	if err != nil {
		// A corrupt file holds nothing we can preserve.
		s.logger.Warn("replacing unreadable config", "error", err)
		file = ini.Empty()
	}
	modify(file)

	var buffer bytes.Buffer
	if _, err := file.WriteTo(&buffer); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeAtomic(s.path, buffer.Bytes())
}

// writeAtomic writes data to a temporary file next to path, syncs it,
// and renames it over path. The file is created with mode 0600 since
// it holds an access token.
func writeAtomic(path string, data []byte) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary config: %w", err)
	}
	temporaryPath := temporary.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(temporaryPath)
		}
	}()

	if err := temporary.Chmod(0600); err != nil {
		temporary.Close()
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing temporary config: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing temporary config: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing temporary config: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("replacing config %s: %w", path, err)
	}
	committed = true
	return nil
}
