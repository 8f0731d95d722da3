// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package credential

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zinc-io/buybot/lib/testutil"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(testutil.ConfigPath(t), nil)
	if got := store.Load(); !got.IsZero() {
		t.Errorf("Load() on missing file = %+v, want zero", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tokens := []struct {
		name  string
		token string
	}{
		{"plain", "tok-abc"},
		{"hash", "a#b"},
		{"semicolon", "a;b"},
		{"equals", "a=b"},
		{"base64 padding", "dG9rZW4="},
		{"double quoted", "\"quoted\""},
		{"single quoted", "'quoted'"},
		{"backticks", "a`b`c"},
		{"multi-line", "line one\nline two"},
	}
	for _, test := range tokens {
		t.Run(test.name, func(t *testing.T) {
			path := testutil.ConfigPath(t)
			want := Credential{UserID: "u_123", Token: test.token}
			if err := NewStore(path, nil).Save(want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got := NewStore(path, nil).Load(); got != want {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSaveFilePermissions(t *testing.T) {
	path := testutil.ConfigPath(t)
	store := NewStore(path, nil)
	if err := store.Save(Credential{UserID: "u", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("file mode = %o, want 0600", mode)
	}
	directoryInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if mode := directoryInfo.Mode().Perm(); mode != 0700 {
		t.Errorf("directory mode = %o, want 0700", mode)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	store := NewStore(testutil.ConfigPath(t), nil)
	if err := store.Save(Credential{UserID: "old", Token: "old-token"}); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	want := Credential{UserID: "new", Token: "new-token"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save new: %v", err)
	}
	if got := store.Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSaveRejectsPartialCredential(t *testing.T) {
	path := testutil.ConfigPath(t)
	store := NewStore(path, nil)

	for _, partial := range []Credential{
		{Token: "token-only"},
		{UserID: "user-only"},
		{},
	} {
		if err := store.Save(partial); !errors.Is(err, ErrPartialCredential) {
			t.Errorf("Save(%+v) error = %v, want ErrPartialCredential", partial, err)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("rejected save created %s (stat err %v)", path, err)
	}
}

func TestSavePreservesOtherSections(t *testing.T) {
	path := testutil.ConfigPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	original := "[display]\ncolor = never\n\n[auth]\nuser_id = stale\ntoken = stale\n"
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path, nil)
	if err := store.Save(Credential{UserID: "u_9", Token: "t_9"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[display]") || !strings.Contains(string(data), "never") {
		t.Errorf("save dropped unrelated section:\n%s", data)
	}
	if strings.Contains(string(data), "stale") {
		t.Errorf("save kept stale credential:\n%s", data)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := testutil.ConfigPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[auth\nthis is not ini"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path, nil).Load(); !got.IsZero() {
		t.Errorf("Load() on malformed file = %+v, want zero", got)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := testutil.ConfigPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[auth]\ntoken = orphan\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := NewStore(path, nil).Load(); !got.IsZero() {
		t.Errorf("Load() with token but no user id = %+v, want zero", got)
	}
}

func TestClear(t *testing.T) {
	store := NewStore(testutil.ConfigPath(t), nil)
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := store.Save(Credential{UserID: "u", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := store.Load(); !got.IsZero() {
		t.Errorf("Load() after Clear = %+v, want zero", got)
	}
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	path := testutil.ConfigPath(t)
	store := NewStore(path, nil)
	if err := store.Save(Credential{UserID: "u", Token: "t"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if name != fileName && name != fileName+".lock" {
			t.Errorf("unexpected file %q left in config directory", name)
		}
	}
}

func TestDefaultPathHonorsEnvironment(t *testing.T) {
	t.Setenv("BUYBOT_CONFIG", "/tmp/elsewhere.ini")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/elsewhere.ini" {
		t.Errorf("DefaultPath() = %q, want /tmp/elsewhere.ini", path)
	}
}
