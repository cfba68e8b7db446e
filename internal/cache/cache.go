// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cache stores the diagnostics of analyzed packages on disk.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"fillmore-labs.com/patternguard/internal/report"
)

// schemaVersion changes whenever the entry layout changes.
const schemaVersion uint16 = 1

// ErrCorrupt is returned for entries that fail validation.
var ErrCorrupt = errors.New("corrupt cache entry")

// Cache maps package fingerprints to diagnostics.
// A nil *Cache is valid and caches nothing. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type entry struct {
	Schema      uint16              `msgpack:"v"`
	Key         string              `msgpack:"k"`
	Count       uint32              `msgpack:"n"`
	Diagnostics []report.Diagnostic `msgpack:"d"`
}

// DefaultDir returns the per-user cache directory for app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		var err error
		if base, err = os.UserCacheDir(); err != nil {
			return "", err
		}
	}

	return filepath.Join(base, app), nil
}

// Open creates the cache directory if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *Cache) pathFor(key string) string {
	if len(key) < 2 {
		return filepath.Join(c.dir, "pkgs", key+".mp")
	}

	return filepath.Join(c.dir, "pkgs", key[:2], key+".mp")
}

// Put stores the diagnostics of key, replacing the file atomically.
func (c *Cache) Put(key string, ds []report.Diagnostic) error {
	if c == nil {
		return nil
	}

	count, err := safecast.Conv[uint32](len(ds))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Failed to remove temporary cache file", slog.String("file", f.Name()), slog.Any("error", err))
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(entry{Schema: schemaVersion, Key: key, Count: count, Diagnostics: ds}); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// Get returns the diagnostics stored for key.
// Entries of older schema versions are misses.
func (c *Cache) Get(key string) ([]report.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	var e entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("%w %s: %w", ErrCorrupt, key, err)
	}

	if e.Schema != schemaVersion {
		return nil, false, nil
	}

	if e.Key != key || int(e.Count) != len(e.Diagnostics) {
		return nil, false, fmt.Errorf("%w %s", ErrCorrupt, key)
	}

	return e.Diagnostics, true, nil
}

// Clear removes all entries.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return os.RemoveAll(filepath.Join(c.dir, "pkgs"))
}
