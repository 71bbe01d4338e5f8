// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil stores fetched remote blobs on disk so repeated diffs of
// the same object versions skip the network.
package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ndjdiff/ndjdiff/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. NDJDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/ndjdiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("NDJDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "ndjdiff"), true
	}
	return "", false
}

// Enabled returns true unless NDJDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("NDJDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("created cache dir: path=%s", base)
	return base, true, nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		// Guard against nil info (can occur if the file disappeared while
		// walking, e.g. a concurrent run purging the same entries).
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read attempts to read a cached entry.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}

	base, ok := Dir()
	if !ok {
		return nil, false
	}

	encoded := encodeKey(clearKey)
	p := filepath.Join(append([]string{base}, append(subdirs, encoded)...)...)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	b = bytes.TrimSpace(b)
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encoded,
		Path:       p,
		Data:       b,
	}, true
}

// Write stores data for the given key beneath subdirs. Creates directories as needed.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}
	encoded := encodeKey(clearKey)
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encoded)
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// sha256 keeps bucket/key/version strings filesystem-safe.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
