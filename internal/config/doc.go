// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the YAML configuration file and exposes typed getters
// over a dotted key path, with optional per-command namespacing.
package config
