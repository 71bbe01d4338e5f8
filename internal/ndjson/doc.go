// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ndjson parses newline-delimited JSON blobs into ordered record
// sequences. Lines that fail to parse are dropped, not surfaced.
package ndjson
