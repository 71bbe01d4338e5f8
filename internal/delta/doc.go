// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package delta classifies the records of two NDJSON inputs into added,
// removed and changed sets under a caller-supplied key selector.
package delta
