// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses --filter expressions and applies them to parsed
// records before comparison.
package filters
