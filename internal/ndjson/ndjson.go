// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ndjson

import (
	"encoding/json"
	"strings"

	"github.com/ndjdiff/ndjdiff/internal/log"
)

// Parse splits raw into lines and parses each non-blank line as one
// self-contained JSON value (object, array or scalar). Records come back in
// file order.
//
// A line that fails to parse is skipped and the rest of the blob is still
// processed. This is the tolerance policy for NDJSON produced by independent
// writers: one truncated or corrupt line must not invalidate the file. The
// skip is logged at debug and is deliberately not reported to the caller; it
// covers per-line JSON syntax errors only, nothing else.
//
// Parse is a pure function of raw and holds the whole blob in memory.
func Parse(raw string) []any {
	var records []any

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var record any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Debugf("skipping unparsable line %d: %v", i+1, err)
			continue
		}

		records = append(records, record)
	}

	return records
}
