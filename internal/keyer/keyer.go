// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package keyer builds record identity selectors from gjson paths.
package keyer

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/ndjdiff/ndjdiff/internal/delta"
)

// New returns a KeyFunc that resolves path against each record. Path is any
// gjson path ("id", "meta.uid", "ids.0").
//
// The returned function honors the engine's totality contract by panicking
// when the path is missing or resolves to an empty string; the engine lets
// that panic propagate, and the CLI layer turns it into an error for the
// user. Scalar records are only addressable with the "@this" path.
func New(path string) delta.KeyFunc {
	return func(r delta.Record) string {
		raw, err := json.Marshal(r)
		if err != nil {
			// Can't happen for values produced by encoding/json.
			panic(fmt.Sprintf("key %q: record not marshalable: %v", path, err))
		}

		result := gjson.GetBytes(raw, path)
		if !result.Exists() {
			panic(fmt.Sprintf("key %q not present in record %s", path, raw))
		}

		key := result.String()
		if key == "" {
			panic(fmt.Sprintf("key %q is empty in record %s", path, raw))
		}

		return key
	}
}
