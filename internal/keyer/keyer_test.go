// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package keyer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		record string
		want   string
	}{
		{
			name:   "top level string",
			path:   "id",
			record: `{"id":"r-1","name":"A"}`,
			want:   "r-1",
		},
		{
			name:   "top level number",
			path:   "id",
			record: `{"id":1,"name":"A"}`,
			want:   "1",
		},
		{
			name:   "number formatting normalized",
			path:   "id",
			record: `{"id":1.0}`,
			want:   "1",
		},
		{
			name:   "nested path",
			path:   "meta.uid",
			record: `{"meta":{"uid":"u-9"}}`,
			want:   "u-9",
		},
		{
			name:   "array element",
			path:   "ids.0",
			record: `{"ids":["first","second"]}`,
			want:   "first",
		},
		{
			name:   "scalar record via @this",
			path:   "@this",
			record: `"standalone"`,
			want:   "standalone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyOf := New(tt.path)
			assert.Equal(t, tt.want, keyOf(parse(t, tt.record)))
		})
	}
}

func TestNewPanics(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		record string
	}{
		{
			name:   "missing key",
			path:   "id",
			record: `{"name":"A"}`,
		},
		{
			name:   "empty key value",
			path:   "id",
			record: `{"id":""}`,
		},
		{
			name:   "path into scalar",
			path:   "id",
			record: `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyOf := New(tt.path)
			assert.Panics(t, func() { keyOf(parse(t, tt.record)) })
		})
	}
}
