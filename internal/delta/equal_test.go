// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package delta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParse decodes one JSON document the same way the line parser does.
func mustParse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "identical objects",
			a:    `{"id":1,"name":"A"}`,
			b:    `{"id":1,"name":"A"}`,
			want: true,
		},
		{
			name: "key order is not significant",
			a:    `{"id":1,"a":1,"b":2}`,
			b:    `{"id":1,"b":2,"a":1}`,
			want: true,
		},
		{
			name: "numeric formatting is not significant",
			a:    `{"n":1}`,
			b:    `{"n":1.0}`,
			want: true,
		},
		{
			name: "scientific notation",
			a:    `{"n":100}`,
			b:    `{"n":1e2}`,
			want: true,
		},
		{
			name: "nested field differs",
			a:    `{"a":{"b":{"c":1}}}`,
			b:    `{"a":{"b":{"c":2}}}`,
			want: false,
		},
		{
			name: "missing key",
			a:    `{"a":1,"b":2}`,
			b:    `{"a":1}`,
			want: false,
		},
		{
			name: "extra key",
			a:    `{"a":1}`,
			b:    `{"a":1,"b":2}`,
			want: false,
		},
		{
			name: "array order is significant",
			a:    `[1,2,3]`,
			b:    `[3,2,1]`,
			want: false,
		},
		{
			name: "array length differs",
			a:    `[1,2]`,
			b:    `[1,2,3]`,
			want: false,
		},
		{
			name: "equal nested arrays",
			a:    `{"xs":[{"a":1},{"b":[true,null]}]}`,
			b:    `{"xs":[{"a":1},{"b":[true,null]}]}`,
			want: true,
		},
		{
			name: "scalar type mismatch",
			a:    `"1"`,
			b:    `1`,
			want: false,
		},
		{
			name: "bool vs number",
			a:    `true`,
			b:    `1`,
			want: false,
		},
		{
			name: "null equals null",
			a:    `null`,
			b:    `null`,
			want: true,
		},
		{
			name: "null vs object",
			a:    `null`,
			b:    `{}`,
			want: false,
		},
		{
			name: "empty object vs empty array",
			a:    `{}`,
			b:    `[]`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustParse(t, tt.a)
			b := mustParse(t, tt.b)
			assert.Equal(t, tt.want, Equal(a, b))
			// Equality is symmetric.
			assert.Equal(t, tt.want, Equal(b, a))
		})
	}
}
