// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndjdiff/ndjdiff/internal/delta"
)

func byID(r delta.Record) string {
	m := r.(map[string]any)
	raw, _ := json.Marshal(m["id"])
	return strings.Trim(string(raw), `"`)
}

func sampleResult() delta.Result {
	return delta.Result{
		Added: []delta.Record{
			map[string]any{"id": "4", "name": "D"},
		},
		Removed: []delta.Record{
			map[string]any{"id": "3", "name": "C"},
		},
		Changed: []delta.Change{
			{
				Old: map[string]any{"id": "2", "name": "B"},
				New: map[string]any{"id": "2", "name": "B2"},
			},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Options{Format: "json"}, sampleResult(), byID))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Len(t, doc["added"], 1)
	assert.Len(t, doc["removed"], 1)

	changed := doc["changed"].([]any)
	require.Len(t, changed, 1)
	pair := changed[0].(map[string]any)
	assert.Equal(t, "B", pair["old"].(map[string]any)["name"])
	assert.Equal(t, "B2", pair["new"].(map[string]any)["name"])
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Options{Format: "yaml"}, sampleResult(), byID))

	out := buf.String()
	assert.Contains(t, out, "added:")
	assert.Contains(t, out, "removed:")
	assert.Contains(t, out, "changed:")
	assert.Contains(t, out, "B2")
}

func TestRenderRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Options{Format: "raw"}, sampleResult(), byID))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	// Every line is itself valid JSON, so the output is NDJSON too.
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "added", first["op"])
	assert.Equal(t, "4", first["key"])

	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, "changed", last["op"])
	assert.NotNil(t, last["old"])
	assert.NotNil(t, last["new"])
}

func TestRenderRawNullRecord(t *testing.T) {
	result := delta.Result{
		Added: []delta.Record{nil},
		Changed: []delta.Change{
			{Old: nil, New: map[string]any{"id": "2"}},
		},
	}
	constKey := func(delta.Record) string { return "k" }

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Options{Format: "raw"}, result, constKey))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	// A record that is the literal JSON null still carries its field.
	assert.Equal(t, `{"op":"added","key":"k","record":null}`, lines[0])
	assert.Contains(t, lines[1], `"old":null`)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: "text", SizeA: 100, SizeB: 2048}
	require.NoError(t, Render(&buf, opts, sampleResult(), byID))

	out := buf.String()
	assert.Contains(t, out, "OP")
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, `{"id":"4","name":"D"}`)
	assert.Contains(t, out, "=>")
	assert.Contains(t, out, "1 added, 1 removed, 1 changed")
	assert.Contains(t, out, "100 B")
	assert.Contains(t, out, "2.0 kB")
}

func TestRenderTextIdentical(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Options{Format: "text"}, delta.Result{}, byID))
	assert.Equal(t, "The inputs are identical.\n", buf.String())
}

func TestRenderTextDetail(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Format: "text", Detail: true}
	require.NoError(t, Render(&buf, opts, sampleResult(), byID))

	out := buf.String()
	// The changed pair gets an attribute-level section.
	assert.Contains(t, out, "~ 2")
	assert.Contains(t, out, "name")
}
