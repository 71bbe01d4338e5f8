// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndjdiff/ndjdiff/internal/keyer"
	"github.com/ndjdiff/ndjdiff/internal/ndjson"
)

func TestCompute_HappyPath(t *testing.T) {
	a := ndjson.Parse(`{"id":"1","v":1}` + "\n" + `{"id":"2","v":2}`)
	b := ndjson.Parse(`{"id":"2","v":2}` + "\n" + `{"id":"3","v":3}`)

	result, err := compute(a, b, keyer.New("id"))
	require.NoError(t, err)

	assert.Equal(t, 1, len(result.Added))
	assert.Equal(t, 1, len(result.Removed))
	assert.Equal(t, 0, len(result.Changed))
}

func TestCompute_KeySelectorPanicBecomesError(t *testing.T) {
	a := ndjson.Parse(`{"id":"1"}`)
	b := ndjson.Parse(`{"name":"no id here"}`)

	_, err := compute(a, b, keyer.New("id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key selection failed")
}

func TestCountKeys_FirstSeenOrderAndTally(t *testing.T) {
	records := ndjson.Parse(`{"id":"b"}` + "\n" + `{"id":"a"}` + "\n" + `{"id":"b"}`)

	counts, err := countKeys(records, keyer.New("id"))
	require.NoError(t, err)

	require.Equal(t, 2, len(counts))
	assert.Equal(t, keyCount{Key: "b", Count: 2}, counts[0])
	assert.Equal(t, keyCount{Key: "a", Count: 1}, counts[1])
}

func TestCountKeys_UnkeyableRecordBecomesError(t *testing.T) {
	records := ndjson.Parse(`{"id":"1"}` + "\n" + `{"other":"x"}`)

	_, err := countKeys(records, keyer.New("id"))
	assert.Error(t, err)
}

func TestRenderKeys_Formats(t *testing.T) {
	counts := []keyCount{
		{Key: "a", Count: 2},
		{Key: "b", Count: 1},
	}

	var text bytes.Buffer
	require.NoError(t, renderKeys(&text, "text", counts))
	assert.Equal(t, "a 2\nb 1\n", text.String())

	var raw bytes.Buffer
	require.NoError(t, renderKeys(&raw, "raw", counts))
	assert.Equal(t, `{"key":"a","count":2}`+"\n"+`{"key":"b","count":1}`+"\n", raw.String())

	var asJSON bytes.Buffer
	require.NoError(t, renderKeys(&asJSON, "json", counts))
	assert.Contains(t, asJSON.String(), `"key": "a"`)

	var asYAML bytes.Buffer
	require.NoError(t, renderKeys(&asYAML, "yaml", counts))
	assert.Contains(t, asYAML.String(), "- key: a")
	assert.Contains(t, asYAML.String(), "count: 2")
}

func TestCountKeys_Empty(t *testing.T) {
	counts, err := countKeys(nil, keyer.New("id"))
	require.NoError(t, err)
	assert.Equal(t, 0, len(counts))
}
