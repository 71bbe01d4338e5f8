// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseSpec(t *testing.T) {
	localFile := writeFile(t, "a.ndjson", `{"id":1}`)

	tests := []struct {
		name    string
		raw     string
		want    Spec
		wantErr bool
	}{
		{
			name: "stdin",
			raw:  "-",
			want: Spec{Raw: "-", Kind: KindStdin},
		},
		{
			name: "local absolute path",
			raw:  localFile,
			want: Spec{Raw: localFile, Kind: KindLocal, Path: localFile},
		},
		{
			name: "s3 latest",
			raw:  "s3://bucket/path/to/obj.ndjson",
			want: Spec{
				Raw:    "s3://bucket/path/to/obj.ndjson",
				Kind:   KindS3,
				Bucket: "bucket",
				Key:    "path/to/obj.ndjson",
			},
		},
		{
			name: "s3 pinned version",
			raw:  "s3://bucket/obj::v123",
			want: Spec{
				Raw:       "s3://bucket/obj::v123",
				Kind:      KindS3,
				Bucket:    "bucket",
				Key:       "obj",
				VersionID: "v123",
			},
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "missing local file",
			raw:     "/no/such/file.ndjson",
			wantErr: true,
		},
		{
			name:    "s3 missing key",
			raw:     "s3://bucket",
			wantErr: true,
		},
		{
			name:    "s3 empty bucket",
			raw:     "s3:///key",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpecDirectory(t *testing.T) {
	_, err := ParseSpec(t.TempDir())
	assert.Error(t, err)
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "stdin", Spec{Kind: KindStdin}.String())
	assert.Equal(t, "s3://b/k", Spec{Kind: KindS3, Bucket: "b", Key: "k"}.String())
	assert.Equal(t, "s3://b/k::v1",
		Spec{Kind: KindS3, Bucket: "b", Key: "k", VersionID: "v1"}.String())
	assert.Equal(t, "/tmp/x", Spec{Kind: KindLocal, Path: "/tmp/x"}.String())
}

func TestLocalReadAll(t *testing.T) {
	path := writeFile(t, "a.ndjson", "{\"id\":1}\n{\"id\":2}\n")

	spec, err := ParseSpec(path)
	require.NoError(t, err)

	blob, err := New(spec).ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1}\n{\"id\":2}\n", blob)
}

func TestLocalReadAllMissing(t *testing.T) {
	src := &localSource{spec: Spec{Kind: KindLocal, Path: "/no/such/file"}}

	_, err := src.ReadAll(context.Background())
	assert.Error(t, err)
}

func TestFetchPair(t *testing.T) {
	pathA := writeFile(t, "a.ndjson", `{"id":1}`)
	pathB := writeFile(t, "b.ndjson", `{"id":2}`)

	specA, err := ParseSpec(pathA)
	require.NoError(t, err)
	specB, err := ParseSpec(pathB)
	require.NoError(t, err)

	blobA, blobB, err := FetchPair(context.Background(), New(specA), New(specB))
	require.NoError(t, err)

	// Order follows the arguments, not completion order.
	assert.Equal(t, `{"id":1}`, blobA)
	assert.Equal(t, `{"id":2}`, blobB)
}

func TestFetchPairFailure(t *testing.T) {
	pathA := writeFile(t, "a.ndjson", `{"id":1}`)
	specA, err := ParseSpec(pathA)
	require.NoError(t, err)

	bad := &localSource{spec: Spec{Kind: KindLocal, Path: "/no/such/file"}}

	_, _, err = FetchPair(context.Background(), New(specA), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/no/such/file")
}
