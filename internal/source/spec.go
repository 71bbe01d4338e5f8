// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind discriminates where a blob comes from.
type Kind int

const (
	KindLocal Kind = iota
	KindS3
	KindStdin
)

// Spec is one parsed positional source argument.
//
// Accepted forms:
//   - "-" reads stdin
//   - "s3://bucket/path/to/object" reads the latest S3 object version
//   - "s3://bucket/path/to/object::versionID" reads a specific version
//   - anything else is a local file path, made absolute against the CWD
type Spec struct {
	Raw       string
	Kind      Kind
	Path      string
	Bucket    string
	Key       string
	VersionID string
}

// ParseSpec parses a positional source argument. Local paths must exist and
// be regular files; S3 specs are validated for shape only, existence is the
// reader's problem.
func ParseSpec(raw string) (Spec, error) {
	if raw == "" {
		return Spec{}, os.ErrInvalid
	}

	if raw == "-" {
		return Spec{Raw: raw, Kind: KindStdin}, nil
	}

	if rest, ok := strings.CutPrefix(raw, "s3://"); ok {
		// Split off an optional ::versionID suffix first.
		var versionID string
		if parts := strings.SplitN(rest, "::", 2); len(parts) == 2 {
			rest, versionID = parts[0], parts[1]
		}

		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Spec{}, fmt.Errorf("invalid s3 spec %q: want s3://bucket/key", raw)
		}

		return Spec{
			Raw:       raw,
			Kind:      KindS3,
			Bucket:    bucket,
			Key:       key,
			VersionID: versionID,
		}, nil
	}

	path := raw
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return Spec{}, err
		}
		path = filepath.Join(cwd, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Spec{}, err
	}
	if info.IsDir() {
		return Spec{}, fmt.Errorf("%s is a directory: %w", path, os.ErrInvalid)
	}

	return Spec{Raw: raw, Kind: KindLocal, Path: path}, nil
}

func (s Spec) String() string {
	switch s.Kind {
	case KindStdin:
		return "stdin"
	case KindS3:
		if s.VersionID != "" {
			return fmt.Sprintf("s3://%s/%s::%s", s.Bucket, s.Key, s.VersionID)
		}
		return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
	default:
		return s.Path
	}
}
