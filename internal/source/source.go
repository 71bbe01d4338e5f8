// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"

	"github.com/ndjdiff/ndjdiff/internal/log"
)

// Source supplies one raw NDJSON blob. Implementations are the only place
// IO errors can originate; a failed read is fatal to the call that requested
// the blob and no retries happen at this layer.
type Source interface {
	ReadAll(ctx context.Context) (string, error)
	String() string
}

// options holds optional overrides shared by the readers.
type options struct {
	profile    string
	region     string
	passphrase func() (string, error)
}

// Option customizes reader construction.
type Option func(*options)

// WithProfile sets the AWS shared config profile for S3 reads.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the AWS region for S3 reads.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithPassphrase sets the passphrase supplier used when a blob turns out to
// be sealed. Without one, sealed blobs fail the read.
func WithPassphrase(supplier func() (string, error)) Option {
	return func(o *options) { o.passphrase = supplier }
}

// New returns the reader for a parsed spec.
func New(spec Spec, opts ...Option) Source {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch spec.Kind {
	case KindStdin:
		return &stdinSource{o: o}
	case KindS3:
		return &s3Source{spec: spec, o: o}
	default:
		return &localSource{spec: spec, o: o}
	}
}

// FetchPair reads two sources concurrently and returns both blobs in order.
// The first failure wins; the engine downstream only ever sees two fully
// materialized strings.
func FetchPair(ctx context.Context, a, b Source) (string, string, error) {
	type fetched struct {
		idx  int
		blob string
		err  error
	}

	results := make(chan fetched, 2)
	for i, src := range []Source{a, b} {
		go func(idx int, src Source) {
			blob, err := src.ReadAll(ctx)
			if err != nil {
				err = fmt.Errorf("failed to read %s: %w", src, err)
			}
			results <- fetched{idx: idx, blob: blob, err: err}
		}(i, src)
	}

	var blobs [2]string
	for range 2 {
		r := <-results
		if r.err != nil {
			return "", "", r.err
		}
		blobs[r.idx] = r.blob
	}

	log.Debugf("fetched: a=%d bytes, b=%d bytes", len(blobs[0]), len(blobs[1]))
	return blobs[0], blobs[1], nil
}
