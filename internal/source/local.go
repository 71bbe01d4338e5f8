// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ndjdiff/ndjdiff/internal/log"
)

// localSource reads a blob from the local filesystem.
type localSource struct {
	spec Spec
	o    options
}

func (s *localSource) ReadAll(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.spec.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read local file: %w", err)
	}
	log.Debugf("local read: path=%s bytes=%d", s.spec.Path, len(data))

	return unsealIfNeeded(data, s.o.passphrase)
}

func (s *localSource) String() string {
	return s.spec.String()
}

// stdinSource reads a blob from standard input.
type stdinSource struct {
	o options
}

func (s *stdinSource) ReadAll(ctx context.Context) (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	log.Debugf("stdin read: bytes=%d", len(data))

	return unsealIfNeeded(data, s.o.passphrase)
}

func (s *stdinSource) String() string {
	return "stdin"
}
