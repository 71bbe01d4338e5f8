// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and constructs the S3 client
// used by the remote source.
package aws
