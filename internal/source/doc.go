// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source acquires raw NDJSON blobs from local paths, stdin or S3
// objects. The delta engine never knows which collaborator supplied a blob;
// it only ever sees fully materialized strings.
package source
