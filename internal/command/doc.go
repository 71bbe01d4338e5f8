// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the CLI application: subcommands, flags and the glue
// between sources, the delta engine and output rendering.
package command
