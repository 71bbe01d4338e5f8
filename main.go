// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ndjdiff/ndjdiff/internal/cacheutil"
	"github.com/ndjdiff/ndjdiff/internal/command"
	"github.com/ndjdiff/ndjdiff/internal/config"
	"github.com/ndjdiff/ndjdiff/internal/log"
	"github.com/ndjdiff/ndjdiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set arguments at the @set position.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	removeIdx := -1
	set := "defaults"
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, _ := config.GetStringSlice(args[1] + "." + set)
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}

// booleanFlags are the flags that never take a value, so arg preprocessing
// must never bind the following token to them.
var booleanFlags = map[string]bool{
	"--color":   true,
	"-c":        true,
	"--detail":  true,
	"-d":        true,
	"--pick":    true,
	"--version": true,
	"-v":        true,
	"--help":    true,
	"-h":        true,
}

// deduplicateFlags keeps only the last occurrence of each flag so config-set
// defaults can be overridden on the command line. Positional args keep their
// relative order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		text  string
		value string // flag value when given as a separate arg
		flag  string // canonical flag name, "" for positionals
	}

	var tokens []token
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if !strings.HasPrefix(a, "-") {
			tokens = append(tokens, token{text: a})
			continue
		}

		flag := a
		if at := strings.Index(a, "="); at != -1 {
			flag = a[:at]
		}

		tok := token{text: a, flag: flag}
		// Treat the next arg as this flag's value when the flag takes one,
		// it was not given with = syntax, and the next arg is not itself a
		// flag.
		if !booleanFlags[flag] && !strings.Contains(a, "=") && i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			tok.value = rest[i+1]
			i++
		}
		tokens = append(tokens, tok)
	}

	last := make(map[string]int)
	for i, tok := range tokens {
		if tok.flag != "" {
			last[tok.flag] = i
		}
	}

	out := args[:2:2]
	for i, tok := range tokens {
		if tok.flag != "" && last[tok.flag] != i {
			continue
		}
		out = append(out, tok.text)
		if tok.value != "" {
			out = append(out, tok.value)
		}
	}
	return out
}
