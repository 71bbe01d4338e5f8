// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	yamlv2 "gopkg.in/yaml.v2"

	"github.com/ndjdiff/ndjdiff/internal/config"
	"github.com/ndjdiff/ndjdiff/internal/keyer"
	"github.com/ndjdiff/ndjdiff/internal/meta"
	"github.com/ndjdiff/ndjdiff/internal/ndjson"
	"github.com/ndjdiff/ndjdiff/internal/source"
)

func keysCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewGlobalFlags()
	flags = append(flags, NewKeyFlag("keys", m.Config.Source))

	return &cli.Command{
		Name:      "keys",
		Usage:     "list the record keys present in one NDJSON input",
		ArgsUsage: "<source>",
		Metadata:  map[string]any{"meta": m},
		Flags:     flags,
		Action:    keysCommandAction,
	}
}

// keyCount is one line of keys output. Keys surface in first-seen order,
// and count is how many records carried the key.
type keyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

func keysCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "keys"

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("keys wants exactly one source, got %d", len(args))
	}

	spec, err := source.ParseSpec(args[0])
	if err != nil {
		return err
	}

	blob, err := source.New(spec, sourceOptions(cmd)...).ReadAll(ctx)
	if err != nil {
		return err
	}

	records, _, err := narrow(cmd, ndjson.Parse(blob), nil)
	if err != nil {
		return err
	}

	counts, err := countKeys(records, keyer.New(cmd.String("key")))
	if err != nil {
		return err
	}

	return renderKeys(os.Stdout, cmd.String("output"), counts)
}

// countKeys tallies records per key, preserving first-seen order. The key
// selector's panic on an unkeyable record is surfaced as an error.
func countKeys(records []any, keyOf func(any) string) (counts []keyCount, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("key selection failed: %v", r)
		}
	}()

	index := make(map[string]int)
	for _, record := range records {
		key := keyOf(record)
		if at, seen := index[key]; seen {
			counts[at].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, keyCount{Key: key, Count: 1})
	}

	return counts, nil
}

func renderKeys(w io.Writer, format string, counts []keyCount) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	case "yaml":
		out, err := yamlv2.Marshal(counts)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "raw":
		enc := json.NewEncoder(w)
		for _, kc := range counts {
			if err := enc.Encode(kc); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, kc := range counts {
			fmt.Fprintf(w, "%s %d\n", kc.Key, kc.Count)
		}
		return nil
	}
}
