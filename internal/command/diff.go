// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/ndjdiff/ndjdiff/internal/config"
	"github.com/ndjdiff/ndjdiff/internal/delta"
	"github.com/ndjdiff/ndjdiff/internal/filters"
	"github.com/ndjdiff/ndjdiff/internal/keyer"
	"github.com/ndjdiff/ndjdiff/internal/meta"
	"github.com/ndjdiff/ndjdiff/internal/ndjson"
	"github.com/ndjdiff/ndjdiff/internal/output"
	"github.com/ndjdiff/ndjdiff/internal/source"
	"github.com/ndjdiff/ndjdiff/internal/where"
)

func diffCommandBuilder(m meta.Meta) *cli.Command {
	flags := NewGlobalFlags()
	flags = append(flags,
		NewKeyFlag("diff", m.Config.Source),
		&cli.BoolFlag{
			Name:        "detail",
			Aliases:     []string{"d"},
			Usage:       "show an attribute-level diff for each changed pair",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "pick",
			Usage:       "pick two versions of one s3 object interactively",
			HideDefault: true,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "max object versions offered by --pick",
			Value: 25,
		},
	)

	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two NDJSON inputs",
		ArgsUsage: "<sourceA> <sourceB> | --pick <s3-source>",
		Metadata:  map[string]any{"meta": m},
		Flags:     flags,
		Action:    diffCommandAction,
	}
}

// diffCommandAction is the action handler for the "diff" subcommand. It
// acquires both blobs, narrows the record sets per --filter/--where, runs the
// comparison and renders the result per common flags.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	srcA, srcB, err := resolveSources(ctx, cmd)
	if err != nil {
		return err
	}
	if srcA == nil {
		// Picker dismissed; nothing to do.
		return nil
	}

	blobA, blobB, err := source.FetchPair(ctx, srcA, srcB)
	if err != nil {
		return err
	}

	recsA, recsB, err := narrow(cmd, ndjson.Parse(blobA), ndjson.Parse(blobB))
	if err != nil {
		return err
	}

	keyOf := keyer.New(cmd.String("key"))

	result, err := compute(recsA, recsB, keyOf)
	if err != nil {
		return err
	}

	opts := output.Options{
		Format: cmd.String("output"),
		Color:  cmd.Bool("color"),
		Detail: cmd.Bool("detail"),
		SizeA:  len(blobA),
		SizeB:  len(blobB),
	}

	return output.Render(os.Stdout, opts, result, keyOf)
}

// resolveSources turns the positional args (or a --pick selection) into the
// two readers to fetch. A nil first source means the user dismissed the
// picker.
func resolveSources(ctx context.Context, cmd *cli.Command) (source.Source, source.Source, error) {
	args := cmd.Args().Slice()
	opts := sourceOptions(cmd)

	if cmd.Bool("pick") {
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("--pick wants exactly one s3:// source")
		}

		spec, err := source.ParseSpec(args[0])
		if err != nil {
			return nil, nil, err
		}

		v, ok := source.New(spec, opts...).(source.Versioner)
		if !ok {
			return nil, nil, fmt.Errorf("%s does not keep object versions", spec)
		}

		versions, err := v.Versions(ctx)
		if err != nil {
			return nil, nil, err
		}
		if limit := cmd.Int("limit"); len(versions) > limit {
			versions = versions[:limit]
		}

		selected := source.SelectVersions(versions)
		log.Debugf("selected: %d", len(selected))
		if len(selected) != 2 {
			return nil, nil, nil
		}

		// Diff runs older to newer regardless of selection order.
		older, newer := selected[0], selected[1]
		if older.LastModified.After(newer.LastModified) {
			older, newer = newer, older
		}

		return v.Versioned(older.ID), v.Versioned(newer.ID), nil
	}

	if len(args) != 2 {
		return nil, nil, fmt.Errorf("diff wants exactly two sources, got %d", len(args))
	}

	specA, err := source.ParseSpec(args[0])
	if err != nil {
		return nil, nil, err
	}
	specB, err := source.ParseSpec(args[1])
	if err != nil {
		return nil, nil, err
	}

	return source.New(specA, opts...), source.New(specB, opts...), nil
}

// sourceOptions maps the shared flags onto reader options.
func sourceOptions(cmd *cli.Command) []source.Option {
	var opts []source.Option

	if profile := cmd.String("profile"); profile != "" {
		opts = append(opts, source.WithProfile(profile))
	}
	if region := cmd.String("region"); region != "" {
		opts = append(opts, source.WithRegion(region))
	}

	opts = append(opts, source.WithPassphrase(func() (string, error) {
		if pass := cmd.String("passphrase"); pass != "" {
			return pass, nil
		}
		return source.PromptPassphrase()
	}))

	return opts
}

// narrow applies --filter and --where to both record sets.
func narrow(cmd *cli.Command, recsA, recsB []any) ([]any, []any, error) {
	if spec := cmd.String("filter"); spec != "" {
		fs := filters.Build(spec)
		recsA = filters.Apply(recsA, fs)
		recsB = filters.Apply(recsB, fs)
	}

	if expr := cmd.String("where"); expr != "" {
		p, err := where.Compile(expr)
		if err != nil {
			return nil, nil, err
		}
		recsA = p.Apply(recsA)
		recsB = p.Apply(recsB)
	}

	return recsA, recsB, nil
}

// compute runs the delta engine. The engine lets key-selector panics
// propagate; as the caller we turn them into a regular error here.
func compute(a, b []delta.Record, keyOf delta.KeyFunc) (result delta.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("key selection failed: %v", r)
		}
	}()

	return delta.Compute(a, b, keyOf), nil
}
