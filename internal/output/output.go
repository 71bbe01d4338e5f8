// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	yamlv2 "gopkg.in/yaml.v2"

	"github.com/ndjdiff/ndjdiff/internal/delta"
	"github.com/ndjdiff/ndjdiff/internal/log"
)

// Options shape how a result is rendered. Format is one of text, json, yaml
// or raw; the command layer validates it before calling Render.
type Options struct {
	Format string
	Color  bool
	Detail bool
	// SizeA/SizeB are the raw input sizes, for the text summary line.
	SizeA int
	SizeB int
}

// Render writes the result to w in the requested format. Rows are labeled by
// keyOf, the same selector the comparison ran under.
func Render(w io.Writer, opts Options, result delta.Result, keyOf delta.KeyFunc) error {
	switch opts.Format {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	case "raw":
		return renderRaw(w, result, keyOf)
	default:
		return renderText(w, opts, result, keyOf)
	}
}

// compact returns the record as one-line JSON.
func compact(r delta.Record) string {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("%v", r)
	}
	return string(raw)
}

func renderJSON(w io.Writer, result delta.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderYAML(w io.Writer, result delta.Result) error {
	// Round-trip through JSON so the yaml document carries the same field
	// names as the json output.
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	out, err := yamlv2.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// renderRaw emits one compact JSON line per classified record, suitable for
// piping into another NDJSON consumer.
func renderRaw(w io.Writer, result delta.Result, keyOf delta.KeyFunc) error {
	// Each op carries its fields unconditionally so a record that is the
	// literal JSON null still shows up on the line.
	type recordLine struct {
		Op     string       `json:"op"`
		Key    string       `json:"key"`
		Record delta.Record `json:"record"`
	}
	type changeLine struct {
		Op  string       `json:"op"`
		Key string       `json:"key"`
		Old delta.Record `json:"old"`
		New delta.Record `json:"new"`
	}

	enc := json.NewEncoder(w)
	for _, r := range result.Added {
		if err := enc.Encode(recordLine{Op: "added", Key: keyOf(r), Record: r}); err != nil {
			return err
		}
	}
	for _, r := range result.Removed {
		if err := enc.Encode(recordLine{Op: "removed", Key: keyOf(r), Record: r}); err != nil {
			return err
		}
	}
	for _, c := range result.Changed {
		if err := enc.Encode(changeLine{Op: "changed", Key: keyOf(c.New), Old: c.Old, New: c.New}); err != nil {
			return err
		}
	}
	return nil
}

func renderText(w io.Writer, opts Options, result delta.Result, keyOf delta.KeyFunc) error {
	if result.Empty() {
		fmt.Fprintln(w, "The inputs are identical.")
		return nil
	}

	var ops []string
	tbl := table.New().Headers("OP", "KEY", "RECORD")

	row := func(op, key, record string) {
		ops = append(ops, op)
		tbl.Row(op, key, record)
	}

	for _, r := range result.Added {
		row("+", keyOf(r), compact(r))
	}
	for _, r := range result.Removed {
		row("-", keyOf(r), compact(r))
	}
	for _, c := range result.Changed {
		row("~", keyOf(c.New), compact(c.Old)+" => "+compact(c.New))
	}

	if opts.Color {
		styles := map[string]lipgloss.Style{
			"+": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			"-": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			"~": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		}
		tbl.StyleFunc(func(row, col int) lipgloss.Style {
			if row < 1 || row > len(ops) {
				return lipgloss.NewStyle()
			}
			return styles[ops[row-1]]
		})
	}

	fmt.Fprintln(w, tbl.Render())

	fmt.Fprintf(w, "%d added, %d removed, %d changed (%s vs %s)\n",
		len(result.Added), len(result.Removed), len(result.Changed),
		humanize.Bytes(uint64(opts.SizeA)), humanize.Bytes(uint64(opts.SizeB)))

	if opts.Detail {
		return renderDetail(w, opts, result, keyOf)
	}

	return nil
}

// renderDetail prints an attribute-level diff for each changed pair. This is
// caller-side decoration of the result; the engine itself only ever says
// "changed".
func renderDetail(w io.Writer, opts Options, result delta.Result, keyOf delta.KeyFunc) error {
	differ := gojsondiff.New()

	for _, c := range result.Changed {
		oldDoc, ok := c.Old.(map[string]interface{})
		if !ok {
			// Non-object records have no attributes to walk.
			log.Debugf("detail skipped for non-object record %s", keyOf(c.New))
			continue
		}

		oldRaw, err := json.Marshal(c.Old)
		if err != nil {
			return err
		}
		newRaw, err := json.Marshal(c.New)
		if err != nil {
			return err
		}

		d, err := differ.Compare(oldRaw, newRaw)
		if err != nil {
			return fmt.Errorf("failed to compare records: %w", err)
		}

		config := formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       opts.Color,
		}

		f := formatter.NewAsciiFormatter(oldDoc, config)
		diffString, err := f.Format(d)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n~ %s\n%s", keyOf(c.New), diffString)
	}

	return nil
}
