// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package where evaluates an HCL predicate expression against each record.
// Top-level object fields become expression variables, so
// --where 'env == "prod" && size > 3' selects the records to compare.
package where

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/ndjdiff/ndjdiff/internal/log"
)

// Predicate is a compiled --where expression, parsed once and evaluated per
// record.
type Predicate struct {
	src  string
	expr hcl.Expression
}

// Compile parses src as an HCL expression.
func Compile(src string) (*Predicate, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse where expression: %s", diags.Error())
	}

	return &Predicate{src: src, expr: expr}, nil
}

// Match evaluates the predicate for one record. A record is kept only when
// the expression cleanly evaluates to true; evaluation errors and non-boolean
// results exclude the record and log a warning.
func (p *Predicate) Match(record any) bool {
	vars, err := recordVariables(record)
	if err != nil {
		log.Warnf("where: record excluded: %v", err)
		return false
	}

	ctx := &hcl.EvalContext{
		Variables: vars,
		Functions: functionMap(),
	}

	val, diags := p.expr.Value(ctx)
	if diags.HasErrors() {
		log.Warnf("where: record excluded: %s", diags.Error())
		return false
	}

	if val.IsNull() || !val.Type().Equals(cty.Bool) {
		log.Warnf("where: expression %q is not boolean for record", p.src)
		return false
	}

	return val.True()
}

// Apply filters records through the predicate. A nil predicate keeps
// everything.
func (p *Predicate) Apply(records []any) []any {
	if p == nil {
		return records
	}

	var kept []any
	for _, r := range records {
		if p.Match(r) {
			kept = append(kept, r)
		}
	}

	log.Debugf("where: in=%d out=%d", len(records), len(kept))
	return kept
}

// recordVariables converts a record into the expression variable map. Object
// records expose each top-level field under its own name plus the whole
// record as "r"; non-object records expose only "r".
func recordVariables(record any) (map[string]cty.Value, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("record not marshalable: %w", err)
	}

	typ, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return nil, fmt.Errorf("no cty type for record: %w", err)
	}

	val, err := ctyjson.Unmarshal(raw, typ)
	if err != nil {
		return nil, fmt.Errorf("record not convertible: %w", err)
	}

	vars := map[string]cty.Value{"r": val}
	if val.Type().IsObjectType() {
		for name, v := range val.AsValueMap() {
			vars[name] = v
		}
	}

	return vars, nil
}

// functionMap exposes the cty stdlib subset available to predicates.
func functionMap() map[string]function.Function {
	return map[string]function.Function{
		// Arithmetic functions
		"abs":   stdlib.AbsoluteFunc,
		"ceil":  stdlib.CeilFunc,
		"floor": stdlib.FloorFunc,
		"max":   stdlib.MaxFunc,
		"min":   stdlib.MinFunc,

		// String functions
		"format":     stdlib.FormatFunc,
		"lower":      stdlib.LowerFunc,
		"replace":    stdlib.ReplaceFunc,
		"split":      stdlib.SplitFunc,
		"substr":     stdlib.SubstrFunc,
		"trim":       stdlib.TrimFunc,
		"trimprefix": stdlib.TrimPrefixFunc,
		"trimspace":  stdlib.TrimSpaceFunc,
		"trimsuffix": stdlib.TrimSuffixFunc,
		"upper":      stdlib.UpperFunc,

		// Collection functions
		"coalesce": stdlib.CoalesceFunc,
		"contains": stdlib.ContainsFunc,
		"element":  stdlib.ElementFunc,
		"length":   stdlib.LengthFunc,

		// Error tolerance
		"try": tryfunc.TryFunc,
	}
}
