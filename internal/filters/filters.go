// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. It matches a key followed optionally by an
// operator (with optional negation) and target. Operators are one of
// = ^ ~ < or >, optionally prefixed with '!'. Examples: "name" (key only),
// "name=value" (key + operator + target), "name!~^tmp" (negated regex).
var filterRegex = regexp.MustCompile(`^([^!=^~<>]*)(!?[=^~<>])?(.*)$`)

// Filter is a single parsed --filter expression including the gjson key path,
// operand, optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// Build parses a filter specification string into a slice of Filter.
// Invalid specs (malformed expression, empty key) are skipped.
func Build(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	// If there are no filters specified, go home early.
	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("NDJDIFF_FILTER_DELIM"); ok {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)

		// Regex should always match, so check for nil just in case.
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		// A bare key means "key must exist".
		if operand == "" {
			operand = "="
			target = ""
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Apply returns the records matching every filter. With no filters the input
// comes back untouched.
func Apply(records []any, filters []Filter) []any {
	if len(filters) == 0 {
		return records
	}

	var kept []any
	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			continue
		}

		if matches(raw, filters) {
			kept = append(kept, r)
		}
	}

	log.Debugf("filtered: in=%d out=%d", len(records), len(kept))
	return kept
}

// matches evaluates every filter against one marshaled record.
func matches(raw []byte, filters []Filter) bool {
	for _, f := range filters {
		value := gjson.GetBytes(raw, f.Key)

		hit := false
		switch f.Operand {
		case "=":
			if f.Value == "" {
				hit = value.Exists()
			} else {
				hit = value.String() == f.Value
			}
		case "^":
			hit = strings.HasPrefix(value.String(), f.Value)
		case "~":
			if re, err := regexp.Compile(f.Value); err == nil {
				hit = re.MatchString(value.String())
			} else {
				log.Error("invalid filter regex: " + f.Value)
			}
		case "<", ">":
			target, err := strconv.ParseFloat(f.Value, 64)
			if err != nil || !value.Exists() {
				break
			}
			if f.Operand == "<" {
				hit = value.Float() < target
			} else {
				hit = value.Float() > target
			}
		}

		if f.Negate {
			hit = !hit
		}

		if !hit {
			return false
		}
	}

	return true
}
