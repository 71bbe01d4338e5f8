// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package delta

import (
	"github.com/ndjdiff/ndjdiff/internal/log"
	"github.com/ndjdiff/ndjdiff/internal/ndjson"
)

// Record is one parsed JSON value (object, array or scalar) as produced by
// ndjson.Parse. Records are never mutated after parse.
type Record = any

// KeyFunc maps a record to its string identity. The engine requires it to be
// total, deterministic and side-effect free; that contract is the caller's to
// honor. If a KeyFunc panics the panic propagates out of Compute unhandled
// and no partial result is produced.
type KeyFunc func(Record) string

// Change is a record present in both inputs whose content differs.
type Change struct {
	Old Record `json:"old"`
	New Record `json:"new"`
}

// Result holds the classified records of one comparison.
//
// Ordering is deterministic: Added follows the key order of the second input,
// Removed and Changed follow the key order of the first. Key order means the
// first-seen position of each key in that input.
type Result struct {
	Added   []Record `json:"added"`
	Removed []Record `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the comparison found no differences.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// keyedSet maps key to the most recently seen record with that key, while
// remembering the order keys were first seen in.
type keyedSet struct {
	keys    []string
	records map[string]Record
}

// newKeyedSet builds a keyedSet from records in iteration order. A duplicate
// key overwrites the earlier record but keeps the key's original position;
// last write wins and no error is raised. That is policy, not accident:
// inputs with repeated identities resolve to the newest row.
func newKeyedSet(records []Record, keyOf KeyFunc) *keyedSet {
	ks := &keyedSet{records: make(map[string]Record, len(records))}

	for _, r := range records {
		key := keyOf(r)
		if _, seen := ks.records[key]; !seen {
			ks.keys = append(ks.keys, key)
		}
		ks.records[key] = r
	}

	return ks
}

func (ks *keyedSet) has(key string) bool {
	_, ok := ks.records[key]
	return ok
}

// Compute compares two record sequences under keyOf.
//
// Records whose key appears only in b are Added, only in a are Removed, and
// in both with deep-unequal content are Changed (old from a, new from b).
// Keys present in both with equal content are omitted.
func Compute(a, b []Record, keyOf KeyFunc) Result {
	ksA := newKeyedSet(a, keyOf)
	ksB := newKeyedSet(b, keyOf)
	log.Debugf("keyed: a=%d b=%d", len(ksA.keys), len(ksB.keys))

	var result Result

	for _, key := range ksB.keys {
		if !ksA.has(key) {
			result.Added = append(result.Added, ksB.records[key])
		}
	}

	for _, key := range ksA.keys {
		if !ksB.has(key) {
			result.Removed = append(result.Removed, ksA.records[key])
			continue
		}

		oldRec, newRec := ksA.records[key], ksB.records[key]
		if !Equal(oldRec, newRec) {
			result.Changed = append(result.Changed, Change{Old: oldRec, New: newRec})
		}
	}

	log.Debugf("classified: added=%d removed=%d changed=%d",
		len(result.Added), len(result.Removed), len(result.Changed))

	return result
}

// ComputeRaw parses two NDJSON blobs and compares the results. Unparsable
// lines are dropped by the parser before the comparison ever sees them.
func ComputeRaw(rawA, rawB string, keyOf KeyFunc) Result {
	return Compute(ndjson.Parse(rawA), ndjson.Parse(rawB), keyOf)
}
