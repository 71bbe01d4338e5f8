// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package delta

// Equal reports deep structural equality of two parsed JSON values.
//
// Objects compare by key set and per-key equality; key order never matters.
// Arrays compare by length and elementwise equality; element order does
// matter. Scalars compare by type and value, except numbers: encoding/json
// decodes every JSON number to float64, so 1 and 1.0 are the same value and
// literal formatting is irrelevant. That is the one numeric rule this
// package guarantees.
//
// Equal deliberately avoids re-serialize-and-compare: marshaling key order
// and whitespace choices must never leak into the answer.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case float64:
		bv, ok := b.(float64)
		return ok && av == bv

	case string:
		bv, ok := b.(string)
		return ok && av == bv

	case bool:
		bv, ok := b.(bool)
		return ok && av == bv

	case nil:
		return b == nil

	default:
		// Unreachable for values produced by encoding/json into any.
		return false
	}
}
