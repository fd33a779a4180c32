// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import "strings"

// MergeSection lays fetched content over a default payload, field by
// field:
//
//   - strings that are empty after trimming fall back to the default
//   - nested objects merge recursively
//   - non-empty fetched arrays replace the default array wholesale,
//     empty or missing arrays keep the default
//   - other values (numbers, booleans) are taken from the fetched
//     content when present
//
// Fields the defaults don't know about are carried through unchanged.
func MergeSection(def, fetched map[string]any) map[string]any {
	out := deepCopyMap(def)
	if fetched == nil {
		return out
	}

	for key, fetchedVal := range fetched {
		defVal, hasDefault := out[key]
		if !hasDefault {
			out[key] = deepCopyValue(fetchedVal)
			continue
		}
		out[key] = mergeValue(defVal, fetchedVal)
	}
	return out
}

func mergeValue(def, fetched any) any {
	switch fv := fetched.(type) {
	case string:
		if strings.TrimSpace(fv) == "" {
			return def
		}
		return fv
	case map[string]any:
		if dm, ok := def.(map[string]any); ok {
			return MergeSection(dm, fv)
		}
		return deepCopyValue(fv)
	case []any:
		if len(fv) == 0 {
			return def
		}
		return deepCopyValue(fv)
	case nil:
		return def
	default:
		return fetched
	}
}
