// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package binder resolves front-end page content against built-in
// defaults, so pages render completely even when the CMS is unreachable
// or a section is only partially filled in.
package binder

// Section is one content section payload.
type Section = map[string]any

// pageSections maps a page slug to the section keys the front end
// renders for it, in display order.
var pageSections = map[string][]string{
	"home": {
		"hero_slides",
		"who_we_are",
		"impact_stats",
		"programs",
		"testimonials",
		"news_updates",
		"cta",
	},
	"about": {
		"about_hero",
		"about_story",
		"about_mission_vision",
		"about_values",
		"about_leadership",
	},
	"programs": {
		"programs_hero",
		"programs_intro",
		"programs_cbr",
		"programs_aftercare",
		"programs_initiatives",
		"programs_features",
		"programs_cta",
	},
	"gallery": {
		"gallery_hero",
		"gallery_items",
		"gallery_impact_stats",
	},
}

// SectionKeys returns the registered section keys for a page slug.
func SectionKeys(slug string) ([]string, bool) {
	keys, ok := pageSections[slug]
	return keys, ok
}

// DefaultSection returns a deep copy of the default payload for a key,
// safe for the caller to mutate.
func DefaultSection(key string) (Section, bool) {
	def, ok := sectionDefaults[key]
	if !ok {
		return nil, false
	}
	return deepCopyMap(def), true
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
