// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSectionStringFields(t *testing.T) {
	def := map[string]any{
		"title":       "Default Title",
		"description": "Default description",
	}
	fetched := map[string]any{
		"title":       "CMS Title",
		"description": "   ", // blank after trimming
	}

	got := MergeSection(def, fetched)
	assert.Equal(t, "CMS Title", got["title"])
	assert.Equal(t, "Default description", got["description"])
}

func TestMergeSectionNestedObjects(t *testing.T) {
	def := map[string]any{
		"primaryCta": map[string]any{"label": "Join", "href": "/membership"},
	}
	fetched := map[string]any{
		"primaryCta": map[string]any{"label": "Apply Now", "href": ""},
	}

	got := MergeSection(def, fetched)
	cta, ok := got["primaryCta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Apply Now", cta["label"])
	assert.Equal(t, "/membership", cta["href"], "empty nested string keeps default")
}

func TestMergeSectionArrays(t *testing.T) {
	def := map[string]any{
		"slides": []any{
			map[string]any{"title": "Default A"},
			map[string]any{"title": "Default B"},
		},
	}

	t.Run("non-empty array replaces wholesale", func(t *testing.T) {
		fetched := map[string]any{
			"slides": []any{map[string]any{"title": "Only Slide"}},
		}
		got := MergeSection(def, fetched)
		slides := got["slides"].([]any)
		require.Len(t, slides, 1)
		assert.Equal(t, "Only Slide", slides[0].(map[string]any)["title"])
	})

	t.Run("empty array keeps default", func(t *testing.T) {
		got := MergeSection(def, map[string]any{"slides": []any{}})
		assert.Len(t, got["slides"], 2)
	})

	t.Run("missing array keeps default", func(t *testing.T) {
		got := MergeSection(def, map[string]any{})
		assert.Len(t, got["slides"], 2)
	})
}

func TestMergeSectionScalarAndUnknownFields(t *testing.T) {
	def := map[string]any{"count": float64(3), "enabled": true}
	fetched := map[string]any{
		"count":   float64(7),
		"enabled": false,
		"extra":   "carried through",
	}

	got := MergeSection(def, fetched)
	assert.Equal(t, float64(7), got["count"])
	assert.Equal(t, false, got["enabled"])
	assert.Equal(t, "carried through", got["extra"])
}

func TestMergeSectionNilFetched(t *testing.T) {
	def := map[string]any{"title": "Default"}
	got := MergeSection(def, nil)
	assert.Equal(t, "Default", got["title"])

	// Result must be independent of the default
	got["title"] = "mutated"
	assert.Equal(t, "Default", def["title"])
}

func TestDefaultSectionDeepCopy(t *testing.T) {
	first, ok := DefaultSection("cta")
	require.True(t, ok)
	first["title"] = "mutated"

	second, ok := DefaultSection("cta")
	require.True(t, ok)
	assert.NotEqual(t, "mutated", second["title"])
}

func TestSectionKeysCoverAllDefaults(t *testing.T) {
	seen := map[string]bool{}
	for slug := range pageSections {
		keys, ok := SectionKeys(slug)
		require.True(t, ok)
		for _, key := range keys {
			if _, ok := sectionDefaults[key]; !ok {
				t.Errorf("page %q references key %q with no default payload", slug, key)
			}
			seen[key] = true
		}
	}
	for key := range sectionDefaults {
		if !seen[key] {
			t.Errorf("default payload %q is not referenced by any page", key)
		}
	}
}
