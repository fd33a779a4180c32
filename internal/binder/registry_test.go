// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionKeysPerPage(t *testing.T) {
	tests := []struct {
		slug string
		keys []string
	}{
		{"home", []string{
			"hero_slides", "who_we_are", "impact_stats", "programs",
			"testimonials", "news_updates", "cta",
		}},
		{"about", []string{
			"about_hero", "about_story", "about_mission_vision",
			"about_values", "about_leadership",
		}},
		{"programs", []string{
			"programs_hero", "programs_intro", "programs_cbr",
			"programs_aftercare", "programs_initiatives",
			"programs_features", "programs_cta",
		}},
		{"gallery", []string{
			"gallery_hero", "gallery_items", "gallery_impact_stats",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			keys, ok := SectionKeys(tt.slug)
			require.True(t, ok)
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestDefaultSectionShapes(t *testing.T) {
	features, ok := DefaultSection("programs_features")
	require.True(t, ok)
	assert.NotEmpty(t, features["title"])
	assert.NotEmpty(t, features["features"])

	cta, ok := DefaultSection("programs_cta")
	require.True(t, ok)
	primary, ok := cta["primaryCta"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, primary["label"])

	stats, ok := DefaultSection("gallery_impact_stats")
	require.True(t, ok)
	assert.NotEmpty(t, stats["stats"])
}
