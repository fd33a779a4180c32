// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "with special characters",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Page 123",
			expected: "page-123",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with leading/trailing spaces",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	slug := Slugify(long)
	if len(slug) > MaxSlugLength {
		t.Errorf("Slugify produced %d characters, max is %d", len(slug), MaxSlugLength)
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", slug)
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"a", true},
		{"", false},
		{"Hello-World", false},
		{"hello world", false},
		{"hello_world", false},
		{"-leading", false},
		{"trailing-", false},
	}

	for _, tt := range tests {
		if got := IsValidSlug(tt.slug); got != tt.valid {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.valid)
		}
	}
}
