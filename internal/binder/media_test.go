// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import "testing"

func TestResolveMediaURL(t *testing.T) {
	const origin = "http://localhost:8080"

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"empty", "", ""},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"bundled asset", "/assets/hero/main.jpg", "/assets/hero/main.jpg"},
		{"rooted upload", "/uploads/media/abc/pic.jpg", origin + "/uploads/media/abc/pic.jpg"},
		{"bare path", "uploads/media/abc/pic.jpg", origin + "/uploads/media/abc/pic.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMediaURL(origin, tt.url); got != tt.expected {
				t.Errorf("ResolveMediaURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestResolveSectionMedia(t *testing.T) {
	const origin = "http://localhost:8080"
	section := map[string]any{
		"image": "/uploads/media/1/a.jpg",
		"slides": []any{
			map[string]any{
				"image":       "uploads/media/2/b.jpg",
				"imageMobile": "/assets/hero/mobile.jpg",
				"title":       "/uploads/not-an-image-field",
			},
		},
	}

	resolveSectionMedia(origin, section)

	if got := section["image"]; got != origin+"/uploads/media/1/a.jpg" {
		t.Errorf("top-level image = %v", got)
	}
	slide := section["slides"].([]any)[0].(map[string]any)
	if got := slide["image"]; got != origin+"/uploads/media/2/b.jpg" {
		t.Errorf("nested image = %v", got)
	}
	if got := slide["imageMobile"]; got != "/assets/hero/mobile.jpg" {
		t.Errorf("bundled asset rewritten: %v", got)
	}
	if got := slide["title"]; got != "/uploads/not-an-image-field" {
		t.Errorf("non-media field rewritten: %v", got)
	}
}
