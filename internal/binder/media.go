// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import "strings"

// ResolveMediaURL turns a stored media reference into a URL the browser
// can load. Absolute URLs and bundled front-end assets pass through
// untouched; anything else resolves against the CMS origin.
func ResolveMediaURL(origin, url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case strings.HasPrefix(url, "/assets/"):
		return url
	case strings.HasPrefix(url, "/"):
		return origin + url
	default:
		return origin + "/" + url
	}
}

// mediaFields are the section fields holding media references.
var mediaFields = map[string]bool{
	"image":       true,
	"imageMobile": true,
}

// resolveSectionMedia rewrites media reference fields throughout a
// section payload, descending into nested objects and arrays.
func resolveSectionMedia(origin string, section map[string]any) {
	for key, val := range section {
		switch v := val.(type) {
		case string:
			if mediaFields[key] {
				section[key] = ResolveMediaURL(origin, v)
			}
		case map[string]any:
			resolveSectionMedia(origin, v)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					resolveSectionMedia(origin, m)
				}
			}
		}
	}
}
