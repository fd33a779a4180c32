// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// fetchTimeout bounds a single page fetch. A slow CMS degrades to
// defaults instead of blocking the render.
const fetchTimeout = 5 * time.Second

// Client fetches resolved pages from the CMS and binds them against
// the built-in defaults.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a binder client for the CMS at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
		logger:  logger,
	}
}

// BoundSection is one section ready to render.
type BoundSection struct {
	Key     string
	Content map[string]any
}

// PageView is a fully bound page. Degraded is set when any part of the
// fetch failed and the page rendered from defaults.
type PageView struct {
	Slug     string
	Title    string
	Sections []BoundSection
	Degraded bool
}

type pagePayload struct {
	Data struct {
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		Sections []struct {
			Key     string          `json:"key"`
			Content json.RawMessage `json:"content"`
		} `json:"sections"`
	} `json:"data"`
}

// PageView fetches a page by slug and binds every registered section
// against its default payload. Unregistered slugs return an error; any
// fetch or decode failure returns the full-default page with Degraded
// set, so the caller always has something to render.
func (c *Client) PageView(ctx context.Context, slug string) (PageView, error) {
	keys, ok := SectionKeys(slug)
	if !ok {
		return PageView{}, fmt.Errorf("unknown page %q", slug)
	}

	fetched, err := c.fetchPage(ctx, slug)
	if err != nil {
		c.logger.Warn("page fetch failed, rendering defaults", "slug", slug, "error", err)
		return c.defaultPage(slug, keys), nil
	}

	view := PageView{
		Slug:     slug,
		Title:    fetched.Data.Title,
		Sections: make([]BoundSection, 0, len(keys)),
	}

	contentByKey := make(map[string]map[string]any, len(fetched.Data.Sections))
	for _, s := range fetched.Data.Sections {
		var content map[string]any
		if err := json.Unmarshal(s.Content, &content); err != nil {
			c.logger.Warn("skipping malformed section content", "slug", slug, "key", s.Key, "error", err)
			view.Degraded = true
			continue
		}
		contentByKey[s.Key] = content
	}

	for _, key := range keys {
		def, _ := DefaultSection(key)
		bound := MergeSection(def, contentByKey[key])
		resolveSectionMedia(c.baseURL, bound)
		view.Sections = append(view.Sections, BoundSection{Key: key, Content: bound})
		delete(contentByKey, key)
	}

	// Sections the CMS added beyond the registered set pass through
	// in their fetched order.
	for _, s := range fetched.Data.Sections {
		if content, ok := contentByKey[s.Key]; ok {
			resolveSectionMedia(c.baseURL, content)
			view.Sections = append(view.Sections, BoundSection{Key: s.Key, Content: content})
			delete(contentByKey, s.Key)
		}
	}

	return view, nil
}

func (c *Client) defaultPage(slug string, keys []string) PageView {
	view := PageView{
		Slug:     slug,
		Degraded: true,
		Sections: make([]BoundSection, 0, len(keys)),
	}
	for _, key := range keys {
		def, _ := DefaultSection(key)
		resolveSectionMedia(c.baseURL, def)
		view.Sections = append(view.Sections, BoundSection{Key: key, Content: def})
	}
	return view
}

func (c *Client) fetchPage(ctx context.Context, slug string) (*pagePayload, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/pages/"+slug, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var payload pagePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &payload, nil
}
