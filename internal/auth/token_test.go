// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "testing"

func TestGenerateToken(t *testing.T) {
	t1, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	t2, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if t1 == "" || t2 == "" {
		t.Fatal("empty token")
	}
	if t1 == t2 {
		t.Error("two generated tokens are identical")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	if h1 != h2 {
		t.Error("hashing the same token gave different results")
	}
	if h1 == HashToken("other-token") {
		t.Error("different tokens hash identically")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(h1))
	}
}
