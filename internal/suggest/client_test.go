// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// GENERATE SUGGESTION TESTS
// =============================================================================

func TestGenerateSuggestion_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/suggest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{Suggestion: " my manager about the project"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	text, err := client.GenerateSuggestion(context.Background(), "I am writing a letter to", &Context{
		Title:  "Drafts",
		Labels: []string{"email"},
	})
	if err != nil {
		t.Fatalf("GenerateSuggestion: %v", err)
	}
	if text != " my manager about the project" {
		t.Errorf("suggestion = %q", text)
	}

	if got.Action != ActionGenerateSuggestion {
		t.Errorf("action = %q, want %q", got.Action, ActionGenerateSuggestion)
	}
	if got.Text != "I am writing a letter to" {
		t.Errorf("text = %q", got.Text)
	}
	if got.Context == nil || got.Context.Title != "Drafts" {
		t.Errorf("context not forwarded: %+v", got.Context)
	}
}

func TestGenerateSuggestion_EmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Suggestion: ""})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	text, err := client.GenerateSuggestion(context.Background(), "some perfectly long input", nil)
	if err != nil {
		t.Fatalf("empty suggestion should not error, got %v", err)
	}
	if text != "" {
		t.Errorf("suggestion = %q, want empty", text)
	}
}

func TestGenerateSuggestion_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "upstream model unavailable"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := client.GenerateSuggestion(context.Background(), "some perfectly long input", nil)
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "upstream model unavailable") {
		t.Errorf("server message not propagated: %v", err)
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeInvalidResponse {
		t.Errorf("expected ErrTypeInvalidResponse, got %v", err)
	}
}

func TestGenerateSuggestion_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := client.GenerateSuggestion(context.Background(), "some perfectly long input", nil)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestGenerateSuggestion_ConnectionRefused(t *testing.T) {
	// Port 1 is essentially guaranteed to refuse connections.
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := client.GenerateSuggestion(context.Background(), "some perfectly long input", nil)
	if !IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestGenerateSuggestion_TruncatesLongText(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(Response{Suggestion: "x"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, MaxTextLen: 16})
	long := strings.Repeat("a", 30) + "suffix"
	if _, err := client.GenerateSuggestion(context.Background(), long, nil); err != nil {
		t.Fatalf("GenerateSuggestion: %v", err)
	}
	if len([]rune(got.Text)) != 16 {
		t.Errorf("sent %d runes, want 16", len([]rune(got.Text)))
	}
	if !strings.HasSuffix(got.Text, "suffix") {
		t.Errorf("truncation should keep the tail, got %q", got.Text)
	}
}

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	if err := client.CheckReachable(context.Background()); err != nil {
		t.Errorf("CheckReachable: %v", err)
	}

	down := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})
	if err := down.CheckReachable(context.Background()); !IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
}

func TestDefaultsFilledIn(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	cfg := client.GetConfig()
	if cfg.BaseURL == "" || cfg.Timeout == 0 || cfg.MaxTextLen == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if nilClient := NewClientWithConfig(nil); nilClient.GetConfig().BaseURL == "" {
		t.Error("nil config should fall back to defaults")
	}
}
