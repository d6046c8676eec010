// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest provides the HTTP client for the completion API.
package suggest

// ActionGenerateSuggestion is the action understood by the completion endpoint.
const ActionGenerateSuggestion = "generate_suggestion"

// Context carries optional page/document metadata sent alongside the text.
// All fields are optional; the server uses them to ground the completion.
type Context struct {
	URL    string   `json:"url,omitempty"`
	Title  string   `json:"title,omitempty"`
	Path   string   `json:"path,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Request is the wire format of a completion request.
type Request struct {
	Action  string   `json:"action"`
	Text    string   `json:"text"`
	Context *Context `json:"context,omitempty"`
}

// Response is the wire format of a completion response.
// An empty Suggestion means "nothing to suggest" and is not an error.
type Response struct {
	Suggestion string `json:"suggestion"`
}

// apiError is the error payload some backends return on non-2xx status.
type apiError struct {
	Error string `json:"error"`
}
