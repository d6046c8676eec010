// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - markdown help screen rendered with glamour.

package compose

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# ghostline

Inline completions for the note composer. Type at least ten characters
and pause; a dimmed continuation appears after your cursor.

## Keys

| Key | Action |
| --- | ------ |
| Tab | Accept the suggestion (or move to the next field) |
| Ctrl+Z | Undo the last accept |
| Esc | Dismiss the suggestion (or quit with none showing) |
| Ctrl+Space | Request a suggestion immediately |
| Shift+Tab | Previous field |
| Ctrl+S | Save the note |
| Ctrl+H / F1 | Toggle this help |
| Ctrl+C | Quit |

## Behavior

- Suggestions only appear for text with at least ten characters that is
  not all digits or all symbols.
- Typing the suggested characters consumes the suggestion in place; any
  other edit discards it.
- Retyping the exact text of the last request answers from cache without
  another network call.
`

// renderHelp renders the help markdown for the current width.
func renderHelp(width int) string {
	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	if wrap > 100 {
		wrap = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
