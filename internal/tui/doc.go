// Package tui provides the terminal user interface for treemerge.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Confirmation prompts (using survey)
package tui
