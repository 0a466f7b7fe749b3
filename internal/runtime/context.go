// Package runtime provides a context type that holds the logger and layout
// for use throughout the application. This avoids passing multiple parameters.
package runtime

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"treemerge.dev/treemerge/internal/config"
	"treemerge.dev/treemerge/internal/tui"
)

// Context provides access to the layout and output for commands
type Context struct {
	Splog  *tui.Splog
	Layout config.Layout
}

// NewContext creates a new context with the given layout and logger
func NewContext(layout config.Layout, splog *tui.Splog) *Context {
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Splog:  splog,
		Layout: layout,
	}
}

// GetContext resolves the merge root and its layout and sets up logging.
// An empty root means the working directory. Console output goes to out.
// File logging is best effort: if the log file cannot be opened, console
// logging is still returned.
func GetContext(root string, overrides config.Overrides, out io.Writer) (*Context, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve merge root: %w", err)
	}

	layout, err := config.Resolve(absRoot, overrides)
	if err != nil {
		return nil, err
	}

	splog, err := tui.NewSplogWithOutput(out, tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplogWithWriter(out)
		splog.Debug("File logging disabled: %v", err)
	}

	return NewContext(layout, splog), nil
}

// Close releases resources held by the context
func (c *Context) Close() error {
	return c.Splog.Close()
}
