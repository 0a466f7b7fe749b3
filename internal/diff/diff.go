// Package diff renders unified-diff previews of planned writes.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"
)

const defaultContext = 3

// Options controls preview generation.
type Options struct {
	// Context is the number of context lines in each hunk. 0 means 3.
	Context int

	// MaxBytes skips the diff when old+new exceed it. 0 means no limit.
	MaxBytes int
}

// Preview produces a unified patch from the current ancestor lines of path to
// the planned lines. A nil old slice means the file does not exist yet.
// It returns "" when the two versions are identical.
func Preview(path string, old, planned []string, opt Options) string {
	if opt.MaxBytes > 0 && size(old)+size(planned) > opt.MaxBytes {
		return omitted(path)
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = defaultContext
	}

	from := "a/" + path
	if old == nil {
		from = "/dev/null"
		old = []string{}
	}

	u := difflib.UnifiedDiff{
		A:        old,
		B:        planned,
		FromFile: from,
		ToFile:   "b/" + path,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return omitted(path)
	}
	return s
}

func size(lines []string) int {
	n := 0
	for _, l := range lines {
		n += len(l)
	}
	return n
}

// omitted returns a compact placeholder when a diff cannot be shown.
func omitted(path string) string {
	return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@\n# diff omitted\n", path, path)
}
