package tree

import (
	"sort"

	"github.com/samber/lo"
)

// FileSet is a set of forward-slash relative file paths.
// Set operations return new sets and never modify their receivers.
type FileSet map[string]struct{}

// NewFileSet builds a set from paths
func NewFileSet(paths ...string) FileSet {
	return lo.SliceToMap(paths, func(p string) (string, struct{}) {
		return p, struct{}{}
	})
}

// Contains reports whether path is in the set
func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Len returns the number of paths in the set
func (s FileSet) Len() int {
	return len(s)
}

// Sorted returns the paths in lexical order
func (s FileSet) Sorted() []string {
	paths := lo.Keys(s)
	sort.Strings(paths)
	return paths
}

// Intersect returns the paths present in both sets
func (s FileSet) Intersect(other FileSet) FileSet {
	return NewFileSet(lo.Filter(lo.Keys(s), func(p string, _ int) bool {
		return other.Contains(p)
	})...)
}

// Difference returns the paths of s that are not in other
func (s FileSet) Difference(other FileSet) FileSet {
	return NewFileSet(lo.Reject(lo.Keys(s), func(p string, _ int) bool {
		return other.Contains(p)
	})...)
}

// Union returns the paths present in either set
func (s FileSet) Union(other FileSet) FileSet {
	return NewFileSet(append(lo.Keys(s), lo.Keys(other)...)...)
}
