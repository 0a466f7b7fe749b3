package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"treemerge.dev/treemerge/internal/config"
)

// Scene represents a merge root in a temporary directory holding an
// ancestor tree and two branch trees.
type Scene struct {
	Dir    string
	Layout config.Layout
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new merge root with the default directory layout.
// The three tree directories exist but are empty.
// It automatically handles cleanup using t.TempDir().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	layout, err := config.Resolve(dir, config.Overrides{})
	if err != nil {
		t.Fatalf("Failed to resolve layout: %v", err)
	}

	scene := &Scene{Dir: dir, Layout: layout}
	for _, root := range []string{layout.AncestorPath(), layout.BranchAPath(), layout.BranchBPath()} {
		if err := os.MkdirAll(root, 0750); err != nil {
			t.Fatalf("Failed to create tree %s: %v", root, err)
		}
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// WriteFile writes content to rel inside the tree rooted at root
func WriteFile(root, rel, content string) error {
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// WriteAncestor writes a file into the ancestor tree
func (s *Scene) WriteAncestor(rel, content string) error {
	return WriteFile(s.Layout.AncestorPath(), rel, content)
}

// WriteBranchA writes a file into branch A's tree
func (s *Scene) WriteBranchA(rel, content string) error {
	return WriteFile(s.Layout.BranchAPath(), rel, content)
}

// WriteBranchB writes a file into branch B's tree
func (s *Scene) WriteBranchB(rel, content string) error {
	return WriteFile(s.Layout.BranchBPath(), rel, content)
}

// WriteAll writes the same file into all three trees
func (s *Scene) WriteAll(rel, content string) error {
	if err := s.WriteAncestor(rel, content); err != nil {
		return err
	}
	if err := s.WriteBranchA(rel, content); err != nil {
		return err
	}
	return s.WriteBranchB(rel, content)
}

// AncestorFile returns the filesystem path of rel in the ancestor tree
func (s *Scene) AncestorFile(rel string) string {
	return filepath.Join(s.Layout.AncestorPath(), filepath.FromSlash(rel))
}

// SharedFileSetup writes one unchanged file into every tree.
func SharedFileSetup(scene *Scene) error {
	return scene.WriteAll("README.md", "# shared\n")
}
