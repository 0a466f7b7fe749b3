package tree

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"treemerge.dev/treemerge/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("returns nested files relative to root", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeFile(t, root, "a.txt", "a")
		writeFile(t, root, "dir/b.txt", "b")
		writeFile(t, root, "dir/sub/c.txt", "c")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0750))

		files, err := Scan(root)
		require.NoError(t, err)
		require.Equal(t, []string{"a.txt", "dir/b.txt", "dir/sub/c.txt"}, files.Sorted())
	})

	t.Run("returns empty set for empty directory", func(t *testing.T) {
		t.Parallel()

		files, err := Scan(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, 0, files.Len())
	})

	t.Run("fails with not found for missing root", func(t *testing.T) {
		t.Parallel()

		_, err := Scan(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("fails with not found when root is a file", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeFile(t, root, "file.txt", "x")

		_, err := Scan(filepath.Join(root, "file.txt"))
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("skips symlinks", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks require privileges on windows")
		}
		t.Parallel()
		root := t.TempDir()
		writeFile(t, root, "real.txt", "x")
		require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))

		files, err := Scan(root)
		require.NoError(t, err)
		require.Equal(t, []string{"real.txt"}, files.Sorted())
	})

	t.Run("follows a symlinked root", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks require privileges on windows")
		}
		t.Parallel()
		dir := t.TempDir()
		real := filepath.Join(dir, "real")
		writeFile(t, real, "a.txt", "a")
		writeFile(t, real, "sub/b.txt", "b")
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(real, link))

		direct, err := Scan(real)
		require.NoError(t, err)
		viaLink, err := Scan(link)
		require.NoError(t, err)
		require.Equal(t, []string{"a.txt", "sub/b.txt"}, viaLink.Sorted())
		require.Equal(t, direct.Sorted(), viaLink.Sorted())
	})
}

func TestFileSet(t *testing.T) {
	t.Parallel()

	a := NewFileSet("x", "y", "z")
	b := NewFileSet("y", "z", "w")

	require.Equal(t, []string{"y", "z"}, a.Intersect(b).Sorted())
	require.Equal(t, []string{"x"}, a.Difference(b).Sorted())
	require.Equal(t, []string{"w", "x", "y", "z"}, a.Union(b).Sorted())
	require.True(t, a.Contains("x"))
	require.False(t, a.Contains("w"))

	// Receivers are left untouched
	require.Equal(t, []string{"x", "y", "z"}, a.Sorted())
	require.Equal(t, []string{"w", "y", "z"}, b.Sorted())
}
