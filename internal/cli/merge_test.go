package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"treemerge.dev/treemerge/internal/config"
	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/testhelpers"
)

func divergentSetup(s *testhelpers.Scene) error {
	if err := s.WriteAll("f.txt", "L1\nL2\n"); err != nil {
		return err
	}
	if err := s.WriteBranchA("f.txt", "X\nL2\n"); err != nil {
		return err
	}
	if err := s.WriteBranchB("f.txt", "Y\nL2\n"); err != nil {
		return err
	}
	return s.WriteBranchB("new.txt", "new\n")
}

func TestMergeCommand(t *testing.T) {
	t.Parallel()

	t.Run("merges the given root", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, divergentSetup)

		output, err := runCommand(t, "merge", scene.Dir, "--yes")
		require.NoError(t, err, output)
		require.Contains(t, output, "Merge finished")
		testhelpers.ExpectFileContent(t, scene.AncestorFile("new.txt"), "new\n")
		testhelpers.ExpectFileContent(t, scene.AncestorFile("f.txt"),
			"<<<<<<< branch_a\nX\n=======\nY\n>>>>>>> branch_b\nL2\n")
	})

	t.Run("quiet flag suppresses output", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, divergentSetup)

		output, err := runCommand(t, "merge", scene.Dir, "--yes", "--quiet")
		require.NoError(t, err, output)
		require.Empty(t, output)
		testhelpers.ExpectFileContent(t, scene.AncestorFile("new.txt"), "new\n")
	})

	t.Run("diff context flag is passed to the preview", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteAll("f.txt", "1\n2\n3\n4\n5\n6\n7\n"); err != nil {
				return err
			}
			return s.WriteBranchA("f.txt", "1\n2\n3\nFOUR\n5\n6\n7\n")
		})

		output, err := runCommand(t, "merge", scene.Dir, "--diff", "--diff-context", "1")
		require.NoError(t, err, output)
		require.Contains(t, output, "@@ -3,3 +3,3 @@")
		require.Contains(t, output, " 3\n-4\n+FOUR\n 5\n")
		require.NotContains(t, output, " 2\n")
	})

	t.Run("dry run leaves the ancestor alone", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, divergentSetup)

		output, err := runCommand(t, "merge", scene.Dir, "--dry-run")
		require.NoError(t, err, output)
		require.Contains(t, output, "=== Merge plan (dry run) ===")
		testhelpers.ExpectNoFile(t, scene.AncestorFile("new.txt"))
		testhelpers.ExpectFileContent(t, scene.AncestorFile("f.txt"), "L1\nL2\n")
	})

	t.Run("diff implies dry run", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, divergentSetup)

		output, err := runCommand(t, "merge", scene.Dir, "--diff")
		require.NoError(t, err, output)
		require.Contains(t, output, "+++ b/new.txt")
		testhelpers.ExpectNoFile(t, scene.AncestorFile("new.txt"))
	})

	t.Run("labels and directories come from flags", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "base"), "f.txt", "L1\n"))
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "ours"), "f.txt", "X\n"))
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "theirs"), "f.txt", "Y\n"))

		output, err := runCommand(t, "merge", scene.Dir, "--yes",
			"--ancestor", "base", "--branch-a", "ours", "--branch-b", "theirs", "--label-b", "upstream")
		require.NoError(t, err, output)
		testhelpers.ExpectFileContent(t, filepath.Join(scene.Dir, "base", "f.txt"),
			"<<<<<<< ours\nX\n=======\nY\n>>>>>>> upstream\n")
	})

	t.Run("layout comes from the config file", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "base"), "f.txt", "L1\n"))
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "left"), "f.txt", "L1\n"))
		require.NoError(t, testhelpers.WriteFile(filepath.Join(scene.Dir, "right"), "f.txt", "changed\n"))

		layout := config.Layout{Root: scene.Dir, AncestorDir: "base", BranchADir: "left", BranchBDir: "right", LabelA: "left", LabelB: "right"}
		require.NoError(t, layout.ToConfig().Save(scene.Dir))

		output, err := runCommand(t, "merge", scene.Dir, "-y")
		require.NoError(t, err, output)
		testhelpers.ExpectFileContent(t, filepath.Join(scene.Dir, "base", "f.txt"), "changed\n")
	})

	t.Run("missing branch directory fails", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, divergentSetup)

		output, err := runCommand(t, "merge", scene.Dir, "--yes", "--branch-b", "nope")
		require.Error(t, err)
		require.ErrorIs(t, err, errors.ErrNotFound)
		require.Contains(t, output, "branch B directory does not exist")
		testhelpers.ExpectNoFile(t, scene.AncestorFile("new.txt"))
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		t.Parallel()
		_, err := runCommand(t, "merge", "one", "two")
		require.Error(t, err)
	})
}

func TestStatusCommand(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, divergentSetup)

	output, err := runCommand(t, "status", scene.Dir)
	require.NoError(t, err, output)
	require.Contains(t, output, "=== Branch changes ===")
	require.Contains(t, output, "Content conflicts (1):")
	require.Contains(t, output, "f.txt: same line changed differently")
	testhelpers.ExpectNoFile(t, scene.AncestorFile("new.txt"))
}
