package conflict

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"treemerge.dev/treemerge/internal/changes"
	"treemerge.dev/treemerge/internal/errors"
	"treemerge.dev/treemerge/internal/tree"
	"treemerge.dev/treemerge/internal/tui"
	"treemerge.dev/treemerge/testhelpers"
)

// detect scans the scene and runs both detection stages
func detect(t *testing.T, scene *testhelpers.Scene) (Report, Plan) {
	t.Helper()
	log := tui.NewSplogWithWriter(io.Discard)

	trees := Trees{
		Ancestor: testhelpers.Must(tree.Load("master", scene.Layout.AncestorPath())),
		A:        testhelpers.Must(tree.Load("branch_a", scene.Layout.BranchAPath())),
		B:        testhelpers.Must(tree.Load("branch_b", scene.Layout.BranchBPath())),
	}
	changesA := changes.Detect(trees.Ancestor, trees.A, log)
	changesB := changes.Detect(trees.Ancestor, trees.B, log)
	return Detect(trees, changesA, changesB, testMarkers, log)
}

func TestDetectAdds(t *testing.T) {
	t.Parallel()

	t.Run("disjoint adds are all planned", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteBranchA("a_only.txt", "a\n"); err != nil {
				return err
			}
			return s.WriteBranchB("sub/b_only.txt", "b\n")
		})

		report, plan := detect(t, scene)
		require.Equal(t, 0, report.AddConflicts.Len())
		require.Equal(t, []DirectAdd{
			{Path: "a_only.txt", Source: SideA},
			{Path: "sub/b_only.txt", Source: SideB},
		}, plan.DirectAdds)
		require.False(t, report.HasConflicts())
	})

	t.Run("same path added on both sides is an add conflict", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteBranchA("both.txt", "a\n"); err != nil {
				return err
			}
			if err := s.WriteBranchB("both.txt", "b\n"); err != nil {
				return err
			}
			return s.WriteBranchA("extra.txt", "x\n")
		})

		report, plan := detect(t, scene)
		require.Equal(t, []string{"both.txt"}, report.AddConflicts.Sorted())
		require.Equal(t, []DirectAdd{{Path: "extra.txt", Source: SideA}}, plan.DirectAdds)
		require.NotContains(t, plan.ContentWrites, "both.txt")
	})

	t.Run("identical content added on both sides is still a conflict", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteBranchA("same.txt", "x\n"); err != nil {
				return err
			}
			return s.WriteBranchB("same.txt", "x\n")
		})

		report, plan := detect(t, scene)
		require.Equal(t, []string{"same.txt"}, report.AddConflicts.Sorted())
		require.Empty(t, plan.DirectAdds)
	})
}

func TestDetectModifications(t *testing.T) {
	t.Parallel()

	t.Run("single-side modification copies that side byte for byte", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteAll("a.txt", "base\n"); err != nil {
				return err
			}
			if err := s.WriteBranchA("a.txt", "changed in a\nno newline"); err != nil {
				return err
			}
			if err := s.WriteAll("b.txt", "base\n"); err != nil {
				return err
			}
			return s.WriteBranchB("b.txt", "changed in b\r\n")
		})

		report, plan := detect(t, scene)
		require.False(t, report.HasConflicts())
		require.Equal(t, []string{"a.txt", "b.txt"}, plan.WritePaths())
		require.Equal(t, "changed in a\nno newline", plan.ContentWrites["a.txt"].String())
		require.Equal(t, "changed in b\r\n", plan.ContentWrites["b.txt"].String())
	})

	t.Run("unchanged files are not planned", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, testhelpers.SharedFileSetup)

		report, plan := detect(t, scene)
		require.False(t, report.HasConflicts())
		require.True(t, plan.IsEmpty())
	})

	t.Run("both sides modified without overlap merge cleanly", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteAncestor("f.txt", "one\ntwo\nthree\n"); err != nil {
				return err
			}
			if err := s.WriteBranchA("f.txt", "ONE\ntwo\nthree\n"); err != nil {
				return err
			}
			return s.WriteBranchB("f.txt", "one\ntwo\nTHREE\n")
		})

		report, plan := detect(t, scene)
		require.Equal(t, 0, report.ContentConflicts.Len())
		require.Equal(t, "ONE\ntwo\nTHREE\n", plan.ContentWrites["f.txt"].String())
	})

	t.Run("divergent edits are planned with markers and reported", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteAncestor("f.txt", "L1\n"); err != nil {
				return err
			}
			if err := s.WriteBranchA("f.txt", "X\n"); err != nil {
				return err
			}
			return s.WriteBranchB("f.txt", "Y\n")
		})

		report, plan := detect(t, scene)
		require.Equal(t, []string{"f.txt"}, report.ContentConflicts.Sorted())
		require.Equal(t, []string{"f.txt"}, report.Unresolved().Sorted())
		require.Equal(t,
			"<<<<<<< branch_a\nX\n=======\nY\n>>>>>>> branch_b\n",
			plan.ContentWrites["f.txt"].String())
	})

	t.Run("unreadable branch file is skipped", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission bits are not enforced for root")
		}
		t.Parallel()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.WriteAncestor("f.txt", "base\n"); err != nil {
				return err
			}
			if err := s.WriteBranchA("f.txt", "aa\n"); err != nil {
				return err
			}
			return s.WriteBranchB("f.txt", "bb\n")
		})
		log := tui.NewSplogWithWriter(io.Discard)
		trees := Trees{
			Ancestor: testhelpers.Must(tree.Load("master", scene.Layout.AncestorPath())),
			A:        testhelpers.Must(tree.Load("branch_a", scene.Layout.BranchAPath())),
			B:        testhelpers.Must(tree.Load("branch_b", scene.Layout.BranchBPath())),
		}
		changesA := changes.Detect(trees.Ancestor, trees.A, log)
		changesB := changes.Detect(trees.Ancestor, trees.B, log)

		locked := trees.B.Path("f.txt")
		require.NoError(t, os.Chmod(locked, 0))
		t.Cleanup(func() { _ = os.Chmod(locked, 0600) })

		report, plan := Detect(trees, changesA, changesB, testMarkers, log)
		require.NotContains(t, plan.ContentWrites, "f.txt")
		require.Len(t, report.Skipped, 1)
		require.ErrorIs(t, report.Skipped[0].Err, errors.ErrReadFailed)
	})
}

func TestDetectBinaryContent(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.WriteAll("f.bin", "a\x00\n"); err != nil {
			return err
		}
		if err := s.WriteBranchA("f.bin", "a\x00\nfrom a\n"); err != nil {
			return err
		}
		return s.WriteBranchB("f.bin", "a\x00\nfrom b\n")
	})
	var out bytes.Buffer
	log := tui.NewSplogWithWriter(&out)
	trees := Trees{
		Ancestor: testhelpers.Must(tree.Load("master", scene.Layout.AncestorPath())),
		A:        testhelpers.Must(tree.Load("branch_a", scene.Layout.BranchAPath())),
		B:        testhelpers.Must(tree.Load("branch_b", scene.Layout.BranchBPath())),
	}
	changesA := changes.Detect(trees.Ancestor, trees.A, log)
	changesB := changes.Detect(trees.Ancestor, trees.B, log)

	report, plan := Detect(trees, changesA, changesB, testMarkers, log)

	require.Contains(t, out.String(), "f.bin in master looks like binary content; merging it as text")
	require.Contains(t, out.String(), "f.bin in branch_b looks like binary content")
	require.Empty(t, report.Skipped)
	require.Equal(t, []string{"f.bin"}, report.ContentConflicts.Sorted())
	require.Equal(t,
		"a\x00\n<<<<<<< branch_a\nfrom a\n=======\nfrom b\n>>>>>>> branch_b\n",
		plan.ContentWrites["f.bin"].String())
}
