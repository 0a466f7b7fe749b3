package testhelpers_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"treemerge.dev/treemerge/testhelpers"
)

// TestExampleUsage demonstrates how to use the testhelpers package.
func TestExampleUsage(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.SharedFileSetup)

	for _, root := range []string{scene.Layout.AncestorPath(), scene.Layout.BranchAPath(), scene.Layout.BranchBPath()} {
		info, err := os.Stat(root)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	testhelpers.ExpectFileContent(t, scene.AncestorFile("README.md"), "# shared\n")
	testhelpers.ExpectNoFile(t, scene.AncestorFile("missing.txt"))
}
