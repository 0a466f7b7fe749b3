// Package testhelpers provides testing utilities for treemerge,
// including a scene system for building merge roots and file assertions.
package testhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectFileContent asserts that the file at path holds exactly expected.
func ExpectFileContent(t *testing.T, path string, expected string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read %s", path)
	require.Equal(t, expected, string(data), "Unexpected content in %s", path)
}

// ExpectNoFile asserts that nothing exists at path.
func ExpectNoFile(t *testing.T, path string) {
	t.Helper()

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "Expected %s not to exist", path)
}
