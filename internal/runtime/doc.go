// Package runtime provides the execution context for treemerge commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the logger and the resolved directory layout of the merge root.
package runtime
