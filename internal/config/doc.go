// Package config manages treemerge configuration.
//
// It handles:
//   - The per-root configuration file naming the ancestor and branch directories
//   - Conflict marker labels
//   - Resolving the effective directory layout for a merge run
package config
