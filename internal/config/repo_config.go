// Package config provides merge root configuration management,
// including reading and writing treemerge configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the configuration file inside a merge root
const FileName = ".treemerge_config"

// Default directory names and marker labels
const (
	DefaultAncestorDir = "master"
	DefaultBranchADir  = "branch_a"
	DefaultBranchBDir  = "branch_b"
)

// RootConfig represents the merge root configuration
type RootConfig struct {
	Ancestor *string `json:"ancestor,omitempty"`
	BranchA  *string `json:"branchA,omitempty"`
	BranchB  *string `json:"branchB,omitempty"`
	LabelA   *string `json:"labelA,omitempty"`
	LabelB   *string `json:"labelB,omitempty"`
}

// Path returns the configuration file path for a merge root
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// GetRootConfig reads the merge root configuration. A missing file yields
// the defaults; any other read failure is an error.
func GetRootConfig(root string) (*RootConfig, error) {
	data, err := os.ReadFile(Path(root))
	if os.IsNotExist(err) {
		return &RootConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read root config: %w", err)
	}

	var config RootConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse root config: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to the merge root
func (c *RootConfig) Save(root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("merge root does not exist: %w", err)
	}

	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(Path(root), configJSON, 0600)
}

// Layout is the resolved set of directories and labels for a merge run
type Layout struct {
	Root        string
	AncestorDir string
	BranchADir  string
	BranchBDir  string
	LabelA      string
	LabelB      string
}

// Overrides holds values that take precedence over the configuration file.
// Empty fields are ignored.
type Overrides struct {
	AncestorDir string
	BranchADir  string
	BranchBDir  string
	LabelA      string
	LabelB      string
}

// Resolve builds the effective layout for root: flags win over the config
// file, which wins over the defaults. Labels default to the branch directory
// names.
func Resolve(root string, o Overrides) (Layout, error) {
	config, err := GetRootConfig(root)
	if err != nil {
		return Layout{}, err
	}

	layout := Layout{
		Root:        root,
		AncestorDir: pick(o.AncestorDir, config.Ancestor, DefaultAncestorDir),
		BranchADir:  pick(o.BranchADir, config.BranchA, DefaultBranchADir),
		BranchBDir:  pick(o.BranchBDir, config.BranchB, DefaultBranchBDir),
	}
	layout.LabelA = pick(o.LabelA, config.LabelA, layout.BranchADir)
	layout.LabelB = pick(o.LabelB, config.LabelB, layout.BranchBDir)

	return layout, nil
}

// AncestorPath returns the absolute-or-relative path of the ancestor tree
func (l Layout) AncestorPath() string {
	return filepath.Join(l.Root, l.AncestorDir)
}

// BranchAPath returns the path of branch A's tree
func (l Layout) BranchAPath() string {
	return filepath.Join(l.Root, l.BranchADir)
}

// BranchBPath returns the path of branch B's tree
func (l Layout) BranchBPath() string {
	return filepath.Join(l.Root, l.BranchBDir)
}

// ToConfig converts the layout back into a storable configuration
func (l Layout) ToConfig() *RootConfig {
	return &RootConfig{
		Ancestor: stringPtr(l.AncestorDir),
		BranchA:  stringPtr(l.BranchADir),
		BranchB:  stringPtr(l.BranchBDir),
		LabelA:   stringPtr(l.LabelA),
		LabelB:   stringPtr(l.LabelB),
	}
}

func pick(flag string, configured *string, fallback string) string {
	if flag != "" {
		return flag
	}
	if configured != nil && *configured != "" {
		return *configured
	}
	return fallback
}

func stringPtr(s string) *string {
	return &s
}
