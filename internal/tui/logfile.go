// Package tui provides terminal user interface components and utilities.
package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If TREEMERGE_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.treemerge/logs/treemerge.log
func GetLogFilePath() string {
	if customPath := os.Getenv("TREEMERGE_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "treemerge.log"
	}

	return filepath.Join(homeDir, ".treemerge", "logs", "treemerge.log")
}
