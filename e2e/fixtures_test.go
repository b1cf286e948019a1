//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates the isolated HOME the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "searchbox-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	return dir, nil
}

// ConfigPath is the config file the app reads
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "searchbox.toml")
}

// WriteConfig writes a TOML config file into the workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	return os.WriteFile(tf.ConfigPath(), []byte(content), 0644)
}

// UseLocalCatalog makes the demo search an in-process catalog on a free port
// with a short debounce.
func (tf *TUITestFramework) UseLocalCatalog() []string {
	tf.Setenv("SEARCHBOX_CATALOG_ADDR", "127.0.0.1:0")
	tf.Setenv("SEARCHBOX_SEARCH_DEBOUNCE", "50ms")
	return []string{"--local-catalog"}
}
