// Package pathutil provides centralized path management for the account book
// and fixture files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths for the data directory, database, and fixtures.
type PathResolver struct {
	dataDir      string
	databasePath string
	fixturesDir  string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the root directory for all service data (e.g., ./data)
	DataDir string
	// DatabasePath is the path to the SQLite account book
	DatabasePath string
	// FixturesDir is the directory for account and request fixtures
	FixturesDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {DataDir}/ledger/accounts.db
// If FixturesDir is empty, it defaults to {DataDir}/fixtures
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir, "ledger", "accounts.db")
	}

	fixturesDir := config.FixturesDir
	if fixturesDir == "" {
		fixturesDir = filepath.Join(config.DataDir, "fixtures")
	}

	return &PathResolver{
		dataDir:      config.DataDir,
		databasePath: dbPath,
		fixturesDir:  fixturesDir,
	}
}

// GetDataDir returns the data root directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the account book file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetFixturesDir returns the fixtures directory.
func (p *PathResolver) GetFixturesDir() string {
	return p.fixturesDir
}

// ResolveFixture returns name unchanged when it is absolute or already exists
// relative to the working directory, and otherwise joins it to the fixtures
// directory.
func (p *PathResolver) ResolveFixture(name string) string {
	if filepath.IsAbs(name) || p.FileExists(name) {
		return name
	}
	return filepath.Join(p.fixturesDir, name)
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
