package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p := New(Config{DataDir: "data"})

	if got := p.GetDataDir(); got != "data" {
		t.Errorf("GetDataDir() = %q, expected %q", got, "data")
	}
	if got, want := p.GetDatabasePath(), filepath.Join("data", "ledger", "accounts.db"); got != want {
		t.Errorf("GetDatabasePath() = %q, expected %q", got, want)
	}
	if got, want := p.GetFixturesDir(), filepath.Join("data", "fixtures"); got != want {
		t.Errorf("GetFixturesDir() = %q, expected %q", got, want)
	}
}

func TestNewOverrides(t *testing.T) {
	p := New(Config{DataDir: "data", DatabasePath: "/var/lib/book.db", FixturesDir: "/srv/fixtures"})

	if got := p.GetDatabasePath(); got != "/var/lib/book.db" {
		t.Errorf("GetDatabasePath() = %q, expected %q", got, "/var/lib/book.db")
	}
	if got := p.GetFixturesDir(); got != "/srv/fixtures" {
		t.Errorf("GetFixturesDir() = %q, expected %q", got, "/srv/fixtures")
	}
}

func TestResolveFixture(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{DataDir: dir})

	existing := filepath.Join(dir, "accounts.yaml")
	if err := os.WriteFile(existing, []byte("accounts: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", existing, existing},
		{"relative missing", "request.yaml", filepath.Join(dir, "fixtures", "request.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ResolveFixture(tt.in); got != tt.want {
				t.Errorf("ResolveFixture(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{DataDir: dir})

	dbPath := p.GetDatabasePath()
	if err := p.EnsureParentDir(dbPath); err != nil {
		t.Fatalf("EnsureParentDir() error: %v", err)
	}
	if !p.FileExists(filepath.Dir(dbPath)) {
		t.Errorf("expected %s to exist", filepath.Dir(dbPath))
	}
	if p.FileExists(dbPath) {
		t.Errorf("EnsureParentDir should not create %s", dbPath)
	}
}
