package apptable

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTable_Resolve(t *testing.T) {
	tbl := FromMap(DefaultAliases)

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"exact alias", "browser", "firefox", true},
		{"case and space", "  VSCode ", "code", true},
		{"spaced name", "vs code", "code", true},
		{"fuzzy prefix", "calc", "gnome-calculator", true},
		{"fuzzy subsequence", "sptfy", "spotify", true},
		{"too short for fuzzy", "zz", "", false},
		{"unknown", "blender", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tbl.Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTable_Refresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	if err := os.WriteFile(path, []byte("apps:\n  Obsidian: obsidian\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tbl, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd, ok := tbl.Resolve("obsidian"); !ok || cmd != "obsidian" {
		t.Errorf("expected file alias, got %q %v", cmd, ok)
	}
	if _, ok := tbl.Resolve("terminal"); !ok {
		t.Error("expected defaults to remain")
	}

	if err := os.WriteFile(path, []byte("apps:\n  terminal: kitty\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if cmd, _ := tbl.Resolve("terminal"); cmd != "kitty" {
		t.Errorf("expected refreshed alias kitty, got %q", cmd)
	}
	if _, ok := tbl.Resolve("obsidian"); ok {
		t.Error("expected removed alias to be gone after refresh")
	}
}

func TestTable_MissingFileUsesDefaults(t *testing.T) {
	tbl, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != len(DefaultAliases) {
		t.Errorf("expected %d aliases, got %d", len(DefaultAliases), tbl.Len())
	}
}

func TestTable_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	if err := os.WriteFile(path, []byte("apps: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path); err == nil {
		t.Error("expected parse error")
	}
}
