// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordbank

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltin(t *testing.T) {
	bank := Builtin()

	if bank.Size() < 90 {
		t.Errorf("builtin pool has %d words, expected at least 90", bank.Size())
	}

	seen := make(map[string]bool)
	for _, w := range bank.Words() {
		if seen[w] {
			t.Errorf("duplicate word %q in pool", w)
		}
		seen[w] = true
		if len(w) <= 2 {
			t.Errorf("word %q too short to survive keyword extraction", w)
		}
	}

	// "wonder" appears in two source groups; the pool keeps one copy.
	if !seen["wonder"] {
		t.Error("expected builtin pool to contain \"wonder\"")
	}
}

func TestBuiltinIsStable(t *testing.T) {
	a := Builtin().Words()
	b := Builtin().Words()
	if len(a) != len(b) {
		t.Fatalf("pool size changed between calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pool order changed at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSize int
		wantErr  bool
	}{
		{
			name:     "flat list",
			content:  "words:\n  - anchor\n  - beacon\n  - current\n",
			wantSize: 3,
		},
		{
			name:     "groups in name order",
			content:  "groups:\n  b_tools: [hammer, wrench]\n  a_places: [harbor]\n",
			wantSize: 3,
		},
		{
			name:     "flat list plus groups with duplicates",
			content:  "words: [anchor]\ngroups:\n  sea: [anchor, beacon]\n",
			wantSize: 2,
		},
		{
			name:    "empty file",
			content: "words: []\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "words: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := Load(writeBank(t, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if bank.Size() != tt.wantSize {
				t.Errorf("size = %d, want %d", bank.Size(), tt.wantSize)
			}
		})
	}
}

func TestLoadGroupOrder(t *testing.T) {
	bank, err := Load(writeBank(t, "groups:\n  b_tools: [hammer]\n  a_places: [harbor]\n"))
	if err != nil {
		t.Fatal(err)
	}
	words := bank.Words()
	if words[0] != "harbor" || words[1] != "hammer" {
		t.Errorf("groups should append in name order, got %v", words)
	}
}

func TestResolve(t *testing.T) {
	bank, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if bank.Size() != Builtin().Size() {
		t.Errorf("empty path should resolve to the builtin pool")
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should be an error")
	}
}
