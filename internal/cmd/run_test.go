package cmd

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde prefix", "~/.ssh/id_ed25519.pub", filepath.Join(home, ".ssh", "id_ed25519.pub")},
		{"absolute path untouched", "/etc/ssh/key.pub", "/etc/ssh/key.pub"},
		{"relative path untouched", "keys/id_rsa.pub", "keys/id_rsa.pub"},
		{"bare tilde untouched", "~", "~"},
		{"tilde user untouched", "~deploy/key", "~deploy/key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandHome(tt.input)
			if err != nil {
				t.Fatalf("expandHome(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
