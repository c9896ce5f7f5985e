package session

import "testing"

func TestValidatePublicKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{
			name:  "rsa key",
			key:   "ssh-rsa AAAAB3NzaC1yc2EAAAADAQABAAABgQDQk5Zx user@host",
			valid: true,
		},
		{
			name:  "ed25519 key",
			key:   "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIIBHxJnPHwqFPxfF5XHV4SRS15iU7t9bZCdnf4yZgQ/R a@b",
			valid: true,
		},
		{
			name:  "surrounding whitespace",
			key:   "  ssh-ed25519 AAAAC3NzaC1lZDI1NTE5 test@example.com\n",
			valid: true,
		},
		{
			name:  "padded base64 body",
			key:   "ssh-rsa AAAA== user@host",
			valid: true,
		},
		{
			name:  "empty string",
			key:   "",
			valid: false,
		},
		{
			name:  "garbage",
			key:   "invalid-key",
			valid: false,
		},
		{
			name:  "missing comment field",
			key:   "ssh-rsa AAAA==",
			valid: false,
		},
		{
			name:  "unsupported algorithm",
			key:   "ecdsa-sha2-nistp256 AAAAE2VjZHNhLXNoYTItbmlzdHAyNTY= user@host",
			valid: false,
		},
		{
			name:  "malformed base64 body",
			key:   "ssh-rsa AAAA!B3Nza user@host",
			valid: false,
		},
		{
			name:  "excessive padding",
			key:   "ssh-rsa AAAA==== user@host",
			valid: false,
		},
		{
			name:  "algorithm only",
			key:   "ssh-ed25519",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePublicKey(tt.key); got != tt.valid {
				t.Errorf("ValidatePublicKey(%q) = %v, want %v", tt.key, got, tt.valid)
			}
		})
	}
}
