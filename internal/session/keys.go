package session

import (
	"regexp"
	"strings"
)

// publicKeyPattern matches a single OpenSSH public key line: a supported
// algorithm name, the base64 key body with up to three '=' padding
// characters, and a non-empty trailing comment.
var publicKeyPattern = regexp.MustCompile(`^(ssh-rsa|ssh-ed25519)\s+[A-Za-z0-9+/]+={0,3}\s+.+$`)

// ValidatePublicKey reports whether key is a syntactically well-formed
// OpenSSH public key string. Leading and trailing whitespace is ignored.
// Unsupported algorithms (e.g. ecdsa-sha2-nistp256), malformed base64 bodies
// and keys without a comment field are rejected. The key is not parsed or
// cryptographically verified.
func ValidatePublicKey(key string) bool {
	return publicKeyPattern.MatchString(strings.TrimSpace(key))
}
