// Package security validates user-supplied identifiers and masks secrets
// before they reach logs.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// serverNameRegex validates server configuration names
	// Allows: letters, numbers, underscores, hyphens
	// Length: 1-64 characters
	serverNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9_-]{0,62}[a-zA-Z0-9])?$`)

	// sensitiveAssignRegex matches assignments whose values must never be
	// logged. Unanchored on the left, so DB_PASSWORD= is caught too.
	sensitiveAssignRegex = regexp.MustCompile(`(?i)(password|passphrase|token|secret)=`)
)

// ValidateServerName validates a server configuration name
func ValidateServerName(name string) error {
	if name == "" {
		return fmt.Errorf("server name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("server name too long (max 64 characters)")
	}
	if !serverNameRegex.MatchString(name) {
		return fmt.Errorf("server name must contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

// SanitizeCommandForLog masks secret values in a command string so it can be
// logged. Any value following a sensitive assignment (password=, token=,
// case-insensitive) is replaced by "****". All indexing happens on the
// original string, never on a case-transformed copy, so multi-byte runes
// elsewhere in the command cannot shift the match positions.
func SanitizeCommandForLog(command string) string {
	matches := sensitiveAssignRegex.FindAllStringIndex(command, -1)
	if len(matches) == 0 {
		return command
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] < last {
			// assignment sits inside a value that is already masked
			continue
		}
		b.WriteString(command[last:m[1]])
		b.WriteString("****")
		last = valueEnd(command, m[1])
	}
	b.WriteString(command[last:])
	return b.String()
}

// valueEnd returns the index past the value starting at start, honoring
// single and double quotes.
func valueEnd(s string, start int) int {
	if start >= len(s) {
		return len(s)
	}

	if s[start] == '\'' {
		end := strings.Index(s[start+1:], "'")
		if end == -1 {
			return len(s)
		}
		return start + end + 2
	}

	if s[start] == '"' {
		end := strings.Index(s[start+1:], "\"")
		if end == -1 {
			return len(s)
		}
		return start + end + 2
	}

	for i := start; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' {
			return i
		}
	}
	return len(s)
}
