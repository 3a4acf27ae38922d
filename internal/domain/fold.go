package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldIdentifier normalizes a username or email for storage and lookup.
func FoldIdentifier(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
