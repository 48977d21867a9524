// Package language holds the catalog of languages the translator supports
// and the matching rules used to resolve free-form caller input against it.
package language

import "strings"

// Supported is the ordered catalog of supported language names.
// Order matters: Match scans front to back and the first hit wins,
// so ambiguous input resolves to the earliest catalog entry.
var Supported = []string{
	"English", "Spanish", "French", "German", "Italian",
	"Portuguese", "Chinese", "Japanese", "Korean", "Russian",
	"Arabic", "Hindi", "Dutch", "Swedish", "Greek",
}

// Match resolves free-form input against the catalog using a
// case-insensitive substring scan. Returns the canonical catalog
// name and true on a hit.
func Match(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, lang := range Supported {
		if strings.Contains(normalized, strings.ToLower(lang)) {
			return lang, true
		}
	}
	return "", false
}

// Complement returns the default partner language for a resolved
// caller language: English pairs with Spanish, everything else
// pairs with English.
func Complement(lang string) string {
	if lang == "English" {
		return "Spanish"
	}
	return "English"
}

// IsSupported reports whether lang is an exact catalog entry.
func IsSupported(lang string) bool {
	for _, l := range Supported {
		if l == lang {
			return true
		}
	}
	return false
}
