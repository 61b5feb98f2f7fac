// Package slugs holds the governance rules for store slugs: the
// normalization, validation and suggestion logic applied to every tenant
// identifier before it ever reaches the database. Everything here is a
// pure value-in/value-out function with no I/O, so it sits on the
// user-input validation path without ever failing a request.
package slugs

import (
	"regexp"
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

const (
	// Slug length bounds. 63 matches the maximum length of a DNS label,
	// since every slug must be usable as a subdomain.
	MinLength = 3
	MaxLength = 63
)

// slugPattern encodes the full shape rule in one expression:
// lowercase alphanumeric runs joined by single hyphens. Leading,
// trailing and consecutive hyphens can never match.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// reserved lists slugs that collide with operational subdomains or
// platform routes. Membership is checked case-insensitively.
var reserved = map[string]struct{}{
	"www":       {},
	"api":       {},
	"app":       {},
	"admin":     {},
	"dashboard": {},
	"mail":      {},
	"ftp":       {},
	"smtp":      {},
	"imap":      {},
	"pop":       {},
	"ns1":       {},
	"ns2":       {},
	"dns":       {},
	"blog":      {},
	"shop":      {},
	"store":     {},
	"help":      {},
	"support":   {},
	"docs":      {},
	"status":    {},
	"dev":       {},
	"staging":   {},
	"test":      {},
	"demo":      {},
	"cdn":       {},
	"static":    {},
	"assets":    {},
	"media":     {},
	"files":     {},
	"smartcard": {},
	"loja":      {},
}

// suggestionSuffixes are appended to a normalized business name when the
// base slug is unavailable or unusable, in this fixed order.
var suggestionSuffixes = []string{"-oficial", "-store", "-shop", "-2024", "-br"}

// Normalize converts arbitrary user input into slug form: lowercased,
// diacritics stripped, any run of characters outside [a-z0-9-] collapsed
// to a single hyphen, repeated hyphens collapsed, boundary hyphens
// trimmed. It is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(input string) string {
	// gosimple/slug substitutes symbols into words ("&" -> "and",
	// "@" -> "at"), but a symbol run must collapse to one hyphen, not
	// spell itself out. Blank symbols out up front so goslug only does
	// what it is wanted for: lowercasing and transliteration
	// ("Café São João" -> "cafe-sao-joao").
	var pre strings.Builder
	pre.Grow(len(input))
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			pre.WriteRune(r)
		} else {
			pre.WriteByte(' ')
		}
	}

	s := goslug.Make(pre.String())

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// IsValid reports whether s is acceptable as a store slug. It enforces
// the length bounds, the lowercase [a-z0-9-] charset, the hyphen
// placement rules and the reserved-word list. It never errors: any
// unacceptable input simply yields false.
func IsValid(s string) bool {
	if len(s) < MinLength || len(s) > MaxLength {
		return false
	}
	if !slugPattern.MatchString(s) {
		return false
	}
	if IsReserved(s) {
		return false
	}
	return true
}

// IsReserved reports whether s collides with a reserved platform word.
// The check is case-insensitive.
func IsReserved(s string) bool {
	_, ok := reserved[strings.ToLower(s)]
	return ok
}

// Suggest derives candidate slugs from a business name: the normalized
// base first (when it is itself valid), then the fixed suffix variants.
// Invalid and duplicate candidates are filtered out. Callers must still
// check each candidate against the database; nothing here guarantees a
// candidate is actually free.
func Suggest(businessName string) []string {
	base := Normalize(businessName)
	if base == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(candidate string) {
		if !IsValid(candidate) {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}

	add(base)
	for _, suffix := range suggestionSuffixes {
		add(base + suffix)
	}
	add("loja-" + base)
	add(base + "-online")
	return out
}
