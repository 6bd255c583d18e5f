// Package provider holds the static catalog of prepaid-coupon issuers
// and their code formatting rules. The catalog is consulted for
// client-side formatting only; nothing here is persisted.
package provider

import (
	"strings"
)

// Alphabet describes the characters a provider's codes draw from.
type Alphabet int

const (
	// Digits restricts codes to 0-9.
	Digits Alphabet = iota
	// UpperAlnum allows A-Z and 0-9; input is uppercased on entry.
	UpperAlnum
)

// MaxSlotsPerBatch is the number of code/amount slots in one
// submission batch, fixed across all providers.
const MaxSlotsPerBatch = 10

// Profile describes one prepaid-coupon provider.
type Profile struct {
	Key         string
	DisplayName string
	CodeLength  int
	Alphabet    Alphabet
	// GroupSize and GroupSep drive the cosmetic display grouping
	// (e.g. "XXXX XXXX XXXX XXXX"). A zero GroupSize means no grouping.
	GroupSize int
	GroupSep  string
}

// catalog lists every supported provider, keyed by lowercase key.
var catalog = map[string]Profile{
	"pcs":         {Key: "pcs", DisplayName: "PCS", CodeLength: 16, Alphabet: Digits, GroupSize: 4, GroupSep: " "},
	"neosurf":     {Key: "neosurf", DisplayName: "Neosurf", CodeLength: 10, Alphabet: Digits},
	"steam":       {Key: "steam", DisplayName: "Steam", CodeLength: 15, Alphabet: UpperAlnum, GroupSize: 5, GroupSep: "-"},
	"transcash":   {Key: "transcash", DisplayName: "Transcash", CodeLength: 14, Alphabet: Digits},
	"paysafecard": {Key: "paysafecard", DisplayName: "PaySafeCard", CodeLength: 14, Alphabet: Digits},
	"toneo-first": {Key: "toneo-first", DisplayName: "Toneo First", CodeLength: 14, Alphabet: Digits},
}

// Lookup returns the profile for a provider key, matching
// case-insensitively. The second result is false for unknown keys.
func Lookup(key string) (Profile, bool) {
	p, ok := catalog[strings.ToLower(strings.TrimSpace(key))]
	return p, ok
}

// Keys returns the catalog keys in no particular order.
func Keys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	return keys
}

// Normalize strips characters outside the provider's alphabet,
// uppercases letters where the alphabet has any, and truncates to the
// provider's code length. The result is the canonical stored value and
// never contains display separators.
func (p Profile) Normalize(raw string) string {
	if p.Alphabet == UpperAlnum {
		raw = strings.ToUpper(raw)
	}
	var b strings.Builder
	for _, r := range raw {
		if b.Len() >= p.CodeLength {
			break
		}
		switch p.Alphabet {
		case Digits:
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		case UpperAlnum:
			if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Format renders a normalized code with the provider's cosmetic
// grouping. The underlying value is unchanged; Normalize(Format(c))
// returns c for any canonical code.
func (p Profile) Format(code string) string {
	if p.GroupSize <= 0 {
		return code
	}
	var b strings.Builder
	for i, r := range code {
		if i > 0 && i%p.GroupSize == 0 {
			b.WriteString(p.GroupSep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Complete reports whether a normalized code has the full length the
// provider requires.
func (p Profile) Complete(code string) bool {
	return len(code) == p.CodeLength
}
