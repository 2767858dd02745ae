// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patentid canonicalizes U.S. patent numbers and builds outbound links
// to an external full-text provider.
//
// Raw numbers arrive in many shapes: "7654321", "7,654,321", "12 440 146",
// "D123456", "RE045821", "PP12345", "H1523", "T109201", "US7654321B2". All of
// them reduce to a canonical "US"-prefixed form that providers such as Google
// Patents accept as a record key.
package patentid

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrUnrecognizedIdentifier is returned when a raw string cannot be reduced to
// a canonical patent number. Callers fall back to a generic search link.
var ErrUnrecognizedIdentifier = errors.New("unrecognized patent identifier")

// Kind is the patent category implied by the identifier's letter prefix.
type Kind int

const (
	KindUnknown Kind = iota
	KindUtility
	KindDesign
	KindReissue
	KindPlant
	KindDefensivePublication
	KindStatutoryInvention
	KindAlreadyPrefixed
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindUtility:              "utility",
	KindDesign:               "design",
	KindReissue:              "reissue",
	KindPlant:                "plant",
	KindDefensivePublication: "defensive_publication",
	KindStatutoryInvention:   "statutory_invention_registration",
	KindAlreadyPrefixed:      "already_prefixed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[KindUnknown]
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// kindCodes maps letter prefixes to kinds. The code is kept after the
// country prefix, so "D123" becomes "USD123".
var kindCodes = map[string]Kind{
	"D":  KindDesign,
	"RE": KindReissue,
	"PP": KindPlant,
	"H":  KindDefensivePublication,
	"T":  KindStatutoryInvention,
}

// numberPattern splits an uppercased, separator-free patent number into an
// optional kind-code prefix, the digit run, and an optional publication kind
// suffix (e.g. "B2", "E", "S").
var numberPattern = regexp.MustCompile(`^(RE|PP|D|H|T)?([0-9]+)([A-Z][0-9]?)?$`)

// Identifier is a canonicalized patent number. It is derived on demand and
// never stored.
type Identifier struct {
	// Raw is the input as given.
	Raw string `json:"raw" yaml:"raw"`

	// Kind is the detected patent category.
	Kind Kind `json:"kind" yaml:"kind"`

	// Canonical is the provider-ready form, e.g. "US7654321" or "USD123456".
	Canonical string `json:"canonical" yaml:"canonical"`
}

// Canonicalize reduces raw to its canonical form. Whitespace anywhere in the
// input and thousands separators are removed first; leading zeros in the digit
// run are preserved. Only a leading "US" counts as a country prefix.
func Canonicalize(raw string) (Identifier, error) {
	id := Identifier{Raw: raw}

	s := normalize(raw)
	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return id, ErrUnrecognizedIdentifier
	}

	up := strings.ToUpper(s)
	if strings.HasPrefix(up, "US") {
		id.Kind = KindAlreadyPrefixed
		id.Canonical = up
		return id, nil
	}

	m := numberPattern.FindStringSubmatch(up)
	if m == nil {
		return id, ErrUnrecognizedIdentifier
	}
	code, digits, suffix := m[1], m[2], m[3]

	if code == "" {
		id.Kind = KindUtility
	} else {
		id.Kind = kindCodes[code]
	}
	id.Canonical = "US" + code + digits + suffix
	return id, nil
}

// normalize strips all whitespace runs and digit-group separators.
func normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
