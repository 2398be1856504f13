// Package similarity holds the string primitives shared by duplicate detection
// and blacklist screening.
//
// Domain Purity: every function here is total. Empty input is treated as the
// empty string and never produces an error, so callers can feed raw snapshot
// fields without pre-validation.
package similarity

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EditDistance returns the unit-cost insert/delete/substitute distance between
// a and b, counted in runes. Comparison is case-sensitive; callers normalize first.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity converts EditDistance into a ratio in [0,1] relative to the longer input.
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	ratio := 1 - float64(EditDistance(a, b))/float64(longest)
	return min(max(ratio, 0), 1)
}

// NormalizePhone keeps ASCII digits only. No country-code or length validation.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeDocument keeps letters and digits, uppercased, so "p-123 456" and "P123456" compare equal.
func NormalizeDocument(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// NormalizeName folds a person or entity name into a comparable form:
// diacritics removed, lowercase, dots and apostrophes dropped, other
// punctuation turned into spaces, "&" spelled out, whitespace collapsed.
func NormalizeName(raw string) string {
	folded := foldDiacritics(strings.TrimSpace(raw))
	if folded == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '.' || r == '\'' || r == '’':
			continue
		case r == '&':
			b.WriteString(" and ")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// legalSuffixes are trailing tokens that carry no identity for an organization.
// Values are in NormalizeName form.
var legalSuffixes = map[string]struct{}{
	"llc": {}, "inc": {}, "incorporated": {}, "corp": {}, "corporation": {},
	"ltd": {}, "limited": {}, "lp": {}, "llp": {}, "pllc": {}, "plc": {},
	"co": {}, "company": {}, "gmbh": {}, "ag": {}, "sa": {}, "sarl": {},
	"bv": {}, "nv": {}, "pc": {}, "pa": {}, "dba": {},
}

// NormalizeOrganization applies NormalizeName and then strips trailing legal
// entity suffixes ("Acme Holdings Co. Ltd" -> "acme holdings"). A name made only
// of a suffix is kept as is.
func NormalizeOrganization(raw string) string {
	tokens := strings.Fields(NormalizeName(raw))
	for len(tokens) > 1 {
		if _, ok := legalSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
