package similarity

import (
	"strings"
	"unicode"
)

// soundexClass maps consonants to their Soundex class. Letters without an
// entry (vowels, H, W, Y) carry no class and are dropped.
var soundexClass = map[rune]byte{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

const phoneticCodeLen = 4

// PhoneticCode returns an American-Soundex style code for word.
//
// The first letter is kept verbatim and seeds the previous class. Following
// letters are dropped when they carry no class or repeat the last kept class;
// classless letters do not reset that class. The result is truncated or
// right-padded with '0' to four characters. Input without ASCII letters yields "".
func PhoneticCode(word string) string {
	letters := make([]rune, 0, len(word))
	for _, r := range strings.ToUpper(foldDiacritics(word)) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := make([]byte, 0, phoneticCodeLen)
	code = append(code, byte(letters[0]))
	prev := soundexClass[letters[0]]

	for _, r := range letters[1:] {
		if len(code) == phoneticCodeLen {
			break
		}
		class, ok := soundexClass[r]
		if !ok || class == prev {
			continue
		}
		code = append(code, class)
		prev = class
	}

	for len(code) < phoneticCodeLen {
		code = append(code, '0')
	}
	return string(code)
}

// PhoneticTokensEqual reports whether two multi-word names have the same number
// of tokens and every token pair shares a phonetic code.
func PhoneticTokensEqual(a, b string) bool {
	ta, tb := strings.FieldsFunc(a, notLetter), strings.FieldsFunc(b, notLetter)
	if len(ta) == 0 || len(ta) != len(tb) {
		return false
	}
	for i := range ta {
		ca := PhoneticCode(ta[i])
		if ca == "" || ca != PhoneticCode(tb[i]) {
			return false
		}
	}
	return true
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r)
}
