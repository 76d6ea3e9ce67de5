// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strcase converts Go identifiers such as property names
// into human readable display labels. Acronyms are preserved, so
// "HTTPPort" becomes "HTTP port".
package strcase

import (
	"strings"
	"unicode"
)

// Words splits the given identifier into its words, breaking on
// case transitions, digits-to-letters, and the separators '_', '-', '.'
// and whitespace. A run of upper case letters followed by a lower case
// letter is split before the last upper case letter ("HTTPPort" ->
// "HTTP", "Port").
func Words(s string) []string {
	var words []string
	rs := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}
	for i, r := range rs {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := rs[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			flush(i)
			start = i
		case unicode.IsLetter(r) && unicode.IsDigit(prev):
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}

// isAcronym returns whether the word is all upper case with at least two letters.
func isAcronym(w string) bool {
	n := 0
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n > 1
}

// ToSentence returns words in Sentence case (lower case words with spaces,
// with the first word capitalized). Acronyms are left as they are.
func ToSentence(s string) string {
	words := Words(s)
	for i, w := range words {
		if isAcronym(w) {
			continue
		}
		w = strings.ToLower(w)
		if i == 0 {
			rs := []rune(w)
			rs[0] = unicode.ToUpper(rs[0])
			w = string(rs)
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}
