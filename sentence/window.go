package sentence

import (
	"unicode"
	"unicode/utf8"
)

// isTerminator reports whether b ends a sentence.
func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// Window computes the sentence window surrounding the selection
// [selStart, selEnd) within text. The returned start is either 0 or the
// first non-whitespace position after the nearest terminator preceding
// selStart; the returned end is either len(text) or the position
// immediately after the nearest terminator at or following selEnd.
// Invariant: start <= selStart <= selEnd <= end.
func Window(text string, selStart, selEnd int) (start, end int) {
	if selStart < 0 {
		selStart = 0
	}
	if selEnd > len(text) {
		selEnd = len(text)
	}

	start = 0
	for i := selStart - 1; i >= 0; i-- {
		if isTerminator(text[i]) {
			start = i + 1
			for start < selStart && isSpaceByte(text[start]) {
				start++
			}
			break
		}
	}

	end = len(text)
	for i := selEnd; i < len(text); i++ {
		if isTerminator(text[i]) {
			end = i + 1
			break
		}
	}

	return start, end
}

// isWordRune reports whether r belongs to a double-click word: letters
// plus the intra-word apostrophe and hyphen.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '-'
}

// WordAt returns the word containing byte position idx in text, as the
// contiguous run of letters, apostrophes and hyphens around that point.
// Words shorter than two runes, or runs with no letter at all, are
// rejected with an empty result.
func WordAt(text string, idx int) (word string, start, end int) {
	if idx < 0 || idx > len(text) {
		return "", 0, 0
	}

	start = idx
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}

	end = idx
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}

	word = text[start:end]
	if utf8.RuneCountInString(word) < 2 {
		return "", 0, 0
	}
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return "", 0, 0
	}
	return word, start, end
}
