// Package vocab persists saved vocabulary entries in SQLite.
package vocab

import (
	"strings"
	"time"
)

// Entry is one saved vocabulary item: the word, the sentence it was
// found in, and the definition captured at save time.
type Entry struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Sentence     string    `json:"sentence"`
	Definition   string    `json:"definition,omitempty"`
	PartOfSpeech string    `json:"partOfSpeech,omitempty"`
	Phonetic     string    `json:"phonetic,omitempty"`
	SourceURL    string    `json:"sourceUrl,omitempty"`
	SourceTitle  string    `json:"sourceTitle,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// normalizeWord produces the canonical form used for duplicate
// detection.
func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
