// Package dict looks up word definitions against a dictionaryapi.dev
// compatible endpoint.
package dict

// Definition is a single sense of a word, with an optional usage example.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// Meaning groups the definitions a word carries for one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Entry is the structured result of a definition lookup. A word that has
// no definition available resolves to an Entry with no meanings rather
// than an error; absence is an ordinary outcome.
type Entry struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings,omitempty"`
}

// Empty returns true if the entry carries no definitions.
func (e Entry) Empty() bool {
	for _, m := range e.Meanings {
		if len(m.Definitions) > 0 {
			return false
		}
	}
	return true
}

// First returns the first definition and its part of speech, or zero
// values for an empty entry.
func (e Entry) First() (Definition, string) {
	for _, m := range e.Meanings {
		if len(m.Definitions) > 0 {
			return m.Definitions[0], m.PartOfSpeech
		}
	}
	return Definition{}, ""
}
