package draconic

import (
	"sort"
	"strings"
)

// Entry is a dictionary word with its definition and tags.
type Entry struct {
	Word       string
	Definition string
	Tags       []string
}

// Contains reports whether word has a dictionary entry.
func (l *Lexicon) Contains(word string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return view{l}.Contains(Clean(word))
}

// Lookup returns the entry for word.
func (l *Lexicon) Lookup(word string) (Entry, error) {
	word = Clean(word)
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.entries[word]
	if !ok {
		return Entry{}, ErrUnknownWord
	}
	return Entry{Word: word, Definition: def, Tags: l.tagsFor(word)}, nil
}

// Define replaces the definition of an existing word.
func (l *Lexicon) Define(word, definition string) error {
	word = Clean(word)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[word]; !ok {
		return ErrUnknownWord
	}
	l.entries[word] = definition
	return nil
}

// DeleteWord removes word from the dictionary and from every tag. A
// single-syllable word returns to the available pool.
func (l *Lexicon) DeleteWord(word string) error {
	word = Clean(word)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[word]; !ok {
		return ErrUnknownWord
	}
	delete(l.entries, word)
	delete(l.taken, word)
	l.removeMember(word)
	return nil
}

// Words returns the sorted words containing substr.
func (l *Lexicon) Words(substr string) []string {
	substr = Clean(substr)
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []string
	for w := range l.entries {
		if strings.Contains(w, substr) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
