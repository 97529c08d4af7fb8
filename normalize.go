package draconic

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultBoundary separates the syllables of a compound word.
const DefaultBoundary = "-"

var (
	// ErrInvalidWord is the parent of every word validation error.
	ErrInvalidWord = errors.New("invalid word")
	// ErrEmptyWord is returned when a word has no syllables at all.
	ErrEmptyWord = fmt.Errorf("%w: empty word", ErrInvalidWord)
	// ErrEmptySyllable is returned when a boundary marker is doubled,
	// leading or trailing.
	ErrEmptySyllable = fmt.Errorf("%w: empty syllable", ErrInvalidWord)
	// ErrInvalidBoundary is returned for a boundary that Clean would strip.
	ErrInvalidBoundary = errors.New("boundary must be a single non-space character other than /")
)

// displayTrimmer strips the /slashes/ the dictionary uses to display
// phonetic forms, plus surrounding whitespace.
var displayTrimmer = strings.NewReplacer("/", "")

// fold returns the case-folded form of s for category comparisons.
// A Caser is stateful, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Clean returns s in NFC form with display slashes and surrounding
// whitespace removed.
func Clean(s string) string {
	return strings.TrimSpace(displayTrimmer.Replace(norm.NFC.String(s)))
}

// ValidateBoundary checks that b can separate syllables: one rune that
// survives Clean.
func ValidateBoundary(b string) error {
	r := []rune(b)
	if len(r) != 1 || r[0] == '/' || unicode.IsSpace(r[0]) {
		return fmt.Errorf("%w, got %q", ErrInvalidBoundary, b)
	}
	return nil
}

// Display renders a word or syllable in its /phonetic/ display form.
func Display(s string) string {
	return "/" + s + "/"
}

// SplitWord cleans word and splits it on boundary. It fails with
// ErrEmptyWord or ErrEmptySyllable, both of which wrap ErrInvalidWord.
func SplitWord(word, boundary string) ([]string, error) {
	if boundary == "" {
		boundary = DefaultBoundary
	}
	word = Clean(word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	syllables := strings.Split(word, boundary)
	for i, s := range syllables {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, fmt.Errorf("%w at position %d in %q", ErrEmptySyllable, i, word)
		}
		syllables[i] = s
	}
	return syllables, nil
}

// JoinWord is the inverse of SplitWord.
func JoinWord(syllables []string, boundary string) string {
	if boundary == "" {
		boundary = DefaultBoundary
	}
	return strings.Join(syllables, boundary)
}
