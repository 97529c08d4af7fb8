package draconic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSyllable is returned for a syllable outside the inventory.
	ErrUnknownSyllable = errors.New("unknown syllable")
	// ErrUnknownWord is returned for a word with no dictionary entry.
	ErrUnknownWord = errors.New("unknown word")
	// ErrUnknownTag is returned for a tag that was never created.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrEmptyTag is returned for a blank tag name or member.
	ErrEmptyTag = errors.New("empty tag name")
	// ErrEmptyPool is returned when picking from an empty syllable pool.
	ErrEmptyPool = errors.New("syllable pool is empty")
	// ErrUnknownPool is returned by ParsePool for an unrecognised pool name.
	ErrUnknownPool = errors.New("unknown syllable pool")
)

// InvalidSyllablesError lists the syllables of a word that are not in the
// inventory.
type InvalidSyllablesError struct {
	Word      string
	Syllables []string
}

func (e *InvalidSyllablesError) Error() string {
	return fmt.Sprintf("%s: invalid syllables %s", Display(e.Word), strings.Join(e.Syllables, ", "))
}

// Unwrap lets errors.Is(err, ErrInvalidWord) match.
func (e *InvalidSyllablesError) Unwrap() error {
	return ErrInvalidWord
}

// RejectedError is returned when a word's verdict forbids storing it.
type RejectedError struct {
	Classification Classification
}

func (e *RejectedError) Error() string {
	c := e.Classification
	if c.Verdict == VerdictCollision {
		return fmt.Sprintf("%s is taken", Display(c.Word))
	}
	return fmt.Sprintf("%s rejected: %s", Display(c.Word), c.Verdict)
}
