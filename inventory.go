package draconic

import (
	"errors"
	"strings"
)

// DefaultConsonants are the consonant clusters of the Draconic phonology.
var DefaultConsonants = []string{
	"th", "s", "z", "t", "d", "R", "r", "l", "sh", "hl", "rr", "c",
	"j", "k", "g", "t'", "k'", "s'", "h'", "h", "ts", "ch", "ks", "dg",
}

// DefaultVowels are the vowels and diphthongs of the Draconic phonology.
var DefaultVowels = []string{"a", "i", "u", "w", "ai", "ia", "uw", "wu"}

// ErrNoVowels is returned when an inventory is built without vowels.
var ErrNoVowels = errors.New("syllable inventory needs at least one vowel")

// Inventory is the closed set of syllables a word may be built from.
type Inventory struct {
	syllables []string
	index     map[string]int
}

// NewInventory builds every consonant+vowel syllable, then every
// vowel+consonant syllable, then the bare vowels. Duplicates keep their
// first position.
func NewInventory(consonants, vowels []string) (*Inventory, error) {
	if len(vowels) == 0 {
		return nil, ErrNoVowels
	}
	inv := &Inventory{index: make(map[string]int)}
	for _, c := range consonants {
		for _, v := range vowels {
			inv.add(c + v)
		}
	}
	for _, c := range consonants {
		for _, v := range vowels {
			inv.add(v + c)
		}
	}
	for _, v := range vowels {
		inv.add(v)
	}
	return inv, nil
}

// DefaultInventory builds the inventory of DefaultConsonants and DefaultVowels.
func DefaultInventory() *Inventory {
	inv, _ := NewInventory(DefaultConsonants, DefaultVowels)
	return inv
}

func (inv *Inventory) add(s string) {
	if s == "" {
		return
	}
	if _, ok := inv.index[s]; ok {
		return
	}
	inv.index[s] = len(inv.syllables)
	inv.syllables = append(inv.syllables, s)
}

// Len returns the number of distinct syllables.
func (inv *Inventory) Len() int {
	return len(inv.syllables)
}

// Contains reports whether s is a known syllable. Matching is exact:
// "R" and "r" are distinct consonants.
func (inv *Inventory) Contains(s string) bool {
	_, ok := inv.index[s]
	return ok
}

// Syllables returns all syllables in inventory order.
func (inv *Inventory) Syllables() []string {
	out := make([]string, len(inv.syllables))
	copy(out, inv.syllables)
	return out
}

// Filter returns the syllables containing substr, in inventory order.
// An empty substr matches everything.
func (inv *Inventory) Filter(substr string) []string {
	if substr == "" {
		return inv.Syllables()
	}
	var out []string
	for _, s := range inv.syllables {
		if strings.Contains(s, substr) {
			out = append(out, s)
		}
	}
	return out
}

// Invalid returns the members of syllables that are not in the inventory,
// in input order.
func (inv *Inventory) Invalid(syllables []string) []string {
	var out []string
	for _, s := range syllables {
		if !inv.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// position returns the inventory index of s, or -1.
func (inv *Inventory) position(s string) int {
	if i, ok := inv.index[s]; ok {
		return i
	}
	return -1
}
