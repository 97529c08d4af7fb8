// Package draconic keeps a constructed-language dictionary: a closed
// syllable inventory, dictionary entries for compound words and the
// category tags assigned to syllables.
//
// Its core is the affix classifier. A compound word is a dash-separated
// sequence of syllables; each syllable is ranked by its affix category and
// the rank sequence decides whether the word is a new root, a variant of a
// root, or invalid (improper affix order, duplicate affixes, lone flag,
// collision with an existing entry).
//
// Classifier is pure and safe for concurrent use. Lexicon guards its state
// with a read/write mutex and classifies each word against one consistent
// snapshot of its tags and entries.
package draconic

import (
	"math/rand/v2"
	"sync"
)

// Options configures a Lexicon. Zero values select the defaults.
type Options struct {
	Order     *AffixOrder
	Boundary  string
	Inventory *Inventory
	// Rand drives Random. Defaults to a randomly seeded PCG source.
	Rand *rand.Rand
}

// Lexicon holds the dictionary state and provides the public API.
type Lexicon struct {
	classifier *Classifier
	inventory  *Inventory

	mu sync.RWMutex
	// taken marks inventory syllables that have been given a meaning.
	taken map[string]bool
	// entries maps word → definition.
	entries map[string]string
	// tags maps tag name → members (syllables or words) in insertion order.
	tags map[string][]string
	// rnd is only used under mu's write lock.
	rnd *rand.Rand
}

// New returns an empty Lexicon.
func New(opts Options) *Lexicon {
	inv := opts.Inventory
	if inv == nil {
		inv = DefaultInventory()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Lexicon{
		classifier: NewClassifier(opts.Order, opts.Boundary),
		inventory:  inv,
		taken:      make(map[string]bool),
		entries:    make(map[string]string),
		tags:       make(map[string][]string),
		rnd:        rnd,
	}
}

// Classifier returns the classifier the lexicon checks words with.
func (l *Lexicon) Classifier() *Classifier {
	return l.classifier
}

// Inventory returns the syllable inventory.
func (l *Lexicon) Inventory() *Inventory {
	return l.inventory
}

// Check classifies word against the current tags and entries without
// storing it.
func (l *Lexicon) Check(word string) (Classification, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.classifier.Classify(word, view{l}, view{l})
}

// AddWord validates and classifies word, and stores it with definition
// when the verdict is new word or variant. Syllables outside the inventory
// yield *InvalidSyllablesError; any other verdict yields *RejectedError.
// The classification is returned in every case where one was computed.
func (l *Lexicon) AddWord(word, definition string) (Classification, error) {
	syllables, err := SplitWord(word, l.classifier.Boundary())
	if err != nil {
		return Classification{}, err
	}
	joined := JoinWord(syllables, l.classifier.Boundary())
	if bad := l.inventory.Invalid(syllables); len(bad) > 0 {
		return Classification{}, &InvalidSyllablesError{Word: joined, Syllables: bad}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.classifier.classifySyllables(syllables, view{l}, view{l})
	if !c.Verdict.Valid() {
		return c, &RejectedError{Classification: c}
	}
	l.entries[c.Word] = definition
	if len(syllables) == 1 {
		l.taken[c.Word] = true
	}
	return c, nil
}

// view reads lexicon state without locking. It is only handed out while
// the caller holds l.mu.
type view struct {
	l *Lexicon
}

func (v view) Contains(word string) bool {
	_, ok := v.l.entries[word]
	return ok
}

func (v view) TagsFor(member string) []string {
	return v.l.tagsFor(member)
}

func (v view) SyllablesFor(tag string) []string {
	return v.l.membersOf(tag)
}
