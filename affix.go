package draconic

import (
	"errors"
	"fmt"
	"strings"
)

// RootCategory is the name of the category every untagged syllable belongs to.
const RootCategory = "Root"

// DefaultAffixOrder is the canonical precedence of affix categories.
// Prefix categories come before Root in increasing rank, suffix categories
// after it.
var DefaultAffixOrder = []string{
	"Grammar Affix",
	"Prepositional Flag",
	"Prepositional Affix",
	"Factuality Affix",
	"Negative Affix",
	"Intensity Affix",
	"Progressive Affix",
	RootCategory,
	"Recurrence Affix",
	"Time Affix",
	"Numeric Affix",
	"Gender Affix",
}

// Markers a tag name must contain (case-insensitively) to be read as an
// affix category rather than a free-form label.
const (
	affixMarker = "affix"
	flagMarker  = "flag"
)

var (
	// ErrNoRoot is returned when an affix order has no Root category.
	ErrNoRoot = errors.New("affix order has no Root category")
	// ErrEmptyCategory is returned for a blank category name.
	ErrEmptyCategory = errors.New("empty category name")
	// ErrUnmarkedCategory is returned for a non-Root category whose name
	// contains neither "affix" nor "flag"; no tag could ever select it.
	ErrUnmarkedCategory = errors.New(`category name must contain "affix" or "flag"`)
)

// AffixOrder is an immutable, ranked list of categories. The rank of a
// category is its index in the list.
type AffixOrder struct {
	names []string
	// ranks maps the folded category name to its rank.
	ranks map[string]int
	root  int
	// flags marks the ranks of flag categories.
	flags []bool
}

// NewAffixOrder validates names and builds an AffixOrder. Names are
// compared case-insensitively; exactly one must be Root and every other
// name must carry an affix or flag marker.
func NewAffixOrder(names []string) (*AffixOrder, error) {
	o := &AffixOrder{
		names: make([]string, len(names)),
		ranks: make(map[string]int, len(names)),
		root:  -1,
		flags: make([]bool, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("rank %d: %w", i, ErrEmptyCategory)
		}
		o.names[i] = name
		key := fold(name)
		if prev, dup := o.ranks[key]; dup {
			return nil, fmt.Errorf("category %q listed at ranks %d and %d", name, prev, i)
		}
		o.ranks[key] = i
		if key == fold(RootCategory) {
			o.root = i
			continue
		}
		if !strings.Contains(key, affixMarker) && !strings.Contains(key, flagMarker) {
			return nil, fmt.Errorf("rank %d %q: %w", i, name, ErrUnmarkedCategory)
		}
		o.flags[i] = strings.Contains(key, flagMarker)
	}
	if o.root < 0 {
		return nil, ErrNoRoot
	}
	return o, nil
}

// MustAffixOrder is like NewAffixOrder but panics on error.
// Intended for package-level tables.
func MustAffixOrder(names []string) *AffixOrder {
	o, err := NewAffixOrder(names)
	if err != nil {
		panic(err)
	}
	return o
}

var defaultOrder = MustAffixOrder(DefaultAffixOrder)

// Default returns the AffixOrder built from DefaultAffixOrder.
func Default() *AffixOrder {
	return defaultOrder
}

// Len returns the number of categories.
func (o *AffixOrder) Len() int {
	return len(o.names)
}

// Names returns a copy of the category names in rank order.
func (o *AffixOrder) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Name returns the category name at rank r, or "" when out of range.
func (o *AffixOrder) Name(r int) string {
	if r < 0 || r >= len(o.names) {
		return ""
	}
	return o.names[r]
}

// RootRank returns the rank of the Root category.
func (o *AffixOrder) RootRank() int {
	return o.root
}

// Rank returns the rank of a category by name.
func (o *AffixOrder) Rank(name string) (int, bool) {
	r, ok := o.ranks[fold(strings.TrimSpace(name))]
	return r, ok
}

// IsFlag reports whether rank r is a flag category. A flag must be
// immediately followed by the category ranked right after it.
func (o *AffixOrder) IsFlag(r int) bool {
	return r >= 0 && r < len(o.flags) && o.flags[r]
}

// categoryRank resolves a syllable tag to a rank. Only tags carrying an
// affix or flag marker and naming a known category qualify.
func (o *AffixOrder) categoryRank(tag string) (int, bool) {
	key := fold(strings.TrimSpace(tag))
	if !strings.Contains(key, affixMarker) && !strings.Contains(key, flagMarker) {
		return 0, false
	}
	r, ok := o.ranks[key]
	return r, ok
}
