package draconic

// TagLookup answers which tags are assigned to a syllable and which
// syllables carry a tag. Implementations used concurrently must be safe
// for concurrent reads.
type TagLookup interface {
	TagsFor(syllable string) []string
	SyllablesFor(tag string) []string
}

// WordSet answers whether a word is already a dictionary entry.
type WordSet interface {
	Contains(word string) bool
}

// Classifier decides whether a compound word is a new root, a variant or
// invalid according to an AffixOrder. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	order    *AffixOrder
	boundary string
}

// NewClassifier returns a Classifier for order using boundary as the
// syllable separator. A nil order means Default(); an empty boundary
// means DefaultBoundary.
func NewClassifier(order *AffixOrder, boundary string) *Classifier {
	if order == nil {
		order = Default()
	}
	if boundary == "" {
		boundary = DefaultBoundary
	}
	return &Classifier{order: order, boundary: boundary}
}

// Order returns the affix order the classifier ranks against.
func (c *Classifier) Order() *AffixOrder {
	return c.order
}

// Boundary returns the syllable separator.
func (c *Classifier) Boundary() string {
	return c.boundary
}

// Classify splits word into syllables and classifies it. tags may be nil
// (every syllable is Root); words may be nil (no collisions). The only
// error is word validation, wrapping ErrInvalidWord.
func (c *Classifier) Classify(word string, tags TagLookup, words WordSet) (Classification, error) {
	syllables, err := SplitWord(word, c.boundary)
	if err != nil {
		return Classification{}, err
	}
	return c.classifySyllables(syllables, tags, words), nil
}

func (c *Classifier) classifySyllables(syllables []string, tags TagLookup, words WordSet) Classification {
	word := JoinWord(syllables, c.boundary)
	ranks := c.Ranks(syllables, tags)
	scan := c.scanRoot(ranks)

	res := Classification{
		Word:      word,
		Syllables: syllables,
		Ranks:     ranks,
		Span:      scan.span,
	}
	if !scan.span.Empty() {
		res.RootWord = JoinWord(syllables[scan.span.Lo:scan.span.Hi+1], c.boundary)
	}

	facts := wordFacts{
		collision:  words != nil && words.Contains(word),
		loneFlag:   scan.loneFlag,
		duplicates: hasDuplicateAffixes(ranks, c.order.RootRank()),
		sorted:     isNonDecreasing(ranks),
		allRoot:    allEqual(ranks, c.order.RootRank()),
	}
	res.Verdict = decide(facts)
	return res
}

// Ranks maps each syllable to its category rank. A syllable with no
// category tag is Root. When several category tags apply, the lowest rank
// wins so the result never depends on tag order.
func (c *Classifier) Ranks(syllables []string, tags TagLookup) []int {
	ranks := make([]int, len(syllables))
	for i, s := range syllables {
		ranks[i] = c.rankOf(s, tags)
	}
	return ranks
}

func (c *Classifier) rankOf(syllable string, tags TagLookup) int {
	if tags == nil {
		return c.order.RootRank()
	}
	best, found := 0, false
	for _, tag := range tags.TagsFor(syllable) {
		r, ok := c.order.categoryRank(tag)
		if !ok {
			continue
		}
		if !found || r < best {
			best, found = r, true
		}
	}
	if !found {
		return c.order.RootRank()
	}
	return best
}

// rootScan is the outcome of the forward and backward boundary scans.
type rootScan struct {
	span     Span
	loneFlag bool
}

// scanRoot locates the root segment of ranks. Bounds the scans cannot
// find fall back to the ends of the word; if they cross, the span is empty.
func (c *Classifier) scanRoot(ranks []int) rootScan {
	lo, loFound, lone := c.scanPrefix(ranks)
	hi, hiFound := c.scanSuffix(ranks)
	if !loFound {
		lo = 0
	}
	if !hiFound {
		hi = len(ranks) - 1
	}
	return rootScan{span: Span{Lo: lo, Hi: hi}, loneFlag: lone}
}

// scanPrefix walks forward over prefix affixes and returns the index where
// the root begins. It stops early on a repeated rank, a rank lower than one
// already seen, or a flag not followed by its required category, the last
// of which also reports a lone flag.
func (c *Classifier) scanPrefix(ranks []int) (lo int, found, loneFlag bool) {
	root := c.order.RootRank()
	seen := make(map[int]bool, len(ranks))
	highest := -1
	for i, r := range ranks {
		switch {
		case seen[r] || r >= root:
			return i, true, false
		case r < highest:
			return i, true, false
		case c.order.IsFlag(r) && (i+1 >= len(ranks) || ranks[i+1] != r+1):
			return i, true, true
		}
		seen[r] = true
		highest = r
	}
	return 0, false, false
}

// scanSuffix mirrors scanPrefix from the end of the word and returns the
// index where the root ends.
func (c *Classifier) scanSuffix(ranks []int) (hi int, found bool) {
	root := c.order.RootRank()
	seen := make(map[int]bool, len(ranks))
	lowest := c.order.Len()
	for i := len(ranks) - 1; i >= 0; i-- {
		r := ranks[i]
		switch {
		case seen[r] || r <= root:
			return i, true
		case r > lowest:
			return i, true
		}
		seen[r] = true
		lowest = r
	}
	return 0, false
}

// hasDuplicateAffixes reports whether a non-root rank occurs twice.
// Root may repeat: multi-syllable roots are normal.
func hasDuplicateAffixes(ranks []int, root int) bool {
	seen := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		if r == root {
			continue
		}
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

func isNonDecreasing(ranks []int) bool {
	for i := 1; i < len(ranks); i++ {
		if ranks[i] < ranks[i-1] {
			return false
		}
	}
	return true
}

func allEqual(ranks []int, v int) bool {
	for _, r := range ranks {
		if r != v {
			return false
		}
	}
	return true
}

// wordFacts are the independent observations a verdict is decided from.
type wordFacts struct {
	collision  bool
	loneFlag   bool
	duplicates bool
	sorted     bool
	allRoot    bool
}

// verdictRules is evaluated top to bottom; the first matching rule wins.
var verdictRules = []struct {
	verdict Verdict
	applies func(wordFacts) bool
}{
	{VerdictCollision, func(f wordFacts) bool { return f.collision }},
	{VerdictLoneFlag, func(f wordFacts) bool { return f.loneFlag }},
	{VerdictDuplicateAffixes, func(f wordFacts) bool { return f.duplicates }},
	{VerdictImproperOrder, func(f wordFacts) bool { return !f.sorted }},
	{VerdictNewWord, func(f wordFacts) bool { return f.allRoot }},
	{VerdictVariant, func(wordFacts) bool { return true }},
}

func decide(f wordFacts) Verdict {
	for _, rule := range verdictRules {
		if rule.applies(f) {
			return rule.verdict
		}
	}
	return VerdictVariant
}
