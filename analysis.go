package draconic

// Verdict is the outcome of classifying a candidate word.
type Verdict string

const (
	// VerdictNewWord: every syllable is Root, the word may become a new entry.
	VerdictNewWord Verdict = "new word"
	// VerdictVariant: a correctly affixed derived form of some root.
	VerdictVariant Verdict = "variant"
	// VerdictImproperOrder: affixes are out of canonical order.
	VerdictImproperOrder Verdict = "improper affix order"
	// VerdictDuplicateAffixes: one affix category appears twice.
	VerdictDuplicateAffixes Verdict = "duplicate affixes"
	// VerdictLoneFlag: a flag syllable lacks its mandatory follower.
	VerdictLoneFlag Verdict = "lone flag"
	// VerdictCollision: the word is already in the dictionary.
	VerdictCollision Verdict = "collision"
)

// Valid reports whether a word with this verdict may be stored.
func (v Verdict) Valid() bool {
	return v == VerdictNewWord || v == VerdictVariant
}

// String implements fmt.Stringer.
func (v Verdict) String() string {
	return string(v)
}

// Span is an inclusive syllable index range. An empty span has Lo > Hi.
type Span struct {
	Lo int
	Hi int
}

// Empty reports whether the span covers no syllable.
func (s Span) Empty() bool {
	return s.Lo > s.Hi
}

// Classification holds the result of classifying a single word.
type Classification struct {
	// Word is the cleaned input, syllables joined by the boundary marker.
	Word string
	// Syllables is Word split on the boundary marker.
	Syllables []string
	// Ranks holds one category rank per syllable.
	Ranks []int
	// Span is the root segment of Syllables.
	Span Span
	// RootWord is Syllables[Span.Lo:Span.Hi+1] re-joined, or "" if Span is empty.
	RootWord string
	// Verdict is the final outcome.
	Verdict Verdict
}
