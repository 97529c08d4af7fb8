package draconic

import (
	"errors"
	"reflect"
	"testing"
)

// tagMap is a TagLookup backed by syllable → tags.
type tagMap map[string][]string

func (m tagMap) TagsFor(s string) []string { return m[s] }

func (m tagMap) SyllablesFor(tag string) []string {
	var out []string
	for s, tags := range m {
		for _, t := range tags {
			if t == tag {
				out = append(out, s)
			}
		}
	}
	return out
}

// wordList is a WordSet.
type wordList []string

func (w wordList) Contains(word string) bool {
	for _, x := range w {
		if x == word {
			return true
		}
	}
	return false
}

// smallOrder is [Flag(0), Affix(1), Root(2), Suffix Affix(3)].
var smallOrder = MustAffixOrder([]string{"Flag", "Affix", "Root", "Suffix Affix"})

var smallTags = tagMap{
	"fa": {"Flag"},
	"ka": {"Affix"},
	"su": {"Suffix Affix"},
	"ri": {"Animal"}, // not a category tag
}

func TestClassifySmallOrder(t *testing.T) {
	c := NewClassifier(smallOrder, "")
	tests := []struct {
		word     string
		verdict  Verdict
		span     Span
		rootWord string
	}{
		{"ri-lu-mi", VerdictNewWord, Span{0, 2}, "ri-lu-mi"},
		{"ka-ri", VerdictVariant, Span{1, 1}, "ri"},
		{"fa-ri", VerdictLoneFlag, Span{0, 1}, "fa-ri"},
		{"fa-ka-ri", VerdictVariant, Span{2, 2}, "ri"},
		{"ka-ri-lu-su", VerdictVariant, Span{1, 2}, "ri-lu"},
		{"su-ri", VerdictImproperOrder, Span{0, 1}, "su-ri"},
		{"ri-ka", VerdictImproperOrder, Span{0, 1}, "ri-ka"},
		{"ka-ri-ka", VerdictDuplicateAffixes, Span{1, 2}, "ri-ka"},
		{"ka-ka-ri", VerdictDuplicateAffixes, Span{1, 2}, "ka-ri"},
		{"fa-ri-ka-ka", VerdictLoneFlag, Span{0, 3}, "fa-ri-ka-ka"},
		{"fa", VerdictLoneFlag, Span{0, 0}, "fa"},
		{"ka", VerdictVariant, Span{0, 0}, "ka"},
		{"su", VerdictVariant, Span{0, 0}, "su"},
		{"ka-su", VerdictVariant, Span{1, 0}, ""},
		{"/ka-ri/", VerdictVariant, Span{1, 1}, "ri"},
	}
	for _, tt := range tests {
		got, err := c.Classify(tt.word, smallTags, nil)
		if err != nil {
			t.Errorf("Classify(%q): %v", tt.word, err)
			continue
		}
		if got.Verdict != tt.verdict {
			t.Errorf("Classify(%q).Verdict = %q, want %q (ranks %v)", tt.word, got.Verdict, tt.verdict, got.Ranks)
		}
		if got.Span != tt.span {
			t.Errorf("Classify(%q).Span = %v, want %v", tt.word, got.Span, tt.span)
		}
		if got.RootWord != tt.rootWord {
			t.Errorf("Classify(%q).RootWord = %q, want %q", tt.word, got.RootWord, tt.rootWord)
		}
	}
}

func TestClassifyDefaultOrder(t *testing.T) {
	c := NewClassifier(nil, "")
	tags := tagMap{
		"tha": {"Grammar Affix"},
		"pa":  {"Prepositional Flag"},
		"pi":  {"Prepositional Affix"},
		"zi":  {"Factuality Affix"},
		"nu":  {"Negative Affix"},
		"ra":  {"Recurrence Affix"},
		"ga":  {"Gender Affix"},
	}
	tests := []struct {
		word     string
		verdict  Verdict
		rootWord string
	}{
		{"tha-zi-kai-ra-ga", VerdictVariant, "kai"},
		{"pa-pi-kai", VerdictVariant, "kai"},
		{"tha-pa-pi-nu-kai-ra", VerdictVariant, "kai"},
		{"pa-nu-kai", VerdictLoneFlag, "pa-nu-kai"},
		{"tha-pa-kai", VerdictLoneFlag, "pa-kai"},
		{"zi-tha-kai", VerdictImproperOrder, "tha-kai"},
		{"kai-ga-ra", VerdictImproperOrder, "kai-ga"},
		{"ra-kai-ra", VerdictDuplicateAffixes, "ra-kai"},
		{"kai", VerdictNewWord, "kai"},
	}
	for _, tt := range tests {
		got, err := c.Classify(tt.word, tags, nil)
		if err != nil {
			t.Errorf("Classify(%q): %v", tt.word, err)
			continue
		}
		if got.Verdict != tt.verdict || got.RootWord != tt.rootWord {
			t.Errorf("Classify(%q) = (%q, %q), want (%q, %q); ranks %v",
				tt.word, got.Verdict, got.RootWord, tt.verdict, tt.rootWord, got.Ranks)
		}
	}
}

func TestClassifyCollision(t *testing.T) {
	c := NewClassifier(smallOrder, "")
	existing := wordList{"ka-ri", "fa-ri", "ka-ka-ri"}
	for _, w := range existing {
		got, err := c.Classify(w, smallTags, existing)
		if err != nil {
			t.Fatalf("Classify(%q): %v", w, err)
		}
		if got.Verdict != VerdictCollision {
			t.Errorf("Classify(%q).Verdict = %q, want %q", w, got.Verdict, VerdictCollision)
		}
	}
	got, _ := c.Classify("ka-ri", smallTags, existing)
	if got.RootWord != "ri" {
		t.Errorf("collision RootWord = %q, want %q", got.RootWord, "ri")
	}
}

func TestClassifyUntaggedSingleSyllable(t *testing.T) {
	c := NewClassifier(nil, "")
	for _, w := range []string{"tha", "a", "ksuw", "unknown"} {
		got, err := c.Classify(w, nil, nil)
		if err != nil {
			t.Fatalf("Classify(%q): %v", w, err)
		}
		if got.Verdict != VerdictNewWord || got.RootWord != w || got.Span != (Span{0, 0}) {
			t.Errorf("Classify(%q) = %+v", w, got)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier(smallOrder, "")
	for _, w := range []string{"fa-ka-ri", "ka-ri-ka", "su-ri", "ri-lu"} {
		a, _ := c.Classify(w, smallTags, nil)
		b, _ := c.Classify(w, smallTags, nil)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Classify(%q) not idempotent: %+v vs %+v", w, a, b)
		}
	}
}

func TestClassifyInvalidWord(t *testing.T) {
	c := NewClassifier(nil, "")
	tests := []struct {
		word string
		want error
	}{
		{"", ErrEmptyWord},
		{"  ", ErrEmptyWord},
		{"//", ErrEmptyWord},
		{"ka--ri", ErrEmptySyllable},
		{"-ka", ErrEmptySyllable},
		{"ka-", ErrEmptySyllable},
	}
	for _, tt := range tests {
		_, err := c.Classify(tt.word, nil, nil)
		if !errors.Is(err, tt.want) {
			t.Errorf("Classify(%q) error = %v, want %v", tt.word, err, tt.want)
		}
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("Classify(%q) error %v does not wrap ErrInvalidWord", tt.word, err)
		}
	}
}

func TestClassifyCustomBoundary(t *testing.T) {
	c := NewClassifier(smallOrder, ".")
	got, err := c.Classify("ka.ri", smallTags, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Verdict != VerdictVariant || got.RootWord != "ri" || got.Word != "ka.ri" {
		t.Errorf("Classify(ka.ri) = %+v", got)
	}
}

func TestRanksTieBreak(t *testing.T) {
	c := NewClassifier(smallOrder, "")
	tags := tagMap{
		"ka": {"Suffix Affix", "Affix"},
		"ki": {"Affix", "Suffix Affix"},
		"ku": {"affix"},
		"ko": {"Root"}, // no affix marker
	}
	got := c.Ranks([]string{"ka", "ki", "ku", "ko", "zz"}, tags)
	want := []int{1, 1, 1, 2, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ranks = %v, want %v", got, want)
	}
}

func TestHasDuplicateAffixes(t *testing.T) {
	tests := []struct {
		ranks []int
		want  bool
	}{
		{[]int{2, 2, 2}, false},
		{[]int{0, 1, 2, 3}, false},
		{[]int{1, 2, 1}, true},
		{[]int{3, 2, 2, 3}, true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := hasDuplicateAffixes(tt.ranks, 2); got != tt.want {
			t.Errorf("hasDuplicateAffixes(%v) = %v, want %v", tt.ranks, got, tt.want)
		}
	}
}

func TestDecidePriority(t *testing.T) {
	tests := []struct {
		facts wordFacts
		want  Verdict
	}{
		{wordFacts{collision: true, loneFlag: true, duplicates: true}, VerdictCollision},
		{wordFacts{loneFlag: true, duplicates: true}, VerdictLoneFlag},
		{wordFacts{duplicates: true, sorted: false}, VerdictDuplicateAffixes},
		{wordFacts{sorted: false}, VerdictImproperOrder},
		{wordFacts{sorted: true, allRoot: true}, VerdictNewWord},
		{wordFacts{sorted: true}, VerdictVariant},
	}
	for _, tt := range tests {
		if got := decide(tt.facts); got != tt.want {
			t.Errorf("decide(%+v) = %q, want %q", tt.facts, got, tt.want)
		}
	}
}

func TestValidateBoundary(t *testing.T) {
	for _, b := range []string{"-", ".", "·"} {
		if err := ValidateBoundary(b); err != nil {
			t.Errorf("ValidateBoundary(%q) = %v, want nil", b, err)
		}
	}
	for _, b := range []string{"", "--", "/", " ", "\t"} {
		if err := ValidateBoundary(b); !errors.Is(err, ErrInvalidBoundary) {
			t.Errorf("ValidateBoundary(%q) = %v, want ErrInvalidBoundary", b, err)
		}
	}
}
