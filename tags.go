package draconic

import (
	"slices"
	"sort"
	"strings"
)

// CreateTag registers an empty tag. Creating an existing tag is a no-op.
func (l *Lexicon) CreateTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyTag
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.tags[name]; !ok {
		l.tags[name] = nil
	}
	return nil
}

// DeleteTag removes a tag and all its assignments.
func (l *Lexicon) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.tags[name]; !ok {
		return ErrUnknownTag
	}
	delete(l.tags, name)
	return nil
}

// AssignTag adds member (a syllable or a word) to tag.
func (l *Lexicon) AssignTag(tag, member string) error {
	tag, member = strings.TrimSpace(tag), Clean(member)
	if tag == "" || member == "" {
		return ErrEmptyTag
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	members, ok := l.tags[tag]
	if !ok {
		return ErrUnknownTag
	}
	if !slices.Contains(members, member) {
		l.tags[tag] = append(members, member)
	}
	return nil
}

// UnassignTag removes member from tag.
func (l *Lexicon) UnassignTag(tag, member string) error {
	tag, member = strings.TrimSpace(tag), Clean(member)
	l.mu.Lock()
	defer l.mu.Unlock()
	members, ok := l.tags[tag]
	if !ok {
		return ErrUnknownTag
	}
	l.tags[tag] = slices.DeleteFunc(members, func(m string) bool { return m == member })
	return nil
}

// Tags returns the sorted tag names containing substr.
func (l *Lexicon) Tags(substr string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []string
	for name := range l.tags {
		if strings.Contains(name, substr) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// TagsFor returns the sorted tags assigned to member.
// Together with SyllablesFor it makes Lexicon a TagLookup.
func (l *Lexicon) TagsFor(member string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tagsFor(Clean(member))
}

// HasTag reports whether tag has been created.
func (l *Lexicon) HasTag(tag string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.tags[strings.TrimSpace(tag)]
	return ok
}

// SyllablesFor returns the members of tag in assignment order.
func (l *Lexicon) SyllablesFor(tag string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.membersOf(strings.TrimSpace(tag))
}

func (l *Lexicon) tagsFor(member string) []string {
	var out []string
	for name, members := range l.tags {
		if slices.Contains(members, member) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (l *Lexicon) membersOf(tag string) []string {
	return slices.Clone(l.tags[tag])
}

// removeMember drops member from every tag. Callers hold the write lock.
func (l *Lexicon) removeMember(member string) {
	for name, members := range l.tags {
		l.tags[name] = slices.DeleteFunc(members, func(m string) bool { return m == member })
	}
}
