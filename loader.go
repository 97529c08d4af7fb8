package draconic

import (
	"slices"
	"sort"
	"strings"
)

// State is a plain copy of a Lexicon's contents, exchanged with storage.
type State struct {
	// Taken lists claimed syllables in inventory order.
	Taken []string
	// Entries maps word → definition.
	Entries map[string]string
	// Tags maps tag name → members in assignment order.
	Tags map[string][]string
}

// Snapshot returns a deep copy of the lexicon contents.
func (l *Lexicon) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := State{
		Entries: make(map[string]string, len(l.entries)),
		Tags:    make(map[string][]string, len(l.tags)),
	}
	for s := range l.taken {
		st.Taken = append(st.Taken, s)
	}
	sort.Slice(st.Taken, func(i, j int) bool {
		return l.inventory.position(st.Taken[i]) < l.inventory.position(st.Taken[j])
	})
	for w, d := range l.entries {
		st.Entries[w] = d
	}
	for name, members := range l.tags {
		st.Tags[name] = slices.Clone(members)
	}
	return st
}

// Restore replaces the lexicon contents with st. Taken syllables outside
// the inventory and blank tag names are dropped and returned.
func (l *Lexicon) Restore(st State) (dropped []string) {
	taken := make(map[string]bool, len(st.Taken))
	for _, s := range st.Taken {
		if !l.inventory.Contains(s) {
			dropped = append(dropped, s)
			continue
		}
		taken[s] = true
	}
	entries := make(map[string]string, len(st.Entries))
	for w, d := range st.Entries {
		entries[w] = d
	}
	tags := make(map[string][]string, len(st.Tags))
	for name, members := range st.Tags {
		if strings.TrimSpace(name) == "" {
			dropped = append(dropped, name)
			continue
		}
		tags[name] = slices.Clone(members)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.taken, l.entries, l.tags = taken, entries, tags
	return dropped
}
