package draconic

import "fmt"

// Pool selects a subset of the syllable inventory.
type Pool string

const (
	PoolAll       Pool = "all"
	PoolTaken     Pool = "taken"
	PoolAvailable Pool = "available"
)

// ParsePool converts a pool name; "" means PoolAll.
func ParsePool(s string) (Pool, error) {
	switch Pool(s) {
	case "", PoolAll:
		return PoolAll, nil
	case PoolTaken, PoolAvailable:
		return Pool(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPool, s)
}

// Claim marks syllable as taken and records its definition. Claiming an
// already taken syllable replaces the definition.
func (l *Lexicon) Claim(syllable, definition string) error {
	syllable = Clean(syllable)
	if !l.inventory.Contains(syllable) {
		return fmt.Errorf("%w: %s", ErrUnknownSyllable, Display(syllable))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.taken[syllable] = true
	l.entries[syllable] = definition
	return nil
}

// Release returns syllable to the available pool and drops its entry and
// tag assignments.
func (l *Lexicon) Release(syllable string) error {
	syllable = Clean(syllable)
	if !l.inventory.Contains(syllable) {
		return fmt.Errorf("%w: %s", ErrUnknownSyllable, Display(syllable))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.taken, syllable)
	delete(l.entries, syllable)
	l.removeMember(syllable)
	return nil
}

// IsTaken reports whether syllable has been claimed.
func (l *Lexicon) IsTaken(syllable string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.taken[Clean(syllable)]
}

// Syllables returns the syllables of pool containing substr, in inventory
// order.
func (l *Lexicon) Syllables(pool Pool, substr string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pool(pool, l.inventory.Filter(substr))
}

// Random picks a syllable from pool.
func (l *Lexicon) Random(pool Pool) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	candidates := l.pool(pool, l.inventory.syllables)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyPool, pool)
	}
	return candidates[l.rnd.IntN(len(candidates))], nil
}

// pool filters syllables down to pool. Callers hold l.mu.
func (l *Lexicon) pool(pool Pool, syllables []string) []string {
	if pool == PoolAll || pool == "" {
		return syllables
	}
	want := pool == PoolTaken
	var out []string
	for _, s := range syllables {
		if l.taken[s] == want {
			out = append(out, s)
		}
	}
	return out
}
