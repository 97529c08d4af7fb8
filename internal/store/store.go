// Package store persists a draconic.Lexicon in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cours-de-latin/draconic"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a word has no stored entry.
var ErrNotFound = errors.New("not found")

// Store saves and loads lexicon state. It is safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps writes serialised.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS syllables (
		syllable TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		word TEXT UNIQUE NOT NULL,
		definition TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tags (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS tag_members (
		tag TEXT NOT NULL REFERENCES tags(name) ON DELETE CASCADE,
		member TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (tag, member)
	);

	CREATE INDEX IF NOT EXISTS idx_tag_members_member ON tag_members(member);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored state with st in one transaction. Entries whose
// definition is unchanged keep their id and timestamp.
func (s *Store) Save(ctx context.Context, st draconic.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM syllables`); err != nil {
		return fmt.Errorf("clear syllables: %w", err)
	}
	for i, syl := range st.Taken {
		if _, err := tx.ExecContext(ctx, `INSERT INTO syllables (syllable, position) VALUES (?, ?)`, syl, i); err != nil {
			return fmt.Errorf("save syllable %q: %w", syl, err)
		}
	}

	if err := saveEntries(ctx, tx, st.Entries); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tag_members`); err != nil {
		return fmt.Errorf("clear tag members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tags`); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for name, members := range st.Tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("save tag %q: %w", name, err)
		}
		for i, m := range members {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO tag_members (tag, member, position) VALUES (?, ?, ?)`, name, m, i); err != nil {
				return fmt.Errorf("save tag %q member %q: %w", name, m, err)
			}
		}
	}

	return tx.Commit()
}

func saveEntries(ctx context.Context, tx *sql.Tx, entries map[string]string) error {
	rows, err := tx.QueryContext(ctx, `SELECT word, definition FROM entries`)
	if err != nil {
		return fmt.Errorf("read entries: %w", err)
	}
	stored := make(map[string]string)
	for rows.Next() {
		var word, def string
		if err := rows.Scan(&word, &def); err != nil {
			rows.Close()
			return err
		}
		stored[word] = def
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for word := range stored {
		if _, keep := entries[word]; keep {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE word = ?`, word); err != nil {
			return fmt.Errorf("delete entry %q: %w", word, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for word, def := range entries {
		prev, exists := stored[word]
		switch {
		case !exists:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO entries (id, word, definition, updated_at) VALUES (?, ?, ?, ?)`,
				uuid.New().String(), word, def, now)
		case prev != def:
			_, err = tx.ExecContext(ctx,
				`UPDATE entries SET definition = ?, updated_at = ? WHERE word = ?`, def, now, word)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("save entry %q: %w", word, err)
		}
	}
	return nil
}

// Load reads the stored state. A fresh database yields an empty State.
func (s *Store) Load(ctx context.Context) (draconic.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := draconic.State{
		Entries: make(map[string]string),
		Tags:    make(map[string][]string),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT syllable FROM syllables ORDER BY position`)
	if err != nil {
		return st, fmt.Errorf("load syllables: %w", err)
	}
	for rows.Next() {
		var syl string
		if err := rows.Scan(&syl); err != nil {
			rows.Close()
			return st, err
		}
		st.Taken = append(st.Taken, syl)
	}
	if err := rows.Close(); err != nil {
		return st, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT word, definition FROM entries`)
	if err != nil {
		return st, fmt.Errorf("load entries: %w", err)
	}
	for rows.Next() {
		var word, def string
		if err := rows.Scan(&word, &def); err != nil {
			rows.Close()
			return st, err
		}
		st.Entries[word] = def
	}
	if err := rows.Close(); err != nil {
		return st, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT t.name, m.member
		FROM tags t LEFT JOIN tag_members m ON m.tag = t.name
		ORDER BY t.name, m.position`)
	if err != nil {
		return st, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var member sql.NullString
		if err := rows.Scan(&name, &member); err != nil {
			return st, err
		}
		if _, ok := st.Tags[name]; !ok {
			st.Tags[name] = nil
		}
		if member.Valid {
			st.Tags[name] = append(st.Tags[name], member.String)
		}
	}
	return st, rows.Err()
}

// EntryRecord is the stored metadata of a dictionary word.
type EntryRecord struct {
	ID        string
	Word      string
	UpdatedAt time.Time
}

// Entry returns the stored metadata for word.
func (s *Store) Entry(ctx context.Context, word string) (EntryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := EntryRecord{Word: word}
	var updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, updated_at FROM entries WHERE word = ?`, word).Scan(&rec.ID, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated)
	return rec, err
}
