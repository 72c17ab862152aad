package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("vocab: entry not found")

// Store persists vocabulary entries in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			word TEXT NOT NULL,
			word_key TEXT NOT NULL,
			sentence TEXT NOT NULL,
			definition TEXT NOT NULL DEFAULT '',
			part_of_speech TEXT NOT NULL DEFAULT '',
			phonetic TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			source_title TEXT NOT NULL DEFAULT '',
			created_utc TEXT NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_words_key_sentence ON words(word_key, sentence);`,
		`CREATE INDEX IF NOT EXISTS idx_words_created ON words(created_utc);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Save stores an entry, assigning it an ID and creation time. Saving
// the same word with the same sentence again returns the existing entry
// instead of creating a duplicate.
func (s *Store) Save(ctx context.Context, entry Entry) (Entry, error) {
	entry.Word = strings.TrimSpace(entry.Word)
	entry.Sentence = strings.TrimSpace(entry.Sentence)
	if entry.Word == "" {
		return Entry{}, errors.New("vocab: word cannot be empty")
	}
	key := normalizeWord(entry.Word)

	if existing, err := s.findByKeySentence(ctx, key, entry.Sentence); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, err
	}

	entry.ID = ulid.Make().String()
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (id, word, word_key, sentence, definition, part_of_speech, phonetic, source_url, source_title, created_utc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Word, key, entry.Sentence, entry.Definition,
		entry.PartOfSpeech, entry.Phonetic, entry.SourceURL, entry.SourceTitle,
		entry.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, word, sentence, definition, part_of_speech, phonetic, source_url, source_title, created_utc
		 FROM words WHERE id = ?`, id)
	return scanEntry(row)
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, word, sentence, definition, part_of_speech, phonetic, source_url, source_title, created_utc
		 FROM words ORDER BY created_utc DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes the entry with the given ID. Returns ErrNotFound if no
// such entry exists.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of saved entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func (s *Store) findByKeySentence(ctx context.Context, key, sentence string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, word, sentence, definition, part_of_speech, phonetic, source_url, source_title, created_utc
		 FROM words WHERE word_key = ? AND sentence = ?`, key, sentence)
	return scanEntry(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var created string
	err := row.Scan(&entry.ID, &entry.Word, &entry.Sentence, &entry.Definition,
		&entry.PartOfSpeech, &entry.Phonetic, &entry.SourceURL, &entry.SourceTitle, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created time: %w", err)
	}
	return entry, nil
}
