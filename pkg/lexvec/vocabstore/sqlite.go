// Package vocabstore caches a built vocabulary (symbol table, discard
// probabilities, and pair adjacency lists) in a SQLite database keyed by
// a fingerprint of the inputs that produced it, so a resumed or repeated
// run over the same corpus and pair files skips re-scanning them.
//
// The schema-init-then-prepared-statement shape follows the host
// codebase's store/sqlite package; unlike that package this one has a
// single consumer (vocab.Vocabulary) and no interface indirection, since
// lexvec has no second storage backend to abstract over.
package vocabstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
)

// Store wraps a SQLite-backed vocabulary cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a vocabulary cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vocabstore: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("vocabstore: enable WAL: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	fingerprint TEXT PRIMARY KEY,
	train_words INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS words (
	fingerprint TEXT NOT NULL,
	idx INTEGER NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	pdiscard REAL NOT NULL,
	PRIMARY KEY(fingerprint, idx)
);

CREATE TABLE IF NOT EXISTS pairs (
	fingerprint TEXT NOT NULL,
	idx INTEGER NOT NULL,
	kind INTEGER NOT NULL,
	target INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pairs_lookup ON pairs(fingerprint, idx, kind);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Fingerprint derives a stable cache key from the inputs that determine a
// vocabulary's contents: the corpus path, min_count, sample threshold,
// and the strong/weak pair file paths. It is a fingerprint of
// configuration, not of file contents — callers that edit a corpus file
// in place without changing its path must evict the cache themselves, a
// tradeoff made for fingerprinting speed on large corpora.
func Fingerprint(corpusPath string, minCount int, sample float64, strongFile, weakFile string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%g|%s|%s", corpusPath, minCount, sample, strongFile, weakFile)
	return hex.EncodeToString(h.Sum(nil))
}

// Load returns the cached vocabulary for fingerprint, or ok=false if no
// entry exists.
func (s *Store) Load(ctx context.Context, fingerprint string) (*vocab.Vocabulary, bool, error) {
	var trainWords int64
	err := s.db.QueryRowContext(ctx, `SELECT train_words FROM runs WHERE fingerprint=?`, fingerprint).Scan(&trainWords)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("vocabstore: load run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT idx, word, count, pdiscard FROM words WHERE fingerprint=? ORDER BY idx`, fingerprint)
	if err != nil {
		return nil, false, fmt.Errorf("vocabstore: load words: %w", err)
	}
	var entries []vocab.Entry
	for rows.Next() {
		var idx int
		var e vocab.Entry
		if err := rows.Scan(&idx, &e.Word, &e.Count, &e.PDiscard); err != nil {
			rows.Close()
			return nil, false, fmt.Errorf("vocabstore: scan word: %w", err)
		}
		if idx != len(entries) {
			rows.Close()
			return nil, false, fmt.Errorf("vocabstore: out-of-order index %d for fingerprint %s", idx, fingerprint)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, false, err
	}
	rows.Close()

	pairRows, err := s.db.QueryContext(ctx, `
SELECT idx, kind, target FROM pairs WHERE fingerprint=? ORDER BY idx, kind`, fingerprint)
	if err != nil {
		return nil, false, fmt.Errorf("vocabstore: load pairs: %w", err)
	}
	for pairRows.Next() {
		var idx, kind, target int
		if err := pairRows.Scan(&idx, &kind, &target); err != nil {
			pairRows.Close()
			return nil, false, fmt.Errorf("vocabstore: scan pair: %w", err)
		}
		if idx < 0 || idx >= len(entries) {
			continue
		}
		if vocab.PairKind(kind) == vocab.Strong {
			entries[idx].StrongPairs = append(entries[idx].StrongPairs, int32(target))
		} else {
			entries[idx].WeakPairs = append(entries[idx].WeakPairs, int32(target))
		}
	}
	if err := pairRows.Err(); err != nil {
		pairRows.Close()
		return nil, false, err
	}
	pairRows.Close()

	v := vocab.Restore(entries, trainWords)
	return v, true, nil
}

// Save persists v's current state under fingerprint, replacing any
// existing cache entry for that key.
func (s *Store) Save(ctx context.Context, fingerprint string, v *vocab.Vocabulary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vocabstore: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE fingerprint=?`, fingerprint); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE fingerprint=?`, fingerprint); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pairs WHERE fingerprint=?`, fingerprint); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (fingerprint, train_words) VALUES (?, ?)`,
		fingerprint, v.TrainWords); err != nil {
		return err
	}

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (fingerprint, idx, word, count, pdiscard) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wordStmt.Close()

	pairStmt, err := tx.PrepareContext(ctx, `INSERT INTO pairs (fingerprint, idx, kind, target) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pairStmt.Close()

	for i, e := range v.Entries {
		if _, err := wordStmt.ExecContext(ctx, fingerprint, i, e.Word, e.Count, e.PDiscard); err != nil {
			return err
		}
		for _, t := range e.StrongPairs {
			if _, err := pairStmt.ExecContext(ctx, fingerprint, i, int(vocab.Strong), t); err != nil {
				return err
			}
		}
		for _, t := range e.WeakPairs {
			if _, err := pairStmt.ExecContext(ctx, fingerprint, i, int(vocab.Weak), t); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
