// Package internalerr collects sentinel errors shared across lexvec's
// packages, so callers can distinguish failure kinds with errors.Is
// instead of matching on message text.
package internalerr

import "errors"

var (
	// ErrCorpusUnreadable means the input corpus file could not be opened.
	ErrCorpusUnreadable = errors.New("corpus file unreadable")

	// ErrEmptyVocabulary means sort_and_reduce left zero surviving words,
	// usually because min-count exceeds every word's frequency.
	ErrEmptyVocabulary = errors.New("vocabulary is empty after reduction")

	// ErrInvalidConfig means a hyperparameter combination cannot produce
	// a valid run (e.g. non-positive dimension or window).
	ErrInvalidConfig = errors.New("invalid training configuration")

	// ErrTokenNotFound means a lookup missed the vocabulary hash table.
	ErrTokenNotFound = errors.New("token not in vocabulary")

	// ErrStaleCache means a vocabstore cache entry no longer matches its
	// corpus/config fingerprint and must be rebuilt.
	ErrStaleCache = errors.New("vocabulary cache is stale")
)
