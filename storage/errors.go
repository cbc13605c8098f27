package storage

import (
	"errors"
)

var (
	// ErrNotFound is returned when a retrieved key does not exist in the database.
	// Note: there is another not found error: badger.ErrKeyNotFound (and pebble.ErrNotFound).
	// The database-specific errors are converted to storage.ErrNotFound by the
	// storage/operation implementations, so that higher layers only check for this one.
	ErrNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when a write-once entry is inserted twice.
	ErrAlreadyExists = errors.New("key already exists")

	// ErrNotBootstrapped is returned when the chain state has not been
	// initialized with a genesis block.
	ErrNotBootstrapped = errors.New("chain state not bootstrapped")
)
