// Package database defines the generic key/value contract the consensus
// stores are built on, independent of the underlying engine. See
// domain/consensus/database for the bucket/key namespacing layered on top,
// and infrastructure/db/database/ldb for the concrete LevelDB-backed
// implementation.
package database

import "github.com/pkg/errors"

// ErrNotFound is returned by Get when the given key does not exist.
var ErrNotFound = errors.New("key not found")

// IsNotFoundError reports whether err (or a cause it wraps) is ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Key is a fully-qualified, engine-independent key.
type Key []byte

// DataAccessor defines the common interface by which data gets accessed in
// a generic consensus database. Any ordered or keyed KV engine can
// implement it; the consensus stores never depend on this interface
// directly, instead going through a Transaction for a single block's
// writes.
type DataAccessor interface {
	Put(key Key, value []byte) error
	Get(key Key) ([]byte, error)
	Has(key Key) (bool, error)
	Delete(key Key) error
	Close() error
}

// Transaction groups a set of writes that must commit atomically, together
// with the block header write, or not at all.
type Transaction interface {
	DataAccessor
	Commit() error
	Rollback() error
}

// Database is a DataAccessor that can additionally begin transactions.
type Database interface {
	DataAccessor
	Begin() (Transaction, error)
}
