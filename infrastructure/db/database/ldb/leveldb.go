// Package ldb implements infrastructure/db/database.Database on top of
// github.com/syndtr/goleveldb, mirroring the donor's ffldb/ldb wrapper but
// trimmed to the plain KV surface the consensus stores need (no flat-file
// side-store, since there is no raw block-body payload to append in this
// module's scope).
package ldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	levelerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/daglabs/ghostdag-consensus/infrastructure/db/database"
)

// LevelDB is a thin wrapper around a goleveldb handle satisfying
// database.Database.
type LevelDB struct {
	ldb *leveldb.DB
}

// NewLevelDB opens (creating if necessary) a LevelDB database at path.
func NewLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return &LevelDB{ldb: db}, nil
}

// Put sets the value for the given key, overwriting any previous value.
func (db *LevelDB) Put(key database.Key, value []byte) error {
	return db.ldb.Put(key, value, nil)
}

// Get returns the value for the given key, or database.ErrNotFound.
func (db *LevelDB) Get(key database.Key) ([]byte, error) {
	value, err := db.ldb.Get(key, nil)
	if err != nil {
		if errors.Is(err, levelerrors.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %x", []byte(key))
		}
		return nil, err
	}
	return value, nil
}

// Has returns whether the given key exists.
func (db *LevelDB) Has(key database.Key) (bool, error) {
	return db.ldb.Has(key, nil)
}

// Delete removes the given key. It is not an error if the key is absent.
func (db *LevelDB) Delete(key database.Key) error {
	return db.ldb.Delete(key, nil)
}

// Close closes the underlying LevelDB handle.
func (db *LevelDB) Close() error {
	return db.ldb.Close()
}

// Begin starts a new LevelDB transaction.
func (db *LevelDB) Begin() (database.Transaction, error) {
	ldbTx, err := db.ldb.OpenTransaction()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open leveldb transaction")
	}
	return &transaction{ldbTx: ldbTx}, nil
}

// transaction is a LevelDB-backed database.Transaction.
type transaction struct {
	ldbTx    *leveldb.Transaction
	isClosed bool
}

func (tx *transaction) Put(key database.Key, value []byte) error {
	if tx.isClosed {
		return errors.New("cannot put into a closed transaction")
	}
	return tx.ldbTx.Put(key, value, nil)
}

func (tx *transaction) Get(key database.Key) ([]byte, error) {
	if tx.isClosed {
		return nil, errors.New("cannot get from a closed transaction")
	}
	value, err := tx.ldbTx.Get(key, nil)
	if err != nil {
		if errors.Is(err, levelerrors.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %x", []byte(key))
		}
		return nil, err
	}
	return value, nil
}

func (tx *transaction) Has(key database.Key) (bool, error) {
	if tx.isClosed {
		return false, errors.New("cannot has from a closed transaction")
	}
	return tx.ldbTx.Has(key, nil)
}

func (tx *transaction) Delete(key database.Key) error {
	if tx.isClosed {
		return errors.New("cannot delete from a closed transaction")
	}
	return tx.ldbTx.Delete(key, nil)
}

func (tx *transaction) Commit() error {
	if tx.isClosed {
		return errors.New("cannot commit a closed transaction")
	}
	tx.isClosed = true
	return tx.ldbTx.Commit()
}

func (tx *transaction) Rollback() error {
	if tx.isClosed {
		return nil
	}
	tx.isClosed = true
	tx.ldbTx.Discard()
	return nil
}

func (tx *transaction) Close() error {
	return tx.Rollback()
}
