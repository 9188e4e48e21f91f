package database

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	infradb "github.com/daglabs/ghostdag-consensus/infrastructure/db/database"
)

// DomainDBContext adapts an infrastructure/db/database.Database to
// model.DBReader, so stores can read committed data without knowing about
// the block-addition transaction that may currently be in flight.
type DomainDBContext struct {
	db infradb.Database
}

// New wraps db as a DomainDBContext.
func New(db infradb.Database) *DomainDBContext {
	return &DomainDBContext{db: db}
}

// Get implements model.DBReader.
func (ctx *DomainDBContext) Get(key model.DBKey) ([]byte, error) {
	value, err := ctx.db.Get(infradb.Key(key.Bytes()))
	if err != nil {
		if infradb.IsNotFoundError(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Has implements model.DBReader.
func (ctx *DomainDBContext) Has(key model.DBKey) (bool, error) {
	return ctx.db.Has(infradb.Key(key.Bytes()))
}

// DomainDBTransaction adapts an infrastructure/db/database.Transaction to
// model.DBTransaction. A single transaction backs one block-addition: every
// store's Commit is called against it before the coordinator commits the
// underlying transaction, so the block header and its GHOSTDAG/reachability
// records land together or not at all.
type DomainDBTransaction struct {
	tx infradb.Transaction
}

// NewTransaction begins a new DomainDBTransaction over db.
func NewTransaction(db infradb.Database) (*DomainDBTransaction, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	return &DomainDBTransaction{tx: tx}, nil
}

// Get implements model.DBReader.
func (tx *DomainDBTransaction) Get(key model.DBKey) ([]byte, error) {
	value, err := tx.tx.Get(infradb.Key(key.Bytes()))
	if err != nil {
		if infradb.IsNotFoundError(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Has implements model.DBReader.
func (tx *DomainDBTransaction) Has(key model.DBKey) (bool, error) {
	return tx.tx.Has(infradb.Key(key.Bytes()))
}

// Put implements model.DBTransaction.
func (tx *DomainDBTransaction) Put(key model.DBKey, value []byte) error {
	return tx.tx.Put(infradb.Key(key.Bytes()), value)
}

// Delete implements model.DBTransaction.
func (tx *DomainDBTransaction) Delete(key model.DBKey) error {
	return tx.tx.Delete(infradb.Key(key.Bytes()))
}

// Commit commits the underlying transaction.
func (tx *DomainDBTransaction) Commit() error {
	return tx.tx.Commit()
}

// Rollback rolls back the underlying transaction.
func (tx *DomainDBTransaction) Rollback() error {
	return tx.tx.Rollback()
}
