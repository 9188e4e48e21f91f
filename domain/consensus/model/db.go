package model

// DBKey is an opaque, bucket-namespaced key used by the database layer.
// Concrete implementations live in domain/consensus/database.
type DBKey interface {
	Bytes() []byte
}

// DBReader is the read side of the store-transaction contract: repeatable
// reads against a snapshot that was consistent as of some previously
// committed block.
type DBReader interface {
	Get(key DBKey) ([]byte, error)
	Has(key DBKey) (bool, error)
}

// DBTransaction is the write side: a batch of puts/deletes that commits
// atomically, together with the block header write, or not at all.
type DBTransaction interface {
	DBReader
	Put(key DBKey, value []byte) error
	Delete(key DBKey) error
}

// Store is the common shape every consensus data store implements on top of
// its type-specific accessors: stage a batch of changes in memory, then
// commit them into a DBTransaction, or discard them.
type Store interface {
	Discard()
	IsStaged() bool
}
