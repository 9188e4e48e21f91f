// Package blockheaderstore persists DomainBlockHeader records.
package blockheaderstore

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database/serialization"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/lrucache"
)

var bucket = database.MakeBucket([]byte("block-headers"))
var countKey = database.MakeBucket(nil).Key([]byte("block-headers-count"))

// blockHeaderStore is a BlockHeaderStore backed by a generic KV engine.
type blockHeaderStore struct {
	staging  map[externalapi.DomainHash]*model.DomainBlockHeader
	toDelete map[externalapi.DomainHash]struct{}
	cache    *lrucache.LRUCache
	count    uint64
}

// New instantiates a new BlockHeaderStore.
func New(dbContext model.DBReader, cacheSize int) (model.BlockHeaderStore, error) {
	store := &blockHeaderStore{
		staging:  make(map[externalapi.DomainHash]*model.DomainBlockHeader),
		toDelete: make(map[externalapi.DomainHash]struct{}),
		cache:    lrucache.New(cacheSize),
	}

	if err := store.initializeCount(dbContext); err != nil {
		return nil, err
	}

	return store, nil
}

func (bhs *blockHeaderStore) initializeCount(dbContext model.DBReader) error {
	hasCount, err := dbContext.Has(countKey)
	if err != nil {
		return err
	}
	if !hasCount {
		return nil
	}

	countBytes, err := dbContext.Get(countKey)
	if err != nil {
		return err
	}
	count, err := serialization.DeserializeUint64(countBytes)
	if err != nil {
		return err
	}
	bhs.count = count
	return nil
}

// Stage stages the given block header for the given blockHash.
func (bhs *blockHeaderStore) Stage(blockHash *externalapi.DomainHash, blockHeader *model.DomainBlockHeader) {
	bhs.staging[*blockHash] = blockHeader.Clone()
}

func (bhs *blockHeaderStore) IsStaged() bool {
	return len(bhs.staging) != 0 || len(bhs.toDelete) != 0
}

func (bhs *blockHeaderStore) Discard() {
	bhs.staging = make(map[externalapi.DomainHash]*model.DomainBlockHeader)
	bhs.toDelete = make(map[externalapi.DomainHash]struct{})
}

func (bhs *blockHeaderStore) Commit(dbTx model.DBTransaction) error {
	for hash, header := range bhs.staging {
		hash := hash
		headerBytes, err := serialization.SerializeBlockHeader(header)
		if err != nil {
			return err
		}
		if err := dbTx.Put(bhs.hashAsKey(&hash), headerBytes); err != nil {
			return err
		}
		bhs.cache.Add(&hash, header)
	}

	for hash := range bhs.toDelete {
		hash := hash
		if err := dbTx.Delete(bhs.hashAsKey(&hash)); err != nil {
			return err
		}
		bhs.cache.Remove(&hash)
	}

	newCount := bhs.count + uint64(len(bhs.staging)) - uint64(len(bhs.toDelete))
	if err := dbTx.Put(countKey, serialization.SerializeUint64(newCount)); err != nil {
		return err
	}
	bhs.count = newCount

	bhs.Discard()
	return nil
}

// BlockHeader gets the block header associated with the given blockHash.
func (bhs *blockHeaderStore) BlockHeader(dbContext model.DBReader, blockHash *externalapi.DomainHash) (*model.DomainBlockHeader, error) {
	if header, ok := bhs.staging[*blockHash]; ok {
		return header.Clone(), nil
	}

	if header, ok := bhs.cache.Get(blockHash); ok {
		return header.(*model.DomainBlockHeader).Clone(), nil
	}

	headerBytes, err := dbContext.Get(bhs.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	header, err := serialization.DeserializeBlockHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	bhs.cache.Add(blockHash, header)
	return header.Clone(), nil
}

// HasBlockHeader returns whether a block header with a given hash exists in the store.
func (bhs *blockHeaderStore) HasBlockHeader(dbContext model.DBReader, blockHash *externalapi.DomainHash) (bool, error) {
	if _, ok := bhs.staging[*blockHash]; ok {
		return true, nil
	}

	if bhs.cache.Has(blockHash) {
		return true, nil
	}

	return dbContext.Has(bhs.hashAsKey(blockHash))
}

func (bhs *blockHeaderStore) hashAsKey(hash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(hash.ByteSlice())
}
