// Package ghostdagdatastore persists the per-block output of the GHOSTDAG
// protocol.
package ghostdagdatastore

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database/serialization"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/lrucache"
)

var bucket = database.MakeBucket([]byte("block-ghostdag-data"))

// ghostdagDataStore is a GHOSTDAGDataStore backed by a generic KV engine.
type ghostdagDataStore struct {
	staging map[externalapi.DomainHash]*model.BlockGHOSTDAGData
	cache   *lrucache.LRUCache
}

// New instantiates a new GHOSTDAGDataStore.
func New(cacheSize int) model.GHOSTDAGDataStore {
	return &ghostdagDataStore{
		staging: make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData),
		cache:   lrucache.New(cacheSize),
	}
}

// Stage stages the given blockGHOSTDAGData for the given blockHash.
func (gds *ghostdagDataStore) Stage(blockHash *externalapi.DomainHash, blockGHOSTDAGData *model.BlockGHOSTDAGData) {
	gds.staging[*blockHash] = blockGHOSTDAGData.Clone()
}

func (gds *ghostdagDataStore) IsStaged() bool {
	return len(gds.staging) != 0
}

func (gds *ghostdagDataStore) Discard() {
	gds.staging = make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData)
}

// Commit writes every staged record via dbTx and clears the staging area.
// Callers that touch more than one store for the same block (the usual
// case) share a single dbTx across all of them, so the whole block's
// acceptance lands atomically.
func (gds *ghostdagDataStore) Commit(dbTx model.DBTransaction) error {
	for hash, blockGHOSTDAGData := range gds.staging {
		hash := hash
		blockGHOSTDAGDataBytes, err := serialization.SerializeBlockGHOSTDAGData(blockGHOSTDAGData)
		if err != nil {
			return err
		}
		err = dbTx.Put(gds.hashAsKey(&hash), blockGHOSTDAGDataBytes)
		if err != nil {
			return err
		}
		gds.cache.Add(&hash, blockGHOSTDAGData)
	}

	gds.Discard()
	return nil
}

// Get gets the blockGHOSTDAGData associated with the given blockHash.
func (gds *ghostdagDataStore) Get(dbContext model.DBReader, blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	if blockGHOSTDAGData, ok := gds.staging[*blockHash]; ok {
		return blockGHOSTDAGData.Clone(), nil
	}

	if blockGHOSTDAGData, ok := gds.cache.Get(blockHash); ok {
		return blockGHOSTDAGData.(*model.BlockGHOSTDAGData).Clone(), nil
	}

	blockGHOSTDAGDataBytes, err := dbContext.Get(gds.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	blockGHOSTDAGData, err := serialization.DeserializeBlockGHOSTDAGData(blockGHOSTDAGDataBytes)
	if err != nil {
		return nil, err
	}
	gds.cache.Add(blockHash, blockGHOSTDAGData)
	return blockGHOSTDAGData.Clone(), nil
}

func (gds *ghostdagDataStore) hashAsKey(hash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(hash.ByteSlice())
}
