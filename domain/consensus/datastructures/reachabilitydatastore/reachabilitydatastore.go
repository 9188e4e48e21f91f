// Package reachabilitydatastore persists the reachability tree's per-block
// bookkeeping: tree parent, interval label, height, tree children, and
// future covering set.
package reachabilitydatastore

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database/serialization"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/lrucache"
)

var bucket = database.MakeBucket([]byte("reachability-data"))

// reachabilityDataStore is a ReachabilityDataStore backed by a generic KV
// engine.
type reachabilityDataStore struct {
	staging map[externalapi.DomainHash]*model.ReachabilityData
	cache   *lrucache.LRUCache
}

// New instantiates a new ReachabilityDataStore.
func New(cacheSize int) model.ReachabilityDataStore {
	return &reachabilityDataStore{
		staging: make(map[externalapi.DomainHash]*model.ReachabilityData),
		cache:   lrucache.New(cacheSize),
	}
}

// Stage stages the given reachabilityData for the given blockHash. Every
// reindex that touches a block's interval re-stages it, so a single
// block-addition can stage and commit many records at once.
func (rds *reachabilityDataStore) Stage(blockHash *externalapi.DomainHash, reachabilityData *model.ReachabilityData) {
	rds.staging[*blockHash] = reachabilityData.Clone()
}

func (rds *reachabilityDataStore) IsStaged() bool {
	return len(rds.staging) != 0
}

func (rds *reachabilityDataStore) Discard() {
	rds.staging = make(map[externalapi.DomainHash]*model.ReachabilityData)
}

// Commit writes every staged record via dbTx and clears the staging area.
func (rds *reachabilityDataStore) Commit(dbTx model.DBTransaction) error {
	for hash, reachabilityData := range rds.staging {
		hash := hash
		reachabilityDataBytes, err := serialization.SerializeReachabilityData(reachabilityData)
		if err != nil {
			return err
		}
		if err := dbTx.Put(rds.hashAsKey(&hash), reachabilityDataBytes); err != nil {
			return err
		}
		rds.cache.Add(&hash, reachabilityData)
	}

	rds.Discard()
	return nil
}

// Get gets the reachabilityData associated with the given blockHash.
func (rds *reachabilityDataStore) Get(dbContext model.DBReader, blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {
	if reachabilityData, ok := rds.staging[*blockHash]; ok {
		return reachabilityData.Clone(), nil
	}

	if reachabilityData, ok := rds.cache.Get(blockHash); ok {
		return reachabilityData.(*model.ReachabilityData).Clone(), nil
	}

	reachabilityDataBytes, err := dbContext.Get(rds.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	reachabilityData, err := serialization.DeserializeReachabilityData(reachabilityDataBytes)
	if err != nil {
		return nil, err
	}
	rds.cache.Add(blockHash, reachabilityData)
	return reachabilityData.Clone(), nil
}

// Has returns whether blockHash has a ReachabilityData record, i.e. whether
// it was reached by the selected-parent tree.
func (rds *reachabilityDataStore) Has(dbContext model.DBReader, blockHash *externalapi.DomainHash) (bool, error) {
	if _, ok := rds.staging[*blockHash]; ok {
		return true, nil
	}
	if rds.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(rds.hashAsKey(blockHash))
}

func (rds *reachabilityDataStore) hashAsKey(hash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(hash.ByteSlice())
}
