// Package blockrelationstore persists each block's DAG parents and
// children, independent of the selected-parent tree reachability tracks.
package blockrelationstore

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database/serialization"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/lrucache"
)

var bucket = database.MakeBucket([]byte("block-relations"))

// blockRelationStore is a BlockRelationStore backed by a generic KV engine.
type blockRelationStore struct {
	staging map[externalapi.DomainHash]*model.BlockRelations
	cache   *lrucache.LRUCache
}

// New instantiates a new BlockRelationStore.
func New(cacheSize int) model.BlockRelationStore {
	return &blockRelationStore{
		staging: make(map[externalapi.DomainHash]*model.BlockRelations),
		cache:   lrucache.New(cacheSize),
	}
}

// StageParents stages blockHash's parent set. Used once, when the block is
// first accepted.
func (brs *blockRelationStore) StageParents(blockHash *externalapi.DomainHash, parentHashes []*externalapi.DomainHash) {
	brs.staging[*blockHash] = &model.BlockRelations{
		Parents:  externalapi.CloneHashes(parentHashes),
		Children: []*externalapi.DomainHash{},
	}
}

// StageAddChild appends childHash to blockHash's child set. Every time a new
// block names blockHash as one of its parents, blockHash's own relation
// record grows to record the reverse edge, so existing blocks' children
// accumulate lazily as DAG descendants are accepted.
func (brs *blockRelationStore) StageAddChild(dbContext model.DBReader, blockHash *externalapi.DomainHash, childHash *externalapi.DomainHash) error {
	relations, err := brs.BlockRelations(dbContext, blockHash)
	if err != nil {
		return err
	}

	relations.Children = append(relations.Children, childHash)
	brs.staging[*blockHash] = relations
	return nil
}

func (brs *blockRelationStore) IsStaged() bool {
	return len(brs.staging) != 0
}

func (brs *blockRelationStore) Discard() {
	brs.staging = make(map[externalapi.DomainHash]*model.BlockRelations)
}

// Commit writes every staged record via dbTx and clears the staging area.
func (brs *blockRelationStore) Commit(dbTx model.DBTransaction) error {
	for hash, relations := range brs.staging {
		hash := hash
		relationsBytes, err := serialization.SerializeBlockRelations(relations)
		if err != nil {
			return err
		}
		if err := dbTx.Put(brs.hashAsKey(&hash), relationsBytes); err != nil {
			return err
		}
		brs.cache.Add(&hash, relations)
	}

	brs.Discard()
	return nil
}

// BlockRelations gets the BlockRelations associated with the given blockHash.
func (brs *blockRelationStore) BlockRelations(dbContext model.DBReader, blockHash *externalapi.DomainHash) (*model.BlockRelations, error) {
	if relations, ok := brs.staging[*blockHash]; ok {
		return relations.Clone(), nil
	}

	if relations, ok := brs.cache.Get(blockHash); ok {
		return relations.(*model.BlockRelations).Clone(), nil
	}

	relationsBytes, err := dbContext.Get(brs.hashAsKey(blockHash))
	if err != nil {
		return nil, err
	}

	relations, err := serialization.DeserializeBlockRelations(relationsBytes)
	if err != nil {
		return nil, err
	}
	brs.cache.Add(blockHash, relations)
	return relations.Clone(), nil
}

// Has returns whether blockHash has a BlockRelations record.
func (brs *blockRelationStore) Has(dbContext model.DBReader, blockHash *externalapi.DomainHash) (bool, error) {
	if _, ok := brs.staging[*blockHash]; ok {
		return true, nil
	}
	if brs.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(brs.hashAsKey(blockHash))
}

func (brs *blockRelationStore) hashAsKey(hash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(hash.ByteSlice())
}
