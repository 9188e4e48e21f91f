// Package tipsstore persists the current DAG tip set: the blocks with no
// known children, from which the consensus coordinator picks the selected
// tip by greatest blue work.
package tipsstore

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/database/serialization"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

var tipsKey = database.MakeBucket([]byte("tips")).Key([]byte("current"))

// tipsStore is a TipsStore backed by a generic KV engine. Unlike the other
// stores it has no per-hash cache: there is exactly one record, the whole
// tip set, so it is cheap to keep resident.
type tipsStore struct {
	staging []*externalapi.DomainHash
	staged  bool
	cache   []*externalapi.DomainHash
	hasInit bool
}

// New instantiates a new TipsStore.
func New() model.TipsStore {
	return &tipsStore{}
}

// Stage stages the new complete tip set, replacing whatever was staged or
// committed before.
func (ts *tipsStore) Stage(tips []*externalapi.DomainHash) {
	ts.staging = externalapi.CloneHashes(tips)
	ts.staged = true
}

func (ts *tipsStore) IsStaged() bool {
	return ts.staged
}

func (ts *tipsStore) Discard() {
	ts.staging = nil
	ts.staged = false
}

// Commit writes the staged tip set via dbTx and clears the staging area.
func (ts *tipsStore) Commit(dbTx model.DBTransaction) error {
	if !ts.staged {
		return nil
	}

	tipsBytes, err := serialization.SerializeTips(ts.staging)
	if err != nil {
		return err
	}
	if err := dbTx.Put(tipsKey, tipsBytes); err != nil {
		return err
	}

	ts.cache = ts.staging
	ts.hasInit = true
	ts.Discard()
	return nil
}

// Tips returns the current tip set.
func (ts *tipsStore) Tips(dbContext model.DBReader) ([]*externalapi.DomainHash, error) {
	if ts.staged {
		return externalapi.CloneHashes(ts.staging), nil
	}
	if ts.hasInit {
		return externalapi.CloneHashes(ts.cache), nil
	}

	has, err := dbContext.Has(tipsKey)
	if err != nil {
		return nil, err
	}
	if !has {
		return []*externalapi.DomainHash{}, nil
	}

	tipsBytes, err := dbContext.Get(tipsKey)
	if err != nil {
		return nil, err
	}
	tips, err := serialization.DeserializeTips(tipsBytes)
	if err != nil {
		return nil, err
	}

	ts.cache = tips
	ts.hasInit = true
	return externalapi.CloneHashes(tips), nil
}
