// Package reachabilitymanager implements the reachability service: an
// interval-labeled tree over the selected-parent chain that answers chain-
// and DAG-ancestry queries in O(1) / O(log n), with incremental maintenance
// of tree extension and future-covering-set updates as described in the
// GHOSTDAG consensus design (domain/consensus/processes/ghostdagmanager is
// its only consumer inside this module, via dagtopologymanager).
package reachabilitymanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/interval"
)

// reachabilityManager is a model.ReachabilityManager.
type reachabilityManager struct {
	databaseContext model.DBReader
	store           model.ReachabilityDataStore
	genesisHash     *externalapi.DomainHash
}

// New instantiates a new ReachabilityManager.
func New(
	databaseContext model.DBReader,
	store model.ReachabilityDataStore,
	genesisHash *externalapi.DomainHash) model.ReachabilityManager {

	return &reachabilityManager{
		databaseContext: databaseContext,
		store:           store,
		genesisHash:     genesisHash,
	}
}

// AddBlock is the only mutating reachability operation. For the genesis
// block it seeds the tree's root; for every other block it extends the
// selected-parent tree under selectedParent (addTreeBlock) and registers
// blockHash in the future-covering-set of every other mergeset member
// (addDAGBlock).
//
// If selectedParent itself has no reachability data (its own selected
// parent was pruned, or this is a migration), AddBlock returns
// ErrNotPopulated without staging anything: the coordinator is expected to
// treat this as non-fatal and skip reachability population for blockHash
// (see domain/consensus/processes/consensuscoordinator), leaving
// blockHash's own future ancestry queries to fall back on the GHOSTDAG
// engine's blue-score heuristic.
func (rm *reachabilityManager) AddBlock(
	blockHash, selectedParent *externalapi.DomainHash,
	mergeSetExcludingSelectedParent []*externalapi.DomainHash) error {

	if blockHash.Equal(rm.genesisHash) {
		rm.store.Stage(blockHash, model.NewGenesisReachabilityData())
		return nil
	}

	hasSelectedParentData, err := rm.store.Has(rm.databaseContext, selectedParent)
	if err != nil {
		return err
	}
	if !hasSelectedParentData {
		return model.ErrNotPopulated
	}

	if err := rm.addTreeBlock(blockHash, selectedParent); err != nil {
		return err
	}

	return rm.addDAGBlock(blockHash, mergeSetExcludingSelectedParent)
}

// addTreeBlock extends the selected-parent tree: it allocates blockHash's
// interval out of sp's remaining capacity (reindexing first if that
// capacity is exhausted) and records the parent/child edge both ways.
func (rm *reachabilityManager) addTreeBlock(blockHash, sp *externalapi.DomainHash) error {
	spData, err := rm.store.Get(rm.databaseContext, sp)
	if err != nil {
		return err
	}

	remaining, hasRoom, err := rm.remainingInterval(spData)
	if err != nil {
		return err
	}

	if !hasRoom {
		if err := rm.reindexForCapacity(sp); err != nil {
			return err
		}

		spData, err = rm.store.Get(rm.databaseContext, sp)
		if err != nil {
			return err
		}
		remaining, hasRoom, err = rm.remainingInterval(spData)
		if err != nil {
			return err
		}
		if !hasRoom {
			return model.ErrCapacityExhausted
		}
	}

	allocated, _, err := interval.SplitHalf(remaining)
	if err != nil {
		return err
	}

	rm.store.Stage(blockHash, &model.ReachabilityData{
		Parent:            sp,
		Interval:          allocated,
		Height:            spData.Height + 1,
		Children:          []*externalapi.DomainHash{},
		FutureCoveringSet: []*externalapi.DomainHash{},
	})

	spData.Children = append(spData.Children, blockHash)
	rm.store.Stage(sp, spData)
	return nil
}

// remainingInterval returns the unallocated slice of sp's interval available
// for a new child: the whole interval if sp has no children yet, otherwise
// everything after its last child's interval. hasRoom is false when that
// slice is empty and a reindex is required before allocating.
func (rm *reachabilityManager) remainingInterval(spData *model.ReachabilityData) (remaining interval.Interval, hasRoom bool, err error) {
	if len(spData.Children) == 0 {
		return spData.Interval, !spData.Interval.Empty(), nil
	}

	lastChild := spData.Children[len(spData.Children)-1]
	lastChildData, err := rm.store.Get(rm.databaseContext, lastChild)
	if err != nil {
		return interval.Interval{}, false, err
	}

	if lastChildData.Interval.End >= spData.Interval.End {
		return interval.Interval{}, false, nil
	}

	return interval.Interval{Start: lastChildData.Interval.End + 1, End: spData.Interval.End}, true, nil
}
