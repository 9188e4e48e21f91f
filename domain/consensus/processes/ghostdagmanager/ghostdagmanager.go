// Package ghostdagmanager implements the GHOSTDAG protocol: selected-parent
// choice, mergeset construction, and blue/red classification under the
// k-cluster rule, accumulating blue score and blue work per block.
package ghostdagmanager

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/difficulty"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
)

// ghostdagManager is a model.GHOSTDAGManager.
type ghostdagManager struct {
	databaseContext    model.DBReader
	dagTopologyManager model.DAGTopologyManager
	ghostdagDataStore  model.GHOSTDAGDataStore
	blockHeaderStore   model.BlockHeaderStore

	k                 dagconfig.KType
	genesisHash       *externalapi.DomainHash
	heuristicMargin   uint64
	mergeSetSizeLimit uint64
}

// New instantiates a new GHOSTDAGManager.
func New(
	databaseContext model.DBReader,
	dagTopologyManager model.DAGTopologyManager,
	ghostdagDataStore model.GHOSTDAGDataStore,
	blockHeaderStore model.BlockHeaderStore,
	k dagconfig.KType,
	genesisHash *externalapi.DomainHash,
	heuristicMargin uint64,
	mergeSetSizeLimit uint64) model.GHOSTDAGManager {

	return &ghostdagManager{
		databaseContext:    databaseContext,
		dagTopologyManager: dagTopologyManager,
		ghostdagDataStore:  ghostdagDataStore,
		blockHeaderStore:   blockHeaderStore,
		k:                  k,
		genesisHash:        genesisHash,
		heuristicMargin:    heuristicMargin,
		mergeSetSizeLimit:  mergeSetSizeLimit,
	}
}

// GHOSTDAG runs the protocol for blockHash and returns its GhostdagData.
// Every parent of blockHash must already have committed or staged GHOSTDAG
// data; a missing parent record is a fatal protocol error (the block should
// have been rejected before reaching this call).
func (gm *ghostdagManager) GHOSTDAG(blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	if blockHash.Equal(gm.genesisHash) {
		return model.NewGenesisBlockGHOSTDAGData(), nil
	}

	parents, err := gm.dagTopologyManager.Parents(blockHash)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return nil, errors.Errorf("block %s has no parents and is not the genesis", blockHash)
	}

	selectedParent, err := gm.findSelectedParent(parents)
	if err != nil {
		return nil, err
	}

	selectedParentData, err := gm.ghostdagDataStore.Get(gm.databaseContext, selectedParent)
	if err != nil {
		return nil, errors.Wrapf(err, "missing GHOSTDAG data for selected parent %s", selectedParent)
	}

	mergeSetWithoutSelectedParent, err := gm.mergeSet(selectedParent, parents)
	if err != nil {
		return nil, err
	}

	mergeSetBlues := make([]*externalapi.DomainHash, 0, len(mergeSetWithoutSelectedParent)+1)
	mergeSetBlues = append(mergeSetBlues, selectedParent)
	mergeSetReds := make([]*externalapi.DomainHash, 0, len(mergeSetWithoutSelectedParent))
	bluesAnticoneSizes := map[externalapi.DomainHash]dagconfig.KType{*selectedParent: 0}

	for _, candidate := range mergeSetWithoutSelectedParent {
		isBlue, candidateAnticoneSize, increasedAnticoneSizes, err := gm.checkBlueCandidate(mergeSetBlues, bluesAnticoneSizes, candidate)
		if err != nil {
			return nil, err
		}

		if !isBlue {
			mergeSetReds = append(mergeSetReds, candidate)
			continue
		}

		mergeSetBlues = append(mergeSetBlues, candidate)
		bluesAnticoneSizes[*candidate] = candidateAnticoneSize
		for hash, size := range increasedAnticoneSizes {
			bluesAnticoneSizes[hash] = size
		}
	}

	blueScore := selectedParentData.BlueScore + uint64(len(mergeSetBlues))

	blueWork := new(big.Int).Set(selectedParentData.BlueWork)
	for _, blue := range mergeSetBlues {
		header, err := gm.blockHeaderStore.BlockHeader(gm.databaseContext, blue)
		if err != nil {
			return nil, errors.Wrapf(err, "missing header for mergeset blue %s", blue)
		}
		blueWork.Add(blueWork, difficulty.CalcWork(header.Bits))
	}

	log.Debugf("GHOSTDAG for %s: selectedParent %s, blueScore %d, %d blues, %d reds",
		blockHash, selectedParent, blueScore, len(mergeSetBlues), len(mergeSetReds))

	return &model.BlockGHOSTDAGData{
		BlueScore:          blueScore,
		BlueWork:           blueWork,
		SelectedParent:     selectedParent,
		MergeSetBlues:      mergeSetBlues,
		MergeSetReds:       mergeSetReds,
		BluesAnticoneSizes: bluesAnticoneSizes,
	}, nil
}

// checkBlueCandidate decides whether candidate can be added to mergeSetBlues
// (already-accepted blues, selected parent first) without violating the
// k-cluster invariant for candidate itself or for any blue whose anticone
// gains candidate as a member. It never mutates bluesAnticoneSizes directly;
// the caller commits increasedAnticoneSizes only once candidate is accepted,
// so a rejected candidate leaves every existing blue's bookkeeping untouched.
func (gm *ghostdagManager) checkBlueCandidate(
	mergeSetBlues []*externalapi.DomainHash,
	bluesAnticoneSizes map[externalapi.DomainHash]dagconfig.KType,
	candidate *externalapi.DomainHash) (
	isBlue bool, candidateAnticoneSize dagconfig.KType,
	increasedAnticoneSizes map[externalapi.DomainHash]dagconfig.KType, err error) {

	increasedAnticoneSizes = make(map[externalapi.DomainHash]dagconfig.KType)

	for _, blue := range mergeSetBlues {
		inAnticone, err := gm.inAnticone(blue, candidate)
		if err != nil {
			return false, 0, nil, err
		}
		if !inAnticone {
			continue
		}

		candidateAnticoneSize++
		if candidateAnticoneSize > gm.k {
			return false, 0, nil, nil
		}

		newBlueAnticoneSize := bluesAnticoneSizes[*blue] + 1
		if newBlueAnticoneSize > gm.k {
			return false, 0, nil, nil
		}
		increasedAnticoneSizes[*blue] = newBlueAnticoneSize
	}

	return true, candidateAnticoneSize, increasedAnticoneSizes, nil
}

// inAnticone reports whether a and b are in each other's anticone: neither
// is a DAG-ancestor of the other. Uses isAncestorOf rather than the
// topology manager directly, so a candidate or blue whose ancestry touches
// pruned/migration-era blocks degrades to the blue-score heuristic instead
// of failing the whole block (spec.md §4.3 failure modes).
func (gm *ghostdagManager) inAnticone(a, b *externalapi.DomainHash) (bool, error) {
	aAncestorOfB, err := gm.isAncestorOf(a, b)
	if err != nil {
		return false, err
	}
	if aAncestorOfB {
		return false, nil
	}

	bAncestorOfA, err := gm.isAncestorOf(b, a)
	if err != nil {
		return false, err
	}
	return !bAncestorOfA, nil
}
