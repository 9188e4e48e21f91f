package ghostdagmanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// findSelectedParent returns the member of parentHashes with the greatest
// BlueWork, tie-broken by the lexicographically smaller hash. parentHashes
// must be non-empty and every parent's GHOSTDAG data must already be
// committed or staged.
func (gm *ghostdagManager) findSelectedParent(parentHashes []*externalapi.DomainHash) (*externalapi.DomainHash, error) {
	return gm.ChooseSelectedParent(parentHashes...)
}

// less reports whether blockHashA sorts before blockHashB in the mergeset's
// ascending (BlueWork, hash) visit order; a thin wrapper around Less that
// fetches both blocks' GHOSTDAG data first.
func (gm *ghostdagManager) less(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	dataA, err := gm.ghostdagDataStore.Get(gm.databaseContext, blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := gm.ghostdagDataStore.Get(gm.databaseContext, blockHashB)
	if err != nil {
		return false, err
	}
	return gm.Less(blockHashA, dataA, blockHashB, dataB), nil
}

// ChooseSelectedParent returns the member of blockHashes that would be
// chosen as selected parent, per the same rule used during GHOSTDAG step 1.
func (gm *ghostdagManager) ChooseSelectedParent(blockHashes ...*externalapi.DomainHash) (*externalapi.DomainHash, error) {
	selectedParent := blockHashes[0]
	selectedParentGHOSTDAGData, err := gm.ghostdagDataStore.Get(gm.databaseContext, selectedParent)
	if err != nil {
		return nil, err
	}

	for _, blockHash := range blockHashes[1:] {
		blockGHOSTDAGData, err := gm.ghostdagDataStore.Get(gm.databaseContext, blockHash)
		if err != nil {
			return nil, err
		}

		if isBetterSelectedParentCandidate(blockHash, blockGHOSTDAGData, selectedParent, selectedParentGHOSTDAGData) {
			selectedParent = blockHash
			selectedParentGHOSTDAGData = blockGHOSTDAGData
		}
	}

	return selectedParent, nil
}

// isBetterSelectedParentCandidate reports whether candidate should replace
// current as selected parent: strictly greater BlueWork, or equal BlueWork
// and the lexicographically smaller hash. This is the selection rule itself
// (spec.md §4.3 step 1), not a general-purpose comparator — on a BlueWork
// tie the smaller hash must win the selected-parent slot, the opposite of
// where it sorts in the ascending (BlueWork, hash) order Less defines below.
func isBetterSelectedParentCandidate(candidateHash *externalapi.DomainHash, candidateData *model.BlockGHOSTDAGData,
	currentHash *externalapi.DomainHash, currentData *model.BlockGHOSTDAGData) bool {

	switch candidateData.BlueWork.Cmp(currentData.BlueWork) {
	case 1:
		return true
	case -1:
		return false
	default:
		return externalapi.Less(candidateHash, currentHash)
	}
}

// Less reports whether (blockHashA, ghostdagDataA) sorts before
// (blockHashB, ghostdagDataB) in the mergeset's ascending (BlueWork, hash)
// visit order (spec.md §4.3 step 3): lower BlueWork is less, equal BlueWork
// falls back to the lexicographically smaller hash. This is a sort-order
// comparator, not the selected-parent rule — see isBetterSelectedParentCandidate
// for that.
func (gm *ghostdagManager) Less(blockHashA *externalapi.DomainHash, ghostdagDataA *model.BlockGHOSTDAGData,
	blockHashB *externalapi.DomainHash, ghostdagDataB *model.BlockGHOSTDAGData) bool {

	switch ghostdagDataA.BlueWork.Cmp(ghostdagDataB.BlueWork) {
	case -1:
		return true
	case 1:
		return false
	default:
		return externalapi.Less(blockHashA, blockHashB)
	}
}
