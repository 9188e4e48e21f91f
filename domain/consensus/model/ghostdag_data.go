package model

import (
	"math/big"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
)

// BlockGHOSTDAGData holds the per-block output of the GHOSTDAG protocol (see
// domain/consensus/processes/ghostdagmanager). It is created exactly once per
// block, at acceptance time, and never mutated afterward.
type BlockGHOSTDAGData struct {
	// BlueScore is the number of blue blocks strictly in this block's past:
	// selectedParent's BlueScore plus len(MergeSetBlues).
	BlueScore uint64

	// BlueWork is the cumulative difficulty-weighted work of every blue
	// block in this block's past, including this block's own MergeSetBlues.
	BlueWork *big.Int

	// SelectedParent is the parent chosen in step 1 of the GHOSTDAG
	// algorithm: the parent with the greatest BlueWork, tie-broken by the
	// lexicographically smaller hash. The zero hash for genesis.
	SelectedParent *externalapi.DomainHash

	// MergeSetBlues is the ordered set of mergeset members classified
	// blue. The first element is always SelectedParent.
	MergeSetBlues []*externalapi.DomainHash

	// MergeSetReds is the ordered set of mergeset members classified red.
	MergeSetReds []*externalapi.DomainHash

	// BluesAnticoneSizes records, for every blue block b in this block's
	// past whose anticone (relative to this block) contains K or fewer
	// blues, the size of that anticone. It is the bookkeeping the
	// classification loop needs to enforce the k-cluster invariant
	// without re-walking the whole DAG for every candidate.
	BluesAnticoneSizes map[externalapi.DomainHash]dagconfig.KType
}

// NewGenesisBlockGHOSTDAGData returns the GHOSTDAG data of a network's
// genesis block: zero score, zero work, no selected parent, empty mergesets.
func NewGenesisBlockGHOSTDAGData() *BlockGHOSTDAGData {
	return &BlockGHOSTDAGData{
		BlueScore:          0,
		BlueWork:           big.NewInt(0),
		SelectedParent:     &externalapi.ZeroHash,
		MergeSetBlues:      []*externalapi.DomainHash{},
		MergeSetReds:       []*externalapi.DomainHash{},
		BluesAnticoneSizes: map[externalapi.DomainHash]dagconfig.KType{},
	}
}

// IsBlue returns whether blockHash is classified blue in this GhostdagData,
// i.e. is the selected parent or appears in MergeSetBlues.
func (dgd *BlockGHOSTDAGData) IsBlue(blockHash *externalapi.DomainHash) bool {
	for _, blue := range dgd.MergeSetBlues {
		if *blue == *blockHash {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of dgd, so that callers may safely mutate the
// clone (e.g. while building a new block's data) without corrupting a
// store's cache entry.
func (dgd *BlockGHOSTDAGData) Clone() *BlockGHOSTDAGData {
	mergeSetBlues := make([]*externalapi.DomainHash, len(dgd.MergeSetBlues))
	for i, h := range dgd.MergeSetBlues {
		mergeSetBlues[i] = h.Clone()
	}

	mergeSetReds := make([]*externalapi.DomainHash, len(dgd.MergeSetReds))
	for i, h := range dgd.MergeSetReds {
		mergeSetReds[i] = h.Clone()
	}

	bluesAnticoneSizes := make(map[externalapi.DomainHash]dagconfig.KType, len(dgd.BluesAnticoneSizes))
	for hash, size := range dgd.BluesAnticoneSizes {
		bluesAnticoneSizes[hash] = size
	}

	var selectedParent *externalapi.DomainHash
	if dgd.SelectedParent != nil {
		selectedParent = dgd.SelectedParent.Clone()
	}

	return &BlockGHOSTDAGData{
		BlueScore:          dgd.BlueScore,
		BlueWork:           new(big.Int).Set(dgd.BlueWork),
		SelectedParent:     selectedParent,
		MergeSetBlues:      mergeSetBlues,
		MergeSetReds:       mergeSetReds,
		BluesAnticoneSizes: bluesAnticoneSizes,
	}
}

// GHOSTDAGDataStore represents a store of BlockGHOSTDAGData.
type GHOSTDAGDataStore interface {
	Store
	Stage(blockHash *externalapi.DomainHash, blockGHOSTDAGData *BlockGHOSTDAGData)
	Commit(dbTx DBTransaction) error
	Get(dbContext DBReader, blockHash *externalapi.DomainHash) (*BlockGHOSTDAGData, error)
}
