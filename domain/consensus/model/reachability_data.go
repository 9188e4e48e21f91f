package model

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/interval"
)

// ReachabilityData is the per-block record maintained by the reachability
// tree (see domain/consensus/processes/reachabilitymanager). It is only
// populated for blocks reached via the selected-parent tree; a block whose
// selected parent lacked reachability data at insertion time has none.
type ReachabilityData struct {
	// Parent is this block's tree parent: its selected parent.
	Parent *externalapi.DomainHash

	// Interval is this block's pre-order label. A is a tree-ancestor of B
	// iff A.Interval.Contains(B.Interval).
	Interval interval.Interval

	// Height is this block's depth in the selected-parent tree.
	Height uint64

	// Children are this block's tree children, in insertion order.
	Children []*externalapi.DomainHash

	// FutureCoveringSet is a minimal set of DAG-descendants, sorted by
	// Interval.Start, such that every DAG-descendant of this block is a
	// tree-descendant of some FutureCoveringSet member.
	FutureCoveringSet []*externalapi.DomainHash
}

// NewGenesisReachabilityData returns the reachability data of a network's
// genesis block: maximal interval, height zero, no parent, empty FCS.
func NewGenesisReachabilityData() *ReachabilityData {
	return &ReachabilityData{
		Parent:            nil,
		Interval:          interval.MaximalInterval(),
		Height:            0,
		Children:          []*externalapi.DomainHash{},
		FutureCoveringSet: []*externalapi.DomainHash{},
	}
}

// Clone returns a deep copy of rd.
func (rd *ReachabilityData) Clone() *ReachabilityData {
	var parent *externalapi.DomainHash
	if rd.Parent != nil {
		parent = rd.Parent.Clone()
	}

	children := make([]*externalapi.DomainHash, len(rd.Children))
	for i, h := range rd.Children {
		children[i] = h.Clone()
	}

	fcs := make([]*externalapi.DomainHash, len(rd.FutureCoveringSet))
	for i, h := range rd.FutureCoveringSet {
		fcs[i] = h.Clone()
	}

	return &ReachabilityData{
		Parent:            parent,
		Interval:          rd.Interval,
		Height:            rd.Height,
		Children:          children,
		FutureCoveringSet: fcs,
	}
}

// ReachabilityDataStore represents a store of ReachabilityData.
type ReachabilityDataStore interface {
	Store
	Stage(blockHash *externalapi.DomainHash, reachabilityData *ReachabilityData)
	Commit(dbTx DBTransaction) error
	Get(dbContext DBReader, blockHash *externalapi.DomainHash) (*ReachabilityData, error)
	Has(dbContext DBReader, blockHash *externalapi.DomainHash) (bool, error)
}

// BlockRelations holds a block's DAG parents and children, keyed separately
// from ReachabilityData because it spans the whole DAG, not just the
// selected-parent tree.
type BlockRelations struct {
	Parents  []*externalapi.DomainHash
	Children []*externalapi.DomainHash
}

// Clone returns a deep copy of br.
func (br *BlockRelations) Clone() *BlockRelations {
	return &BlockRelations{
		Parents:  externalapi.CloneHashes(br.Parents),
		Children: externalapi.CloneHashes(br.Children),
	}
}

// BlockRelationStore represents a store of BlockRelations.
type BlockRelationStore interface {
	Store
	StageParents(blockHash *externalapi.DomainHash, parentHashes []*externalapi.DomainHash)
	StageAddChild(dbContext DBReader, blockHash *externalapi.DomainHash, childHash *externalapi.DomainHash) error
	Commit(dbTx DBTransaction) error
	BlockRelations(dbContext DBReader, blockHash *externalapi.DomainHash) (*BlockRelations, error)
	Has(dbContext DBReader, blockHash *externalapi.DomainHash) (bool, error)
}
