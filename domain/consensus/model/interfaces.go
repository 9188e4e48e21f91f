package model

import "github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"

// DAGTopologyManager exposes methods for querying DAG-level relationships
// between blocks (parents, children, ancestry), backed by BlockRelationStore
// and, for the transitive ancestry queries, the reachability engine.
type DAGTopologyManager interface {
	Parents(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	IsParentOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsChildOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsInSelectedParentChainOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
}

// GHOSTDAGManager resolves and manages GHOSTDAG block data. GHOSTDAG computes
// and returns the GhostdagData for blockHash without staging it (the caller
// stages it); blockHash's parents must already have GhostdagData committed
// or staged.
type GHOSTDAGManager interface {
	GHOSTDAG(blockHash *externalapi.DomainHash) (*BlockGHOSTDAGData, error)
	ChooseSelectedParent(blockHashes ...*externalapi.DomainHash) (*externalapi.DomainHash, error)
	Less(blockHashA *externalapi.DomainHash, ghostdagDataA *BlockGHOSTDAGData,
		blockHashB *externalapi.DomainHash, ghostdagDataB *BlockGHOSTDAGData) bool
}

// ReachabilityManager extends the reachability tree and answers the two
// ancestry queries defined over it. AddBlock is the only mutating operation;
// everything else is a pure read over committed/staged data.
type ReachabilityManager interface {
	AddBlock(blockHash, selectedParent *externalapi.DomainHash, mergeSetExcludingSelectedParent []*externalapi.DomainHash) error
	IsChainAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsDAGAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
}
