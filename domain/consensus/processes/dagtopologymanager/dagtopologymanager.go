// Package dagtopologymanager answers DAG-local relationship queries
// (parents, children, direct adjacency) and the transitive ancestry queries
// that the reachability tree was built to answer in O(log n).
package dagtopologymanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// dagTopologyManager is a DAGTopologyManager.
type dagTopologyManager struct {
	databaseContext     model.DBReader
	reachabilityManager model.ReachabilityManager
	blockRelationStore  model.BlockRelationStore
}

// New instantiates a new DAGTopologyManager.
func New(
	databaseContext model.DBReader,
	reachabilityManager model.ReachabilityManager,
	blockRelationStore model.BlockRelationStore) model.DAGTopologyManager {

	return &dagTopologyManager{
		databaseContext:     databaseContext,
		reachabilityManager: reachabilityManager,
		blockRelationStore:  blockRelationStore,
	}
}

// Parents returns the DAG parents of the given blockHash.
func (dtm *dagTopologyManager) Parents(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	blockRelations, err := dtm.blockRelationStore.BlockRelations(dtm.databaseContext, blockHash)
	if err != nil {
		return nil, err
	}
	return blockRelations.Parents, nil
}

// Children returns the DAG children of the given blockHash.
func (dtm *dagTopologyManager) Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	blockRelations, err := dtm.blockRelationStore.BlockRelations(dtm.databaseContext, blockHash)
	if err != nil {
		return nil, err
	}
	return blockRelations.Children, nil
}

// IsParentOf returns true if blockHashA is a direct DAG parent of blockHashB.
func (dtm *dagTopologyManager) IsParentOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	blockRelations, err := dtm.blockRelationStore.BlockRelations(dtm.databaseContext, blockHashB)
	if err != nil {
		return false, err
	}
	return isHashInSlice(blockHashA, blockRelations.Parents), nil
}

// IsChildOf returns true if blockHashA is a direct DAG child of blockHashB.
func (dtm *dagTopologyManager) IsChildOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	blockRelations, err := dtm.blockRelationStore.BlockRelations(dtm.databaseContext, blockHashB)
	if err != nil {
		return false, err
	}
	return isHashInSlice(blockHashA, blockRelations.Children), nil
}

// IsAncestorOf returns true if blockHashA is a DAG ancestor of blockHashB,
// i.e. blockHashB is reachable from blockHashA by following child edges.
func (dtm *dagTopologyManager) IsAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return dtm.reachabilityManager.IsDAGAncestorOf(blockHashA, blockHashB)
}

// IsInSelectedParentChainOf returns true if blockHashA lies on blockHashB's
// selected-parent chain, i.e. is a chain-ancestor in the reachability tree
// sense rather than merely a DAG ancestor.
func (dtm *dagTopologyManager) IsInSelectedParentChainOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return dtm.reachabilityManager.IsChainAncestorOf(blockHashA, blockHashB)
}

func isHashInSlice(hash *externalapi.DomainHash, hashes []*externalapi.DomainHash) bool {
	for _, h := range hashes {
		if h.Equal(hash) {
			return true
		}
	}
	return false
}
