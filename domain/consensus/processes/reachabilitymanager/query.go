package reachabilitymanager

import (
	"sort"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// IsChainAncestorOf returns whether blockHashA is a selected-parent-tree
// ancestor of blockHashB: O(1) interval containment. It considers only the
// selected-parent chain, a strict subrelation of DAG ancestry.
func (rm *reachabilityManager) IsChainAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	dataA, err := rm.getPopulated(blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := rm.getPopulated(blockHashB)
	if err != nil {
		return false, err
	}

	return dataA.Interval.Contains(dataB.Interval), nil
}

// IsDAGAncestorOf returns whether blockHashA is an ancestor of blockHashB
// anywhere in the DAG (not just the selected-parent chain): O(1) if it is a
// chain ancestor, else O(log |FutureCoveringSet|) via binary search.
func (rm *reachabilityManager) IsDAGAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	dataA, err := rm.getPopulated(blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := rm.getPopulated(blockHashB)
	if err != nil {
		return false, err
	}

	if dataA.Interval.Contains(dataB.Interval) {
		return true, nil
	}

	return rm.futureCoveringSetHasAncestorOf(dataA, dataB)
}

// futureCoveringSetHasAncestorOf binary-searches blockA's future covering
// set for the one member (if any) whose interval contains blockB's: since
// FCS entries are pairwise neither tree-ancestor nor tree-descendant of one
// another, at most one entry's interval can contain blockB's, and it must be
// the entry with the greatest Interval.Start not exceeding blockB's.
func (rm *reachabilityManager) futureCoveringSetHasAncestorOf(dataA, dataB *model.ReachabilityData) (bool, error) {
	fcs := dataA.FutureCoveringSet
	if len(fcs) == 0 {
		return false, nil
	}

	starts := make([]uint64, len(fcs))
	intervals := make([]model.ReachabilityData, len(fcs))
	for i, member := range fcs {
		memberData, err := rm.store.Get(rm.databaseContext, member)
		if err != nil {
			return false, err
		}
		starts[i] = memberData.Interval.Start
		intervals[i] = *memberData
	}

	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > dataB.Interval.Start }) - 1
	if idx < 0 {
		return false, nil
	}

	return intervals[idx].Interval.Contains(dataB.Interval), nil
}

// addDAGBlock registers blockHash in the future-covering-set of every
// mergeset member other than the selected parent (which was already linked
// via the tree-parent edge in addTreeBlock). Members without reachability
// data of their own (pruned ancestry, migration) are skipped: nothing
// downstream can binary-search into an FCS belonging to an unpopulated
// block anyway, and the coordinator already tolerates that block's ancestry
// queries falling back to the GHOSTDAG heuristic.
func (rm *reachabilityManager) addDAGBlock(blockHash *externalapi.DomainHash, mergeSetExcludingSelectedParent []*externalapi.DomainHash) error {
	newData, err := rm.store.Get(rm.databaseContext, blockHash)
	if err != nil {
		return err
	}

	for _, member := range mergeSetExcludingSelectedParent {
		hasData, err := rm.store.Has(rm.databaseContext, member)
		if err != nil {
			return err
		}
		if !hasData {
			continue
		}

		memberData, err := rm.store.Get(rm.databaseContext, member)
		if err != nil {
			return err
		}

		starts := make([]uint64, len(memberData.FutureCoveringSet))
		for i, h := range memberData.FutureCoveringSet {
			hData, err := rm.store.Get(rm.databaseContext, h)
			if err != nil {
				return err
			}
			starts[i] = hData.Interval.Start
		}

		insertAt := sort.Search(len(starts), func(i int) bool { return starts[i] > newData.Interval.Start })

		updated := make([]*externalapi.DomainHash, 0, len(memberData.FutureCoveringSet)+1)
		updated = append(updated, memberData.FutureCoveringSet[:insertAt]...)
		updated = append(updated, blockHash)
		updated = append(updated, memberData.FutureCoveringSet[insertAt:]...)
		memberData.FutureCoveringSet = updated

		rm.store.Stage(member, memberData)
	}

	return nil
}

// getPopulated fetches hash's reachability data, translating a plain
// not-found miss into ErrNotPopulated: absence here specifically means "this
// block was never reached by the selected-parent tree", the condition
// callers are expected to handle by falling back to the GHOSTDAG engine's
// blue-score heuristic rather than treating it as a hard failure.
func (rm *reachabilityManager) getPopulated(hash *externalapi.DomainHash) (*model.ReachabilityData, error) {
	data, err := rm.store.Get(rm.databaseContext, hash)
	if err != nil {
		if model.IsNotFoundError(err) {
			return nil, model.ErrNotPopulated
		}
		return nil, err
	}
	return data, nil
}
