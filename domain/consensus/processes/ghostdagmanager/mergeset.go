package ghostdagmanager

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// mergeSet walks the anticone of selectedParent reachable from blockParents,
// stopping at anything already in selectedParent's past, and returns the
// result sorted in the ascending (BlueWork, hash) order Less defines (so the caller can walk it
// once, classifying blue/red as it goes). The selected parent itself is
// never included; callers that need it prepend it separately.
func (gm *ghostdagManager) mergeSet(selectedParent *externalapi.DomainHash,
	blockParents []*externalapi.DomainHash) ([]*externalapi.DomainHash, error) {

	mergeSetMap := make(map[externalapi.DomainHash]struct{})
	mergeSetSlice := make([]*externalapi.DomainHash, 0)
	selectedParentPast := make(map[externalapi.DomainHash]struct{})
	queue := make([]*externalapi.DomainHash, 0)

	for _, parent := range blockParents {
		if parent.Equal(selectedParent) {
			continue
		}
		mergeSetMap[*parent] = struct{}{}
		mergeSetSlice = append(mergeSetSlice, parent)
		queue = append(queue, parent)
	}

	for len(queue) > 0 {
		var current *externalapi.DomainHash
		current, queue = queue[0], queue[1:]

		currentParents, err := gm.dagTopologyManager.Parents(current)
		if err != nil {
			return nil, err
		}

		for _, parent := range currentParents {
			if _, ok := mergeSetMap[*parent]; ok {
				continue
			}
			if _, ok := selectedParentPast[*parent]; ok {
				continue
			}

			isAncestorOfSelectedParent, err := gm.isAncestorOf(parent, selectedParent)
			if err != nil {
				return nil, err
			}

			if isAncestorOfSelectedParent {
				selectedParentPast[*parent] = struct{}{}
				continue
			}

			if uint64(len(mergeSetSlice)) >= gm.mergeSetSizeLimit {
				return nil, errors.Errorf("mergeset for selected parent %s exceeds the configured size limit of %d",
					selectedParent, gm.mergeSetSizeLimit)
			}

			mergeSetMap[*parent] = struct{}{}
			mergeSetSlice = append(mergeSetSlice, parent)
			queue = append(queue, parent)
		}
	}

	if err := gm.sortMergeSet(mergeSetSlice); err != nil {
		return nil, err
	}

	return mergeSetSlice, nil
}

func (gm *ghostdagManager) sortMergeSet(mergeSetSlice []*externalapi.DomainHash) error {
	var sortErr error
	sort.Slice(mergeSetSlice, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		isLess, err := gm.less(mergeSetSlice[i], mergeSetSlice[j])
		if err != nil {
			sortErr = err
			return false
		}
		return isLess
	})
	return sortErr
}

// isAncestorOf answers the DAG-ancestry check both the mergeset BFS and the
// classification walk need: is a a DAG-ancestor of b? It prefers the exact
// reachability-backed answer; if reachability data is missing for either
// block (ErrNotPopulated — pruned ancestry or migration), it falls back to
// the protocol's blue-score heuristic: a is treated as an ancestor of b iff
// a's BlueScore trails b's by more than the network's HeuristicMargin. The
// heuristic is safe (it can only over-include a block into the mergeset or
// an anticone, never wrongly exclude a true ancestor at the configured
// margin) and is only ever used when reachability data is absent (spec.md
// §4.3 failure modes, covering both the mergeset BFS and checkBlueCandidate's
// anticone walk).
func (gm *ghostdagManager) isAncestorOf(a, b *externalapi.DomainHash) (bool, error) {
	isAncestor, err := gm.dagTopologyManager.IsAncestorOf(a, b)
	if err == nil {
		return isAncestor, nil
	}
	if !model.IsNotPopulatedError(err) {
		return false, err
	}

	aData, getErr := gm.ghostdagDataStore.Get(gm.databaseContext, a)
	if getErr != nil {
		return false, getErr
	}
	bData, getErr := gm.ghostdagDataStore.Get(gm.databaseContext, b)
	if getErr != nil {
		return false, getErr
	}

	return aData.BlueScore+gm.heuristicMargin < bData.BlueScore, nil
}
