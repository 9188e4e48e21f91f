package reachabilitymanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/interval"
)

// reindexSlackFactor is the minimum ratio of interval capacity to live node
// count a reindexed subtree is given, so that the subtree can absorb further
// growth before needing another reindex: amortized doubling rather than a
// reindex on every single insertion.
const reindexSlackFactor = 4

// childShareFraction is the portion of a reindexed node's interval handed to
// its existing children as a group; the remainder stays reserved for future
// children, mirroring the incremental allocation policy addTreeBlock uses
// for ordinary (non-reindexing) appends.
const childShareFraction = 0.5

// reindexForCapacity is triggered when sp's remaining capacity is exhausted.
// It walks up the selected-parent chain from sp looking for the nearest
// ancestor whose own interval is large enough, relative to its current live
// subtree size, to be redistributed with slack; failing that it reaches
// genesis, whose maximal interval always qualifies except on a chain so long
// it has exhausted the entire 64-bit label space (at which point
// reallocateSubtree itself surfaces ErrCapacityExhausted rather than
// silently overflowing). This bounds the rebuild to the affected subtree
// instead of an unconditional full-history reindex.
func (rm *reachabilityManager) reindexForCapacity(sp *externalapi.DomainHash) error {
	ancestor := sp
	for {
		data, err := rm.store.Get(rm.databaseContext, ancestor)
		if err != nil {
			return err
		}

		subtreeSize, err := rm.countSubtreeSize(ancestor)
		if err != nil {
			return err
		}

		if data.Interval.Size() >= subtreeSize*reindexSlackFactor || data.Parent == nil {
			log.Debugf("reindexing reachability subtree rooted at %s (%d live nodes)", ancestor, subtreeSize)
			return rm.reallocateSubtree(ancestor)
		}

		ancestor = data.Parent
	}
}

// countSubtreeSize returns the number of tree nodes (inclusive) rooted at
// root, walking staged and committed Children edges alike.
func (rm *reachabilityManager) countSubtreeSize(root *externalapi.DomainHash) (uint64, error) {
	data, err := rm.store.Get(rm.databaseContext, root)
	if err != nil {
		return 0, err
	}

	size := uint64(1)
	for _, child := range data.Children {
		childSize, err := rm.countSubtreeSize(child)
		if err != nil {
			return 0, err
		}
		size += childSize
	}
	return size, nil
}

// reallocateSubtree re-labels every node in root's subtree, keeping root's
// own interval fixed and redistributing it among root's descendants
// proportional to each child's live subtree size.
func (rm *reachabilityManager) reallocateSubtree(root *externalapi.DomainHash) error {
	rootData, err := rm.store.Get(rm.databaseContext, root)
	if err != nil {
		return err
	}
	return rm.assignIntervals(root, rootData.Interval)
}

// assignIntervals stages nodeHash's new interval and recurses into its
// children, splitting the childShareFraction portion of nodeInterval among
// them proportional to their subtree sizes and reserving the remainder
// (never handed to any node) for future siblings, exactly as ordinary
// incremental allocation does.
func (rm *reachabilityManager) assignIntervals(nodeHash *externalapi.DomainHash, nodeInterval interval.Interval) error {
	data, err := rm.store.Get(rm.databaseContext, nodeHash)
	if err != nil {
		return err
	}

	data.Interval = nodeInterval
	rm.store.Stage(nodeHash, data)

	if len(data.Children) == 0 {
		return nil
	}

	childCapacity, _, err := interval.SplitFraction(nodeInterval, childShareFraction)
	if err != nil {
		return err
	}

	sizes := make([]uint64, len(data.Children))
	var totalSize uint64
	for i, child := range data.Children {
		size, err := rm.countSubtreeSize(child)
		if err != nil {
			return err
		}
		sizes[i] = size
		totalSize += size
	}

	childIntervalSizes, err := proportionalSplit(childCapacity.Size(), sizes, totalSize)
	if err != nil {
		return err
	}

	childIntervals, err := interval.SplitExact(childCapacity, childIntervalSizes)
	if err != nil {
		return err
	}

	for i, child := range data.Children {
		if err := rm.assignIntervals(child, childIntervals[i]); err != nil {
			return err
		}
	}
	return nil
}

// proportionalSplit divides capacity among len(sizes) shares, each
// proportional to its entry in sizes out of totalSize, with every share
// guaranteed at least 1 and all shares summing to exactly capacity.
func proportionalSplit(capacity uint64, sizes []uint64, totalSize uint64) ([]uint64, error) {
	if totalSize == 0 || capacity < uint64(len(sizes)) {
		return nil, model.ErrCapacityExhausted
	}

	shares := make([]uint64, len(sizes))
	var assigned uint64
	for i, size := range sizes {
		share := capacity * size / totalSize
		if share == 0 {
			share = 1
		}
		shares[i] = share
		assigned += share
	}

	if assigned > capacity {
		return nil, model.ErrCapacityExhausted
	}
	shares[largestIndex(sizes)] += capacity - assigned
	return shares, nil
}

func largestIndex(sizes []uint64) int {
	best := 0
	for i, s := range sizes {
		if s > sizes[best] {
			best = i
		}
	}
	return best
}
