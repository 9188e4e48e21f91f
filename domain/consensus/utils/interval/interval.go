// Package interval implements the pure interval algebra that backs the
// reachability tree's pre-order labeling scheme (see
// domain/consensus/processes/reachabilitymanager). An Interval is a closed
// range [Start, End] of 64-bit points; tree ancestry reduces to interval
// containment, and allocating a child's label reduces to splitting the
// parent's remaining capacity.
//
// Every operation here is a pure function of its inputs: no I/O, no shared
// state. Arithmetic is checked rather than wrapping, so that running out of
// label space on a long linear chain surfaces as a recoverable error instead
// of silent corruption or a panic.
package interval

import "github.com/daglabs/ghostdag-consensus/domain/consensus/model"

// Interval is a closed range [Start, End], Start <= End.
type Interval struct {
	Start uint64
	End   uint64
}

// New constructs an Interval, or panics if start > end. Callers that cannot
// guarantee start <= end by construction should validate before calling.
func New(start, end uint64) Interval {
	if start > end {
		panic("interval: start > end")
	}
	return Interval{Start: start, End: end}
}

// MaximalInterval is the interval assigned to the genesis block: the full
// label space apart from the two boundary points reserved so that 0 can
// serve as a sentinel and the space has a well-defined final point.
func MaximalInterval() Interval {
	return Interval{Start: 1, End: maxUint64 - 1}
}

const maxUint64 = ^uint64(0)

// Size returns the number of points covered by the interval.
func (i Interval) Size() uint64 {
	return i.End - i.Start + 1
}

// Contains returns whether i fully contains other: i is a chain-ancestor's
// interval, other a chain-descendant's.
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// Empty returns whether the interval has zero capacity.
func (i Interval) Empty() bool {
	return i.Size() == 0
}

// SplitHalf splits i into two contiguous, capacity-summing halves, with the
// left half receiving the larger share when Size is odd. Used to allocate a
// new tree child's label out of its parent's remaining capacity: the child
// receives the left half, reserving the right half for future siblings and
// for the child's own descendants.
func SplitHalf(i Interval) (left, right Interval, err error) {
	return SplitFraction(i, 0.5)
}

// SplitFraction splits i into two contiguous intervals, the left one sized
// at ceil(Size * fraction). fraction must be in (0, 1).
func SplitFraction(i Interval, fraction float64) (left, right Interval, err error) {
	size := i.Size()
	if size == 0 {
		return Interval{}, Interval{}, model.ErrCapacityExhausted
	}

	leftSize := uint64(float64(size)*fraction + 0.999999999)
	if leftSize == 0 {
		leftSize = 1
	}
	if leftSize > size {
		leftSize = size
	}

	left = Interval{Start: i.Start, End: i.Start + leftSize - 1}
	if leftSize == size {
		right = Interval{Start: i.End + 1, End: i.End}
		return left, right, nil
	}
	right = Interval{Start: left.End + 1, End: i.End}
	return left, right, nil
}

// SplitAfter returns the suffix of parent starting right after usedEnd, for
// allocating a new child after the existing ones. Returns ErrCapacityExhausted
// if usedEnd has already consumed the whole interval.
func SplitAfter(parent Interval, usedEnd uint64) (Interval, error) {
	if usedEnd >= parent.End {
		return Interval{}, model.ErrCapacityExhausted
	}
	return Interval{Start: usedEnd + 1, End: parent.End}, nil
}

// SplitExact splits i into len(sizes) contiguous intervals of the given
// sizes, in order. Used by bounded reindexing to redistribute an ancestor's
// enlarged capacity among its existing children. Returns
// ErrCapacityExhausted if the sizes do not fit.
func SplitExact(i Interval, sizes []uint64) ([]Interval, error) {
	var total uint64
	for _, s := range sizes {
		total += s
	}
	if total > i.Size() {
		return nil, model.ErrCapacityExhausted
	}

	result := make([]Interval, len(sizes))
	start := i.Start
	for idx, s := range sizes {
		if s == 0 {
			return nil, model.ErrCapacityExhausted
		}
		result[idx] = Interval{Start: start, End: start + s - 1}
		start += s
	}
	return result, nil
}
