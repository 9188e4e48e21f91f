package model

import "github.com/pkg/errors"

// ErrNotFound is returned by a store's Get/BlockHeader/etc. methods when the
// requested key has never been committed. For GHOSTDAG data this is always a
// fatal protocol error further up the stack; for reachability data it
// triggers the migration-era heuristic fallback (see ErrNotPopulated).
var ErrNotFound = errors.New("key not found")

// ErrNotPopulated is returned by the reachability store/engine when a block
// is known (it has GHOSTDAG data, a header, etc.) but its reachability
// record was never populated, e.g. because its selected parent lacked
// reachability data at insertion time (pruned ancestry, migration). Callers
// that can tolerate approximate ancestry should fall back to the blue-score
// heuristic instead of treating this as fatal.
var ErrNotPopulated = errors.New("reachability data not populated for block")

// ErrCapacityExhausted is returned by the interval allocator when a split
// would produce a zero-size interval. It is always recoverable: the caller
// should reindex the affected subtree and retry once.
var ErrCapacityExhausted = errors.New("interval capacity exhausted")

// ErrInvariantViolation is returned by the coordinator when a block's
// computed consensus data violates one of the protocol's core invariants
// (a k-cluster counter exceeding K, a selected parent missing from its own
// mergeset blues, a malformed mergeset). It always indicates corruption or a
// bug rather than a recoverable condition: the coordinator refuses the
// block and the whole block-addition transaction aborts.
var ErrInvariantViolation = errors.New("consensus invariant violation")

// IsNotFoundError reports whether err (or a cause it wraps) is ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotPopulatedError reports whether err (or a cause it wraps) is ErrNotPopulated.
func IsNotPopulatedError(err error) bool {
	return errors.Is(err, ErrNotPopulated)
}

// IsCapacityExhaustedError reports whether err (or a cause it wraps) is ErrCapacityExhausted.
func IsCapacityExhaustedError(err error) bool {
	return errors.Is(err, ErrCapacityExhausted)
}

// IsInvariantViolationError reports whether err (or a cause it wraps) is ErrInvariantViolation.
func IsInvariantViolationError(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
