package consensuscoordinator

import (
	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
)

// validateGHOSTDAGData re-checks the invariants that must hold for every
// accepted non-genesis block's GHOSTDAG data before the coordinator lets it
// reach a store (the genesis block has empty mergesets and is not passed
// here). A failure here means the GHOSTDAG engine produced inconsistent
// output, corruption or a bug rather than a recoverable condition, so the
// whole block is refused.
func validateGHOSTDAGData(k dagconfig.KType, data *model.BlockGHOSTDAGData) error {
	if len(data.MergeSetBlues) == 0 {
		return errors.Wrap(model.ErrInvariantViolation, "mergeset blues is empty")
	}

	if !data.MergeSetBlues[0].Equal(data.SelectedParent) {
		return errors.Wrapf(model.ErrInvariantViolation,
			"selected parent %s is not the first mergeset blue (%s)", data.SelectedParent, data.MergeSetBlues[0])
	}

	reds := make(map[externalapi.DomainHash]struct{}, len(data.MergeSetReds))
	for _, red := range data.MergeSetReds {
		reds[*red] = struct{}{}
	}

	for _, blue := range data.MergeSetBlues {
		if _, isAlsoRed := reds[*blue]; isAlsoRed {
			return errors.Wrapf(model.ErrInvariantViolation, "block %s is classified both blue and red", blue)
		}

		size, ok := data.BluesAnticoneSizes[*blue]
		if !ok {
			return errors.Wrapf(model.ErrInvariantViolation, "mergeset blue %s has no recorded anticone size", blue)
		}
		if size > k {
			return errors.Wrapf(model.ErrInvariantViolation,
				"mergeset blue %s has anticone size %d exceeding k=%d", blue, size, k)
		}
	}

	return nil
}
