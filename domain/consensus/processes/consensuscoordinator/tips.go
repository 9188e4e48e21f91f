package consensuscoordinator

import (
	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// updateTips stages the new tip set for the block just accepted: parents is
// the accepted block's parent hashes, none of which can remain tips now
// that blockHash names them, joined with whatever existing tips survive.
func (cc *ConsensusCoordinator) updateTips(blockHash *externalapi.DomainHash, parents []*externalapi.DomainHash) error {
	currentTips, err := cc.tipsStore.Tips(cc.databaseContext)
	if err != nil {
		return err
	}

	parentSet := make(map[externalapi.DomainHash]struct{}, len(parents))
	for _, parent := range parents {
		parentSet[*parent] = struct{}{}
	}

	newTips := make([]*externalapi.DomainHash, 0, len(currentTips)+1)
	for _, tip := range currentTips {
		if _, isNowParent := parentSet[*tip]; isNowParent {
			continue
		}
		newTips = append(newTips, tip)
	}
	newTips = append(newTips, blockHash)

	cc.tipsStore.Stage(newTips)
	return nil
}

// GetSelectedTip returns the tip with the greatest blue work, tie-broken by
// the lexicographically smaller hash — the same selection rule the GHOSTDAG
// engine uses to pick a selected parent among several candidates.
func (cc *ConsensusCoordinator) GetSelectedTip() (*externalapi.DomainHash, error) {
	tips, err := cc.tipsStore.Tips(cc.databaseContext)
	if err != nil {
		return nil, err
	}
	if len(tips) == 0 {
		return nil, errors.New("no tips: consensus has no accepted blocks")
	}

	return cc.ghostdagManager.ChooseSelectedParent(tips...)
}
