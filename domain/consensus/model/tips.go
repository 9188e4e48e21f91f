package model

import "github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"

// TipsStore persists the current set of DAG tips: blocks with no known
// children. The consensus coordinator maintains it alongside GHOSTDAG and
// reachability data so that GetSelectedTip survives a process restart
// without re-deriving tips from a full BlockRelationStore scan.
type TipsStore interface {
	Store
	Stage(tips []*externalapi.DomainHash)
	Commit(dbTx DBTransaction) error
	Tips(dbContext DBReader) ([]*externalapi.DomainHash, error)
}
