// Package consensuscoordinator orchestrates block addition: for every
// accepted block it runs the GHOSTDAG engine, extends the reachability
// tree, and commits both alongside the block header in a single atomic
// transaction, then exposes the ancestry/selection queries the rest of a
// node needs (see domain/consensus, the top-level facade that constructs
// one of these per network).
package consensuscoordinator

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
	infradb "github.com/daglabs/ghostdag-consensus/infrastructure/db/database"
	"github.com/daglabs/ghostdag-consensus/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.CNSC)

// BlockAdditionResult is returned by AddBlock: the block's freshly computed
// GHOSTDAG data, and whether the reachability tree was actually extended
// for it (false during migration/pruned-ancestry fallback, when the
// selected parent has no reachability data of its own yet).
type BlockAdditionResult struct {
	GHOSTDAGData        *model.BlockGHOSTDAGData
	ReachabilityUpdated bool
}

// ConsensusCoordinator is the single logical writer for block acceptance.
// It serializes block additions (sync.Mutex) while leaving reads (via the
// database's repeatable snapshot semantics) unrestricted across goroutines.
type ConsensusCoordinator struct {
	mutex sync.Mutex

	db              infradb.Database
	databaseContext model.DBReader
	params          *dagconfig.Params

	blockHeaderStore    model.BlockHeaderStore
	blockRelationStore  model.BlockRelationStore
	ghostdagDataStore   model.GHOSTDAGDataStore
	reachabilityStore   model.ReachabilityDataStore
	tipsStore           model.TipsStore
	ghostdagManager     model.GHOSTDAGManager
	reachabilityManager model.ReachabilityManager
	dagTopologyManager  model.DAGTopologyManager
}

// New constructs a ConsensusCoordinator over already-wired stores and
// managers (see domain/consensus.New, which builds all of these for a
// chosen network).
func New(
	db infradb.Database,
	databaseContext model.DBReader,
	params *dagconfig.Params,
	blockHeaderStore model.BlockHeaderStore,
	blockRelationStore model.BlockRelationStore,
	ghostdagDataStore model.GHOSTDAGDataStore,
	reachabilityStore model.ReachabilityDataStore,
	tipsStore model.TipsStore,
	ghostdagManager model.GHOSTDAGManager,
	reachabilityManager model.ReachabilityManager,
	dagTopologyManager model.DAGTopologyManager,
) *ConsensusCoordinator {

	return &ConsensusCoordinator{
		db:                  db,
		databaseContext:     databaseContext,
		params:              params,
		blockHeaderStore:    blockHeaderStore,
		blockRelationStore:  blockRelationStore,
		ghostdagDataStore:   ghostdagDataStore,
		reachabilityStore:   reachabilityStore,
		tipsStore:           tipsStore,
		ghostdagManager:     ghostdagManager,
		reachabilityManager: reachabilityManager,
		dagTopologyManager:  dagTopologyManager,
	}
}

// AddBlock runs the full block acceptance sequence for blockHash and its
// header: stage relations, compute GHOSTDAG data, extend reachability if
// the selected parent has it, then commit every store's staged writes
// together with the header in one transaction. A crash before Commit
// leaves the store exactly as it was before this call; a crash after
// leaves it exactly as if the call had returned successfully.
func (cc *ConsensusCoordinator) AddBlock(blockHash *externalapi.DomainHash, header *model.DomainBlockHeader) (*BlockAdditionResult, error) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	cc.blockHeaderStore.Stage(blockHash, header)
	cc.blockRelationStore.StageParents(blockHash, header.ParentHashes)
	for _, parent := range header.ParentHashes {
		if err := cc.blockRelationStore.StageAddChild(cc.databaseContext, parent, blockHash); err != nil {
			cc.discardAll()
			return nil, err
		}
	}

	ghostdagData, err := cc.ghostdagManager.GHOSTDAG(blockHash)
	if err != nil {
		cc.discardAll()
		return nil, errors.Wrapf(err, "GHOSTDAG computation failed for block %s", blockHash)
	}

	if !blockHash.Equal(&cc.params.GenesisHash) {
		if err := validateGHOSTDAGData(cc.params.K, ghostdagData); err != nil {
			cc.discardAll()
			return nil, err
		}
	}

	cc.ghostdagDataStore.Stage(blockHash, ghostdagData)

	reachabilityUpdated, err := cc.extendReachability(blockHash, ghostdagData)
	if err != nil {
		cc.discardAll()
		return nil, err
	}

	if err := cc.updateTips(blockHash, header.ParentHashes); err != nil {
		cc.discardAll()
		return nil, err
	}

	if err := cc.commit(); err != nil {
		return nil, err
	}

	log.Debugf("accepted block %s: blueScore %d, selectedParent %s, reachabilityUpdated %t",
		blockHash, ghostdagData.BlueScore, ghostdagData.SelectedParent, reachabilityUpdated)

	return &BlockAdditionResult{GHOSTDAGData: ghostdagData, ReachabilityUpdated: reachabilityUpdated}, nil
}

// extendReachability runs the reachability engine for blockHash if its
// selected parent has reachability data (or blockHash is genesis); skips
// it otherwise, leaving ReachabilityUpdated false in the result.
func (cc *ConsensusCoordinator) extendReachability(blockHash *externalapi.DomainHash, ghostdagData *model.BlockGHOSTDAGData) (bool, error) {
	if blockHash.Equal(&cc.params.GenesisHash) {
		if err := cc.reachabilityManager.AddBlock(blockHash, &externalapi.ZeroHash, nil); err != nil {
			return false, err
		}
		return true, nil
	}

	mergeSetExcludingSelectedParent := make([]*externalapi.DomainHash, 0, len(ghostdagData.MergeSetBlues)+len(ghostdagData.MergeSetReds)-1)
	mergeSetExcludingSelectedParent = append(mergeSetExcludingSelectedParent, ghostdagData.MergeSetBlues[1:]...)
	mergeSetExcludingSelectedParent = append(mergeSetExcludingSelectedParent, ghostdagData.MergeSetReds...)

	err := cc.reachabilityManager.AddBlock(blockHash, ghostdagData.SelectedParent, mergeSetExcludingSelectedParent)
	if err == nil {
		return true, nil
	}
	if model.IsNotPopulatedError(err) {
		return false, nil
	}
	return false, err
}

func (cc *ConsensusCoordinator) commit() error {
	dbTx, err := database.NewTransaction(cc.db)
	if err != nil {
		return err
	}

	for _, store := range []model.Store{
		cc.blockHeaderStore,
		cc.blockRelationStore,
		cc.ghostdagDataStore,
		cc.reachabilityStore,
		cc.tipsStore,
	} {
		if !store.IsStaged() {
			continue
		}
		if err := commitStore(store, dbTx); err != nil {
			_ = dbTx.Rollback()
			cc.discardAll()
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		cc.discardAll()
		return err
	}
	return nil
}

// commitStore exists only because model.Store itself declares no Commit
// method: every store's Commit has the same signature, but it is declared on
// each store's own interface, so this type switch recovers that interface
// before calling it.
func commitStore(store model.Store, dbTx model.DBTransaction) error {
	switch s := store.(type) {
	case model.BlockHeaderStore:
		return s.Commit(dbTx)
	case model.BlockRelationStore:
		return s.Commit(dbTx)
	case model.GHOSTDAGDataStore:
		return s.Commit(dbTx)
	case model.ReachabilityDataStore:
		return s.Commit(dbTx)
	case model.TipsStore:
		return s.Commit(dbTx)
	default:
		return errors.Errorf("store %T has no known Commit method", store)
	}
}

func (cc *ConsensusCoordinator) discardAll() {
	cc.blockHeaderStore.Discard()
	cc.blockRelationStore.Discard()
	cc.ghostdagDataStore.Discard()
	cc.reachabilityStore.Discard()
	cc.tipsStore.Discard()
}

// GetGHOSTDAGData returns the committed or staged GHOSTDAG data for
// blockHash.
func (cc *ConsensusCoordinator) GetGHOSTDAGData(blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	return cc.ghostdagDataStore.Get(cc.databaseContext, blockHash)
}

// BlueScore returns blockHash's blue score.
func (cc *ConsensusCoordinator) BlueScore(blockHash *externalapi.DomainHash) (uint64, error) {
	data, err := cc.GetGHOSTDAGData(blockHash)
	if err != nil {
		return 0, err
	}
	return data.BlueScore, nil
}

// BlueWork returns blockHash's cumulative blue work.
func (cc *ConsensusCoordinator) BlueWork(blockHash *externalapi.DomainHash) (*big.Int, error) {
	data, err := cc.GetGHOSTDAGData(blockHash)
	if err != nil {
		return nil, err
	}
	return data.BlueWork, nil
}

// StableBlueScore returns the blue score of the block considered final: the
// selected tip's blue score minus the network's finality depth (floored at
// zero).
func (cc *ConsensusCoordinator) StableBlueScore() (uint64, error) {
	tip, err := cc.GetSelectedTip()
	if err != nil {
		return 0, err
	}
	tipScore, err := cc.BlueScore(tip)
	if err != nil {
		return 0, err
	}
	if tipScore < cc.params.FinalityDepth {
		return 0, nil
	}
	return tipScore - cc.params.FinalityDepth, nil
}

// IsChainAncestorOf delegates to the reachability-backed topology manager.
func (cc *ConsensusCoordinator) IsChainAncestorOf(a, b *externalapi.DomainHash) (bool, error) {
	return cc.dagTopologyManager.IsInSelectedParentChainOf(a, b)
}

// IsDAGAncestorOf delegates to the reachability-backed topology manager.
func (cc *ConsensusCoordinator) IsDAGAncestorOf(a, b *externalapi.DomainHash) (bool, error) {
	return cc.dagTopologyManager.IsAncestorOf(a, b)
}
