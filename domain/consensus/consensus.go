// Package consensus wires every store, process, and manager in this module
// into a single facade: the thing a node process constructs once at
// startup and holds for its lifetime (cf. the donor's own blockdag.New
// bootstrap in kaspad.go). Everything below it (ghostdagmanager,
// reachabilitymanager, dagtopologymanager, consensuscoordinator, and the
// datastructures packages) is an internal collaborator; callers only ever
// see this package and domain/dagconfig.
package consensus

import (
	"math/big"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/database"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/datastructures/blockheaderstore"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/datastructures/blockrelationstore"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/datastructures/reachabilitydatastore"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/datastructures/tipsstore"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/processes/consensuscoordinator"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/processes/dagtopologymanager"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/processes/ghostdagmanager"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/processes/reachabilitymanager"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
	infradb "github.com/daglabs/ghostdag-consensus/infrastructure/db/database"
)

// defaultCacheSize is the LRU capacity given to every store's hot-hash
// cache; it has no bearing on correctness, only on how much of the DAG's
// recent tail stays resident between LevelDB reads.
const defaultCacheSize = 10_000

// Consensus is the externally-visible GHOSTDAG consensus core for one
// network. It exposes block addition and the read queries the rest of a
// node needs (ancestry, blue score/work, selected tip) over a store backed
// by a single KV database.
type Consensus struct {
	params      *dagconfig.Params
	coordinator *consensuscoordinator.ConsensusCoordinator
}

// New constructs a Consensus over db for the given network params. It is
// the caller's responsibility to call AddBlock with the network's genesis
// header (hash params.GenesisHash) before anything else; every other block
// must name an already-accepted block among its parents.
func New(db infradb.Database, params *dagconfig.Params) (*Consensus, error) {
	dbContext := database.New(db)

	blockHeaderStore, err := blockheaderstore.New(dbContext, defaultCacheSize)
	if err != nil {
		return nil, err
	}
	blockRelationStore := blockrelationstore.New(defaultCacheSize)
	ghostdagDataStore := ghostdagdatastore.New(defaultCacheSize)
	reachabilityStore := reachabilitydatastore.New(defaultCacheSize)
	tipsStore := tipsstore.New()

	reachabilityManager := reachabilitymanager.New(dbContext, reachabilityStore, &params.GenesisHash)
	topologyManager := dagtopologymanager.New(dbContext, reachabilityManager, blockRelationStore)
	ghostdagManager := ghostdagmanager.New(
		dbContext,
		topologyManager,
		ghostdagDataStore,
		blockHeaderStore,
		params.K,
		&params.GenesisHash,
		params.HeuristicMargin,
		params.MergeSetSizeLimit,
	)

	coordinator := consensuscoordinator.New(
		db,
		dbContext,
		params,
		blockHeaderStore,
		blockRelationStore,
		ghostdagDataStore,
		reachabilityStore,
		tipsStore,
		ghostdagManager,
		reachabilityManager,
		topologyManager,
	)

	return &Consensus{params: params, coordinator: coordinator}, nil
}

// AddBlock runs the full block acceptance sequence for blockHash, given its
// header. See consensuscoordinator.ConsensusCoordinator.AddBlock.
func (c *Consensus) AddBlock(blockHash *externalapi.DomainHash, header *model.DomainBlockHeader) (*consensuscoordinator.BlockAdditionResult, error) {
	return c.coordinator.AddBlock(blockHash, header)
}

// GetGHOSTDAGData returns the committed or staged GHOSTDAG data for blockHash.
func (c *Consensus) GetGHOSTDAGData(blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	return c.coordinator.GetGHOSTDAGData(blockHash)
}

// GetSelectedTip returns the current tip with the greatest blue work.
func (c *Consensus) GetSelectedTip() (*externalapi.DomainHash, error) {
	return c.coordinator.GetSelectedTip()
}

// IsChainAncestorOf returns whether blockHashA lies on blockHashB's
// selected-parent chain.
func (c *Consensus) IsChainAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return c.coordinator.IsChainAncestorOf(blockHashA, blockHashB)
}

// IsDAGAncestorOf returns whether blockHashA is a DAG ancestor of blockHashB.
func (c *Consensus) IsDAGAncestorOf(blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return c.coordinator.IsDAGAncestorOf(blockHashA, blockHashB)
}

// BlueScore returns blockHash's blue score.
func (c *Consensus) BlueScore(blockHash *externalapi.DomainHash) (uint64, error) {
	return c.coordinator.BlueScore(blockHash)
}

// BlueWork returns blockHash's cumulative blue work.
func (c *Consensus) BlueWork(blockHash *externalapi.DomainHash) (*big.Int, error) {
	return c.coordinator.BlueWork(blockHash)
}

// StableBlueScore returns the blue score considered final: the selected
// tip's blue score minus the network's finality depth.
func (c *Consensus) StableBlueScore() (uint64, error) {
	return c.coordinator.StableBlueScore()
}

// Params returns the network parameters this Consensus was constructed with.
func (c *Consensus) Params() *dagconfig.Params {
	return c.params
}
