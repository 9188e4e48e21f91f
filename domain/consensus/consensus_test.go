package consensus

import (
	"path/filepath"
	"testing"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
	"github.com/daglabs/ghostdag-consensus/infrastructure/db/database/ldb"
)

// newTestConsensus opens a fresh LevelDB under the test's temp directory and
// wires a Consensus over simnet parameters, mirroring the donor's
// temp-directory database test harness (see database/ffldb/common_test.go
// in the donor repo) adapted to this module's KV surface.
func newTestConsensus(t *testing.T) *Consensus {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "consensus.db")
	db, err := ldb.NewLevelDB(dbPath)
	if err != nil {
		t.Fatalf("NewLevelDB: %s", err)
	}
	t.Cleanup(func() { db.Close() })

	params := dagconfig.SimnetParams
	c, err := New(db, &params)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return c
}

func hashFromByte(b byte) *externalapi.DomainHash {
	h := externalapi.DomainHash{}
	h[externalapi.DomainHashSize-1] = b
	return &h
}

// TestAddBlockAndSelectedTip (scenario S5) builds a small diamond DAG and
// checks that the merge block, the only remaining tip, is the one reported
// selected, and that blue score accumulates correctly across the merge.
func TestAddBlockAndSelectedTip(t *testing.T) {
	c := newTestConsensus(t)
	genesisHash := &c.Params().GenesisHash

	if _, err := c.AddBlock(genesisHash, &model.DomainBlockHeader{Bits: 0x207fffff}); err != nil {
		t.Fatalf("AddBlock(genesis): %s", err)
	}

	left := hashFromByte(1)
	if _, err := c.AddBlock(left, &model.DomainBlockHeader{
		ParentHashes: []*externalapi.DomainHash{genesisHash}, Bits: 0x1d00ffff}); err != nil {
		t.Fatalf("AddBlock(left): %s", err)
	}

	right := hashFromByte(2)
	if _, err := c.AddBlock(right, &model.DomainBlockHeader{
		ParentHashes: []*externalapi.DomainHash{genesisHash}, Bits: 0x207fffff}); err != nil {
		t.Fatalf("AddBlock(right): %s", err)
	}

	merge := hashFromByte(3)
	result, err := c.AddBlock(merge, &model.DomainBlockHeader{
		ParentHashes: []*externalapi.DomainHash{left, right}, Bits: 0x207fffff})
	if err != nil {
		t.Fatalf("AddBlock(merge): %s", err)
	}
	if !result.ReachabilityUpdated {
		t.Errorf("expected reachability to be updated for a normally accepted block")
	}
	if result.GHOSTDAGData.BlueScore != 3 {
		t.Errorf("merge BlueScore = %d, want 3 (genesis + left + right)", result.GHOSTDAGData.BlueScore)
	}

	tip, err := c.GetSelectedTip()
	if err != nil {
		t.Fatalf("GetSelectedTip: %s", err)
	}
	if !tip.Equal(merge) {
		t.Errorf("GetSelectedTip() = %s, want %s (the only block with no children)", tip, merge)
	}

	// left and right both derive their blue work entirely from genesis (a
	// block's own bits only count toward a descendant's blue work, not its
	// own), so they tie; the lexicographically smaller hash (left) wins
	// the selected-parent tie-break and becomes merge's chain ancestor.
	isChainAncestor, err := c.IsChainAncestorOf(left, merge)
	if err != nil {
		t.Fatalf("IsChainAncestorOf(left, merge): %s", err)
	}
	if !isChainAncestor {
		t.Errorf("left should have won the selected-parent tie-break and be merge's chain ancestor")
	}

	isDAGAncestor, err := c.IsDAGAncestorOf(right, merge)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf(right, merge): %s", err)
	}
	if !isDAGAncestor {
		t.Errorf("right was merged into merge and should be a DAG ancestor of it")
	}
}

// TestAddBlockWithUnknownParentIsAtomic checks that a block referencing a
// parent with no GHOSTDAG data of its own fails cleanly, and that nothing
// from the failed attempt is visible afterward: the coordinator's
// single-transaction commit means a failed AddBlock must leave every store
// exactly as it was.
func TestAddBlockWithUnknownParentIsAtomic(t *testing.T) {
	c := newTestConsensus(t)
	genesisHash := &c.Params().GenesisHash

	if _, err := c.AddBlock(genesisHash, &model.DomainBlockHeader{Bits: 0x207fffff}); err != nil {
		t.Fatalf("AddBlock(genesis): %s", err)
	}

	unknownParent := hashFromByte(99)
	orphan := hashFromByte(100)
	_, err := c.AddBlock(orphan, &model.DomainBlockHeader{
		ParentHashes: []*externalapi.DomainHash{unknownParent}, Bits: 0x207fffff})
	if err == nil {
		t.Fatalf("AddBlock with an unknown parent unexpectedly succeeded")
	}

	if _, err := c.GetGHOSTDAGData(orphan); err == nil {
		t.Errorf("orphan block's GHOSTDAG data should not have been committed after a failed AddBlock")
	}

	// The genesis block and its tip status must be untouched by the
	// failed attempt.
	tip, err := c.GetSelectedTip()
	if err != nil {
		t.Fatalf("GetSelectedTip after failed AddBlock: %s", err)
	}
	if !tip.Equal(genesisHash) {
		t.Errorf("GetSelectedTip() = %s, want genesis %s (the failed block must not have become a tip)", tip, genesisHash)
	}
}

// TestStableBlueScoreFlooredAtZero (scenario S6-adjacent) checks that
// StableBlueScore doesn't underflow when the tip's blue score is below the
// network's finality depth.
func TestStableBlueScoreFlooredAtZero(t *testing.T) {
	c := newTestConsensus(t)
	genesisHash := &c.Params().GenesisHash

	if _, err := c.AddBlock(genesisHash, &model.DomainBlockHeader{Bits: 0x207fffff}); err != nil {
		t.Fatalf("AddBlock(genesis): %s", err)
	}

	stable, err := c.StableBlueScore()
	if err != nil {
		t.Fatalf("StableBlueScore: %s", err)
	}
	if stable != 0 {
		t.Errorf("StableBlueScore() = %d, want 0 (tip's blue score is far below FinalityDepth)", stable)
	}
}
