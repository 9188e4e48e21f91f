package ghostdagmanager

import (
	"testing"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
)

// testHarness wires a ghostdagManager against the fakes above and tracks
// every block it has been asked to accept, so tests can add blocks in
// topological order and inspect their resulting GhostdagData.
type testHarness struct {
	t        *testing.T
	topology *fakeTopology
	gdStore  *fakeGHOSTDAGDataStore
	hdStore  *fakeBlockHeaderStore
	manager  model.GHOSTDAGManager
	genesis  *externalapi.DomainHash
}

func newTestHarness(t *testing.T, k dagconfig.KType) *testHarness {
	genesis := hash(0)
	topology := newFakeTopology()
	gdStore := newFakeGHOSTDAGDataStore()
	hdStore := newFakeBlockHeaderStore()

	manager := New(nil, topology, gdStore, hdStore, k, genesis, 10, 3600)

	h := &testHarness{t: t, topology: topology, gdStore: gdStore, hdStore: hdStore, manager: manager, genesis: genesis}
	h.addBlock(genesis, 0x207fffff)
	return h
}

// addBlock registers blockHash's parents with the fake topology and header
// store, runs GHOSTDAG on it, stages the result, and returns the computed
// data so the test can assert on it.
func (h *testHarness) addBlock(blockHash *externalapi.DomainHash, bits uint32, parents ...*externalapi.DomainHash) *model.BlockGHOSTDAGData {
	h.t.Helper()

	h.topology.addBlock(blockHash, parents...)
	h.hdStore.addHeader(blockHash, bits, parents...)

	data, err := h.manager.GHOSTDAG(blockHash)
	if err != nil {
		h.t.Fatalf("GHOSTDAG(%s): %s", blockHash, err)
	}
	h.gdStore.Stage(blockHash, data)
	return data
}

func TestGenesisGHOSTDAGData(t *testing.T) {
	h := newTestHarness(t, 3)
	data, err := h.gdStore.Get(nil, h.genesis)
	if err != nil {
		t.Fatalf("Get(genesis): %s", err)
	}
	if data.BlueScore != 0 {
		t.Fatalf("genesis BlueScore = %d, want 0", data.BlueScore)
	}
	if data.BlueWork.Sign() != 0 {
		t.Fatalf("genesis BlueWork = %s, want 0", data.BlueWork)
	}
	if !data.SelectedParent.Equal(&externalapi.ZeroHash) {
		t.Fatalf("genesis SelectedParent = %s, want zero hash", data.SelectedParent)
	}
}

// TestLinearChain (scenario S1) checks that a plain single-parent chain
// accumulates exactly one blue block of BlueScore per block, and every
// block is its successor's sole mergeset blue.
func TestLinearChain(t *testing.T) {
	h := newTestHarness(t, 3)

	prev := h.genesis
	for i := byte(1); i <= 5; i++ {
		block := hash(i)
		data := h.addBlock(block, 0x207fffff, prev)

		if data.BlueScore != uint64(i) {
			t.Fatalf("block %d: BlueScore = %d, want %d", i, data.BlueScore, i)
		}
		if !data.SelectedParent.Equal(prev) {
			t.Fatalf("block %d: SelectedParent = %s, want %s", i, data.SelectedParent, prev)
		}
		if len(data.MergeSetBlues) != 1 || len(data.MergeSetReds) != 0 {
			t.Fatalf("block %d: mergeset blues=%d reds=%d, want 1/0", i, len(data.MergeSetBlues), len(data.MergeSetReds))
		}

		prev = block
	}
}

// TestForkAndMerge (scenario S2) builds a diamond: genesis has two children
// B1, B2, and a merge block C has both as parents. With k large enough, C's
// mergeset classifies the non-selected side blue.
func TestForkAndMerge(t *testing.T) {
	h := newTestHarness(t, 3)

	b1 := hash(1)
	b2 := hash(2)
	h.addBlock(b1, 0x207fffff, h.genesis)
	h.addBlock(b2, 0x207fffff, h.genesis)

	c := hash(3)
	data := h.addBlock(c, 0x207fffff, b1, b2)

	if data.BlueScore != 3 {
		t.Fatalf("merge block BlueScore = %d, want 3 (genesis + b1 + b2)", data.BlueScore)
	}
	if len(data.MergeSetReds) != 0 {
		t.Fatalf("merge block MergeSetReds = %v, want empty (k=3 tolerates a 1-wide anticone)", data.MergeSetReds)
	}
	if len(data.MergeSetBlues) != 2 {
		t.Fatalf("merge block MergeSetBlues = %v, want selected parent + 1 blue", data.MergeSetBlues)
	}
}

// TestKClusterLimit (scenario S3) builds an anticone wider than k by fanning
// many independent children out of genesis into one merge block, and checks
// that once a candidate's anticone would exceed k, it is classified red
// instead of blue.
func TestKClusterLimit(t *testing.T) {
	const k = dagconfig.KType(2)
	h := newTestHarness(t, k)

	// Four independent children of genesis: with k=2, at most 3 of them
	// (the selected parent plus 2 more) can all be mutually blue before
	// the k-cluster bound is violated for the later ones.
	var children []*externalapi.DomainHash
	for i := byte(1); i <= 4; i++ {
		child := hash(i)
		h.addBlock(child, 0x207fffff, h.genesis)
		children = append(children, child)
	}

	merge := hash(5)
	data := h.addBlock(merge, 0x207fffff, children...)

	if len(data.MergeSetReds) == 0 {
		t.Fatalf("expected at least one red block when merging 4 mutually-anticone blocks under k=%d", k)
	}
	for _, blue := range data.MergeSetBlues {
		if data.BluesAnticoneSizes[*blue] > k {
			t.Fatalf("blue %s has anticone size %d, exceeds k=%d", blue, data.BluesAnticoneSizes[*blue], k)
		}
	}
	if len(data.MergeSetBlues)+len(data.MergeSetReds) != len(children) {
		t.Fatalf("blues+reds = %d, want %d (all of genesis's 4 children)",
			len(data.MergeSetBlues)+len(data.MergeSetReds), len(children))
	}
}

// TestKZeroBoundary checks the k=0 edge case: any candidate whose anticone
// with an already-accepted blue is non-empty must be classified red, since
// even a single anticone member already exceeds k=0.
func TestKZeroBoundary(t *testing.T) {
	h := newTestHarness(t, 0)

	b1 := hash(1)
	b2 := hash(2)
	h.addBlock(b1, 0x207fffff, h.genesis)
	h.addBlock(b2, 0x207fffff, h.genesis)

	merge := hash(3)
	data := h.addBlock(merge, 0x207fffff, b1, b2)

	if len(data.MergeSetBlues) != 1 {
		t.Fatalf("MergeSetBlues = %v, want only the selected parent under k=0", data.MergeSetBlues)
	}
	if len(data.MergeSetReds) != 1 {
		t.Fatalf("MergeSetReds = %v, want the other parent classified red under k=0", data.MergeSetReds)
	}
}

func TestChooseSelectedParentPrefersGreaterBlueWork(t *testing.T) {
	h := newTestHarness(t, 3)

	// b1 accrues more blue work than b2 by extending one block further.
	b1a := hash(1)
	h.addBlock(b1a, 0x1d00ffff, h.genesis)
	b1b := hash(2)
	h.addBlock(b1b, 0x1d00ffff, b1a)

	b2 := hash(3)
	h.addBlock(b2, 0x1d00ffff, h.genesis)

	chosen, err := h.manager.ChooseSelectedParent(b1b, b2)
	if err != nil {
		t.Fatalf("ChooseSelectedParent: %s", err)
	}
	if !chosen.Equal(b1b) {
		t.Fatalf("ChooseSelectedParent(b1b, b2) = %s, want %s (greater blue work)", chosen, b1b)
	}
}

func TestChooseSelectedParentTieBreaksOnHash(t *testing.T) {
	h := newTestHarness(t, 3)

	a := hash(1)
	b := hash(2)
	h.addBlock(a, 0x207fffff, h.genesis)
	h.addBlock(b, 0x207fffff, h.genesis)

	// Equal blue work (same parent, same bits): the smaller hash (a, whose
	// last byte is 1 versus b's 2) must win regardless of argument order.
	for _, pair := range [][2]*externalapi.DomainHash{{a, b}, {b, a}} {
		chosen, err := h.manager.ChooseSelectedParent(pair[0], pair[1])
		if err != nil {
			t.Fatalf("ChooseSelectedParent: %s", err)
		}
		if !chosen.Equal(a) {
			t.Fatalf("ChooseSelectedParent(%s, %s) = %s, want the lexicographically smaller hash %s",
				pair[0], pair[1], chosen, a)
		}
	}
}
