package reachabilitymanager

import (
	"testing"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/interval"
)

func newTestManager() (model.ReachabilityManager, *fakeReachabilityDataStore, *externalapi.DomainHash) {
	genesis := hash(0)
	store := newFakeReachabilityDataStore()
	rm := New(nil, store, genesis)
	return rm, store, genesis
}

// TestChainVsDAGAncestry (scenario S4) builds a small non-linear DAG and
// checks that chain ancestry (selected-parent tree containment) and DAG
// ancestry (tree ancestry plus future-covering-set membership) disagree
// exactly where they should: a merged, non-selected-parent block is a DAG
// ancestor of its descendants but never a chain ancestor of them.
func TestChainVsDAGAncestry(t *testing.T) {
	rm, _, genesis := newTestManager()

	if err := rm.AddBlock(genesis, nil, nil); err != nil {
		t.Fatalf("AddBlock(genesis): %s", err)
	}

	a := hash(1)
	if err := rm.AddBlock(a, genesis, nil); err != nil {
		t.Fatalf("AddBlock(a): %s", err)
	}

	c := hash(2)
	if err := rm.AddBlock(c, genesis, nil); err != nil {
		t.Fatalf("AddBlock(c): %s", err)
	}

	// b's selected parent is a; it merges c as a non-selected-parent
	// mergeset member, so c becomes a DAG ancestor of b without being a
	// chain ancestor.
	b := hash(3)
	if err := rm.AddBlock(b, a, []*externalapi.DomainHash{c}); err != nil {
		t.Fatalf("AddBlock(b): %s", err)
	}

	chainAncestor, err := rm.IsChainAncestorOf(genesis, b)
	if err != nil {
		t.Fatalf("IsChainAncestorOf(genesis, b): %s", err)
	}
	if !chainAncestor {
		t.Errorf("genesis should be a chain ancestor of b")
	}

	chainAncestor, err = rm.IsChainAncestorOf(c, b)
	if err != nil {
		t.Fatalf("IsChainAncestorOf(c, b): %s", err)
	}
	if chainAncestor {
		t.Errorf("c should NOT be a chain ancestor of b (it isn't on b's selected-parent chain)")
	}

	dagAncestor, err := rm.IsDAGAncestorOf(c, b)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf(c, b): %s", err)
	}
	if !dagAncestor {
		t.Errorf("c should be a DAG ancestor of b (merged into it)")
	}

	dagAncestor, err = rm.IsDAGAncestorOf(a, c)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf(a, c): %s", err)
	}
	if dagAncestor {
		t.Errorf("a and c are siblings; neither should be a DAG ancestor of the other")
	}
}

// TestAddBlockMissingSelectedParentReturnsNotPopulated checks the
// migration/pruning tolerance path: adding a block whose selected parent has
// no reachability data must report ErrNotPopulated rather than failing hard
// or panicking, since the coordinator is expected to treat this as
// recoverable.
func TestAddBlockMissingSelectedParentReturnsNotPopulated(t *testing.T) {
	rm, _, genesis := newTestManager()
	if err := rm.AddBlock(genesis, nil, nil); err != nil {
		t.Fatalf("AddBlock(genesis): %s", err)
	}

	orphan := hash(9)
	unknownParent := hash(200)
	err := rm.AddBlock(orphan, unknownParent, nil)
	if !model.IsNotPopulatedError(err) {
		t.Fatalf("AddBlock with unpopulated selected parent: err = %v, want ErrNotPopulated", err)
	}
}

// TestReindexFreesCapacity constructs a synthetic root whose interval has
// already been fully consumed by three existing children, and checks that
// adding a fourth child triggers a bounded reindex of the subtree (rather
// than failing with ErrCapacityExhausted), after which the new child's
// interval is valid and disjoint from its siblings'.
func TestReindexFreesCapacity(t *testing.T) {
	store := newFakeReachabilityDataStore()
	root := hash(0)
	rm := New(nil, store, root)

	rootInterval := interval.New(1, 64)
	c1, c2, c3 := hash(1), hash(2), hash(3)
	store.Stage(root, &model.ReachabilityData{
		Parent:            nil,
		Interval:          rootInterval,
		Height:            0,
		Children:          []*externalapi.DomainHash{c1, c2, c3},
		FutureCoveringSet: []*externalapi.DomainHash{},
	})
	store.Stage(c1, &model.ReachabilityData{Parent: root, Interval: interval.New(1, 20), Height: 1,
		Children: []*externalapi.DomainHash{}, FutureCoveringSet: []*externalapi.DomainHash{}})
	store.Stage(c2, &model.ReachabilityData{Parent: root, Interval: interval.New(21, 40), Height: 1,
		Children: []*externalapi.DomainHash{}, FutureCoveringSet: []*externalapi.DomainHash{}})
	store.Stage(c3, &model.ReachabilityData{Parent: root, Interval: interval.New(41, 64), Height: 1,
		Children: []*externalapi.DomainHash{}, FutureCoveringSet: []*externalapi.DomainHash{}})

	child4 := hash(4)
	if err := rm.AddBlock(child4, root, nil); err != nil {
		t.Fatalf("AddBlock(child4) after exhausting root's capacity: %s", err)
	}

	rootData, err := store.Get(nil, root)
	if err != nil {
		t.Fatalf("Get(root): %s", err)
	}
	if rootData.Interval != rootInterval {
		t.Fatalf("root's own interval changed across reindex: got %+v, want %+v", rootData.Interval, rootInterval)
	}
	if len(rootData.Children) != 4 {
		t.Fatalf("root.Children = %v, want 4 entries after adding child4", rootData.Children)
	}

	// Every child's (possibly reassigned) interval must stay contained in
	// root's, and no two siblings may overlap.
	var childIntervals []interval.Interval
	for _, child := range rootData.Children {
		data, err := store.Get(nil, child)
		if err != nil {
			t.Fatalf("Get(%s): %s", child, err)
		}
		if !rootInterval.Contains(data.Interval) {
			t.Errorf("child %s interval %+v not contained in root's %+v", child, data.Interval, rootInterval)
		}
		childIntervals = append(childIntervals, data.Interval)
	}
	for i := range childIntervals {
		for j := range childIntervals {
			if i == j {
				continue
			}
			if childIntervals[i].Start <= childIntervals[j].End && childIntervals[j].Start <= childIntervals[i].End {
				t.Errorf("sibling intervals overlap: %+v and %+v", childIntervals[i], childIntervals[j])
			}
		}
	}

	chainAncestor, err := rm.IsChainAncestorOf(root, child4)
	if err != nil {
		t.Fatalf("IsChainAncestorOf(root, child4): %s", err)
	}
	if !chainAncestor {
		t.Errorf("root should remain a chain ancestor of child4 after reindex")
	}

	siblingAncestor, err := rm.IsChainAncestorOf(c1, child4)
	if err != nil {
		t.Fatalf("IsChainAncestorOf(c1, child4): %s", err)
	}
	if siblingAncestor {
		t.Errorf("c1 should not be a chain ancestor of its sibling child4")
	}
}
