package ghostdagmanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// fakeTopology is a minimal, in-memory model.DAGTopologyManager over an
// explicit parent map, used to drive the GHOSTDAG engine in isolation from
// the real block-relation store and reachability engine. Ancestry is
// computed by a direct BFS over the parent map rather than the reachability
// tree, so these tests exercise GHOSTDAG's own logic without depending on
// reachabilitymanager's correctness.
type fakeTopology struct {
	parents map[externalapi.DomainHash][]*externalapi.DomainHash
}

func newFakeTopology() *fakeTopology {
	return &fakeTopology{parents: make(map[externalapi.DomainHash][]*externalapi.DomainHash)}
}

func (t *fakeTopology) addBlock(hash *externalapi.DomainHash, parents ...*externalapi.DomainHash) {
	t.parents[*hash] = parents
}

func (t *fakeTopology) Parents(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	return t.parents[*blockHash], nil
}

func (t *fakeTopology) Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	var children []*externalapi.DomainHash
	for hash, parents := range t.parents {
		hash := hash
		for _, p := range parents {
			if p.Equal(blockHash) {
				children = append(children, &hash)
				break
			}
		}
	}
	return children, nil
}

func (t *fakeTopology) IsParentOf(a, b *externalapi.DomainHash) (bool, error) {
	for _, p := range t.parents[*b] {
		if p.Equal(a) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTopology) IsChildOf(a, b *externalapi.DomainHash) (bool, error) {
	return t.IsParentOf(b, a)
}

// IsAncestorOf reports whether a is reachable from b by walking parent
// edges, inclusive of a == b, matching the real DAGTopologyManager's
// reachability-backed convention.
func (t *fakeTopology) IsAncestorOf(a, b *externalapi.DomainHash) (bool, error) {
	if a.Equal(b) {
		return true, nil
	}

	visited := make(map[externalapi.DomainHash]bool)
	queue := []*externalapi.DomainHash{b}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[*current] {
			continue
		}
		visited[*current] = true

		for _, parent := range t.parents[*current] {
			if parent.Equal(a) {
				return true, nil
			}
			queue = append(queue, parent)
		}
	}
	return false, nil
}

func (t *fakeTopology) IsInSelectedParentChainOf(a, b *externalapi.DomainHash) (bool, error) {
	return t.IsAncestorOf(a, b)
}

// fakeGHOSTDAGDataStore is a bare map-backed model.GHOSTDAGDataStore.
type fakeGHOSTDAGDataStore struct {
	data map[externalapi.DomainHash]*model.BlockGHOSTDAGData
}

func newFakeGHOSTDAGDataStore() *fakeGHOSTDAGDataStore {
	return &fakeGHOSTDAGDataStore{data: make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData)}
}

func (s *fakeGHOSTDAGDataStore) Stage(blockHash *externalapi.DomainHash, data *model.BlockGHOSTDAGData) {
	s.data[*blockHash] = data
}

func (s *fakeGHOSTDAGDataStore) Commit(model.DBTransaction) error { return nil }

func (s *fakeGHOSTDAGDataStore) Get(_ model.DBReader, blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	data, ok := s.data[*blockHash]
	if !ok {
		return nil, model.ErrNotFound
	}
	return data, nil
}

func (s *fakeGHOSTDAGDataStore) Discard()        {}
func (s *fakeGHOSTDAGDataStore) IsStaged() bool { return len(s.data) > 0 }

// fakeBlockHeaderStore is a bare map-backed model.BlockHeaderStore.
type fakeBlockHeaderStore struct {
	headers map[externalapi.DomainHash]*model.DomainBlockHeader
}

func newFakeBlockHeaderStore() *fakeBlockHeaderStore {
	return &fakeBlockHeaderStore{headers: make(map[externalapi.DomainHash]*model.DomainBlockHeader)}
}

func (s *fakeBlockHeaderStore) addHeader(hash *externalapi.DomainHash, bits uint32, parents ...*externalapi.DomainHash) {
	s.headers[*hash] = &model.DomainBlockHeader{ParentHashes: parents, Bits: bits}
}

func (s *fakeBlockHeaderStore) Stage(blockHash *externalapi.DomainHash, header *model.DomainBlockHeader) {
	s.headers[*blockHash] = header
}

func (s *fakeBlockHeaderStore) Commit(model.DBTransaction) error { return nil }

func (s *fakeBlockHeaderStore) BlockHeader(_ model.DBReader, blockHash *externalapi.DomainHash) (*model.DomainBlockHeader, error) {
	header, ok := s.headers[*blockHash]
	if !ok {
		return nil, model.ErrNotFound
	}
	return header, nil
}

func (s *fakeBlockHeaderStore) HasBlockHeader(_ model.DBReader, blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := s.headers[*blockHash]
	return ok, nil
}

func (s *fakeBlockHeaderStore) Discard()        {}
func (s *fakeBlockHeaderStore) IsStaged() bool { return len(s.headers) > 0 }

func hash(b byte) *externalapi.DomainHash {
	h := externalapi.DomainHash{}
	h[externalapi.DomainHashSize-1] = b
	return &h
}
