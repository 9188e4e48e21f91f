package reachabilitymanager

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// fakeReachabilityDataStore is a bare map-backed model.ReachabilityDataStore,
// standing in for the real LRU-cached, bucket-namespaced store so these
// tests exercise reachabilityManager's tree/interval logic in isolation.
type fakeReachabilityDataStore struct {
	data map[externalapi.DomainHash]*model.ReachabilityData
}

func newFakeReachabilityDataStore() *fakeReachabilityDataStore {
	return &fakeReachabilityDataStore{data: make(map[externalapi.DomainHash]*model.ReachabilityData)}
}

func (s *fakeReachabilityDataStore) Stage(blockHash *externalapi.DomainHash, data *model.ReachabilityData) {
	s.data[*blockHash] = data
}

func (s *fakeReachabilityDataStore) Commit(model.DBTransaction) error { return nil }

func (s *fakeReachabilityDataStore) Get(_ model.DBReader, blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {
	data, ok := s.data[*blockHash]
	if !ok {
		return nil, model.ErrNotFound
	}
	return data, nil
}

func (s *fakeReachabilityDataStore) Has(_ model.DBReader, blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := s.data[*blockHash]
	return ok, nil
}

func (s *fakeReachabilityDataStore) Discard()        {}
func (s *fakeReachabilityDataStore) IsStaged() bool { return len(s.data) > 0 }

func hash(b byte) *externalapi.DomainHash {
	h := externalapi.DomainHash{}
	h[externalapi.DomainHashSize-1] = b
	return &h
}

func hash16(n uint16) *externalapi.DomainHash {
	h := externalapi.DomainHash{}
	h[externalapi.DomainHashSize-2] = byte(n >> 8)
	h[externalapi.DomainHashSize-1] = byte(n)
	return &h
}
