package model

import "github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"

// DomainBlockHeader is the subset of a block header the consensus core
// needs: its parents (for GHOSTDAG/reachability) and its difficulty bits
// (for blue work accumulation). Everything else a real header would carry
// (merkle roots, timestamp, nonce, version) belongs to the external
// validation pipeline and plays no role in this module's algorithms.
type DomainBlockHeader struct {
	ParentHashes []*externalapi.DomainHash

	// Bits is the compact difficulty target, following the same encoding
	// Bitcoin-derived chains use: calc_work derives the 256-bit work value
	// from it. See domain/consensus/utils/difficulty.
	Bits uint32
}

// Clone returns a deep copy of h.
func (h *DomainBlockHeader) Clone() *DomainBlockHeader {
	return &DomainBlockHeader{
		ParentHashes: externalapi.CloneHashes(h.ParentHashes),
		Bits:         h.Bits,
	}
}

// BlockHeaderStore represents a store of DomainBlockHeader.
type BlockHeaderStore interface {
	Store
	Stage(blockHash *externalapi.DomainHash, blockHeader *DomainBlockHeader)
	Commit(dbTx DBTransaction) error
	BlockHeader(dbContext DBReader, blockHash *externalapi.DomainHash) (*DomainBlockHeader, error)
	HasBlockHeader(dbContext DBReader, blockHash *externalapi.DomainHash) (bool, error)
}
