// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// KType defines the size of the GHOSTDAG consensus algorithm's K parameter,
// the k-cluster security bound on anticone sizes. See
// domain/consensus/processes/ghostdagmanager for further details.
type KType uint8

// Params defines a GHOSTDAG network by the parameters that every node on
// that network must agree on byte-for-byte.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// K is the k-cluster security parameter.
	K KType

	// GenesisHash is the hash of the network's genesis block.
	GenesisHash externalapi.DomainHash

	// FinalityDepth is the number of blue blocks below the selected tip
	// that are considered final. stable_blue_score subtracts this from
	// the selected tip's blue score.
	FinalityDepth uint64

	// MergeSetSizeLimit bounds the number of blocks a single block may
	// merge in one mergeset, guarding against unbounded BFS during
	// mergeset construction (domain/consensus/processes/ghostdagmanager).
	MergeSetSizeLimit uint64

	// HeuristicMargin is the blue-score slack used by the GHOSTDAG engine's
	// migration-era fallback when a parent's reachability data is missing
	// (pruned ancestry): a parent is conservatively treated as being in the
	// selected parent's past when its BlueScore is more than this much
	// smaller. Only affects behavior during migration; see
	// domain/consensus/processes/ghostdagmanager.
	HeuristicMargin uint64
}

// mainnetGenesisHash is an arbitrary, fixed hash used to identify the
// mainnet genesis block; unlike a full node, this module treats block
// headers as externally validated and has no transaction payload to hash.
var mainnetGenesisHash = externalapi.DomainHash{
	0x2a, 0xf7, 0x9a, 0xfb, 0x2c, 0xf7, 0xde, 0xe0,
	0xdf, 0xb3, 0x52, 0x4d, 0xbb, 0x3a, 0x83, 0x57,
	0xa6, 0xd2, 0x3e, 0x63, 0x51, 0x48, 0xb1, 0xf8,
	0xe7, 0x8b, 0xc7, 0x30, 0xed, 0x24, 0xe5, 0x80,
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:              "ghostdag-mainnet",
	K:                 18,
	GenesisHash:       mainnetGenesisHash,
	FinalityDepth:     86400,
	MergeSetSizeLimit: 3600,
	HeuristicMargin:   10,
}

// SimnetParams defines network parameters suitable for local testing: a
// small K and finality depth so test DAGs can exercise k-cluster violations
// and finality without constructing enormous fixtures.
var SimnetParams = Params{
	Name:              "ghostdag-simnet",
	K:                 3,
	GenesisHash:       externalapi.DomainHash{0x01},
	FinalityDepth:     100,
	MergeSetSizeLimit: 3600,
	HeuristicMargin:   10,
}
