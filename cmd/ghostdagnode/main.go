// Command ghostdagnode is a thin runnable anchor for the consensus library:
// it opens a LevelDB directory, constructs a consensus.Consensus for a
// chosen network, and replays a JSON-lines stream of block fixtures into it,
// printing the resulting selected tip and blue score after each one. It has
// no networking, RPC, or mining of its own; those are external collaborators
// of this module (see domain/consensus).
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
	"github.com/daglabs/ghostdag-consensus/infrastructure/db/database/ldb"
	"github.com/daglabs/ghostdag-consensus/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.CNSC)

// blockFixture is one line of the replayed input: a block's own hash, its
// declared parents, and its compact difficulty bits. The genesis block is
// expected as the first fixture and must name no parents.
type blockFixture struct {
	Hash    string   `json:"hash"`
	Parents []string `json:"parents"`
	Bits    uint32   `json:"bits"`
}

func main() {
	dbPath := flag.String("db", "", "path to the LevelDB directory (created if missing)")
	network := flag.String("network", "simnet", "network parameters to use: mainnet or simnet")
	fixturesPath := flag.String("fixtures", "", "path to a JSON-lines file of block fixtures (defaults to stdin)")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "ghostdagnode: -db is required")
		os.Exit(1)
	}

	params, err := paramsForNetwork(*network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostdagnode: %s\n", err)
		os.Exit(1)
	}

	db, err := ldb.NewLevelDB(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostdagnode: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

	c, err := consensus.New(db, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostdagnode: %s\n", err)
		os.Exit(1)
	}

	input := os.Stdin
	if *fixturesPath != "" {
		f, err := os.Open(*fixturesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ghostdagnode: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	if err := replay(c, input); err != nil {
		fmt.Fprintf(os.Stderr, "ghostdagnode: %s\n", err)
		os.Exit(1)
	}
}

func paramsForNetwork(network string) (*dagconfig.Params, error) {
	switch network {
	case "mainnet":
		return &dagconfig.MainnetParams, nil
	case "simnet":
		return &dagconfig.SimnetParams, nil
	}
	return nil, errors.Errorf("unknown network %q", network)
}

// replay reads one JSON fixture per line from r and feeds each into c via
// AddBlock, printing the new block's selected tip and blue score.
func replay(c *consensus.Consensus, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var fixture blockFixture
		if err := json.Unmarshal([]byte(line), &fixture); err != nil {
			return errors.Wrapf(err, "line %d: invalid fixture", lineNumber)
		}

		blockHash, header, err := toDomainBlock(&fixture)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNumber)
		}

		result, err := c.AddBlock(blockHash, header)
		if err != nil {
			return errors.Wrapf(err, "line %d: AddBlock(%s)", lineNumber, blockHash)
		}

		tip, err := c.GetSelectedTip()
		if err != nil {
			return errors.Wrapf(err, "line %d: GetSelectedTip", lineNumber)
		}

		log.Infof("accepted %s: blueScore=%d reachabilityUpdated=%t selectedTip=%s",
			blockHash, result.GHOSTDAGData.BlueScore, result.ReachabilityUpdated, tip)
		fmt.Printf("%s blueScore=%d selectedTip=%s\n", blockHash, result.GHOSTDAGData.BlueScore, tip)
	}

	return scanner.Err()
}

func toDomainBlock(fixture *blockFixture) (*externalapi.DomainHash, *model.DomainBlockHeader, error) {
	blockHash, err := parseHash(fixture.Hash)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "hash %q", fixture.Hash)
	}

	parents := make([]*externalapi.DomainHash, len(fixture.Parents))
	for i, p := range fixture.Parents {
		parentHash, err := parseHash(p)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parent %q", p)
		}
		parents[i] = parentHash
	}

	return blockHash, &model.DomainBlockHeader{ParentHashes: parents, Bits: fixture.Bits}, nil
}

// parseHash decodes a hex-encoded block hash, left-zero-padding short
// fixture hashes (e.g. "01", "02") up to the full 32 bytes so small test
// DAGs can name blocks tersely.
func parseHash(s string) (*externalapi.DomainHash, error) {
	padded := s
	for len(padded) < externalapi.DomainHashSize*2 {
		padded = "0" + padded
	}

	slice, err := hex.DecodeString(padded)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex %q", s)
	}
	return externalapi.NewDomainHashFromByteSlice(slice)
}
