// Package serialization converts the model types the consensus stores hold
// into flat byte encodings for the KV engine. The donor encodes its store
// payloads as protobuf messages generated from .proto schemas; this module
// has no protoc toolchain available to regenerate those, so the same
// payloads are instead encoded by hand with encoding/binary, in the same
// one-message-per-store-record shape the donor's DbBlockGhostdagData,
// DbReachabilityData, DbBlockRelations and DbBlockHeader messages have.
package serialization

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
	"github.com/daglabs/ghostdag-consensus/domain/dagconfig"
)

func writeHash(buf *bytes.Buffer, hash *externalapi.DomainHash) {
	buf.Write(hash.ByteSlice())
}

func readHash(r *bytes.Reader) (*externalapi.DomainHash, error) {
	slice := make([]byte, externalapi.DomainHashSize)
	if _, err := r.Read(slice); err != nil {
		return nil, errors.Wrap(err, "failed to read hash")
	}
	return externalapi.NewDomainHashFromByteSlice(slice)
}

func writeHashSlice(buf *bytes.Buffer, hashes []*externalapi.DomainHash) {
	binary.Write(buf, binary.LittleEndian, uint64(len(hashes)))
	for _, hash := range hashes {
		writeHash(buf, hash)
	}
}

func readHashSlice(r *bytes.Reader) ([]*externalapi.DomainHash, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "failed to read hash slice length")
	}
	hashes := make([]*externalapi.DomainHash, count)
	for i := uint64(0); i < count; i++ {
		hash, err := readHash(r)
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
	}
	return hashes, nil
}

func writeBigInt(buf *bytes.Buffer, value *big.Int) {
	bytes := value.Bytes()
	binary.Write(buf, binary.LittleEndian, uint32(len(bytes)))
	buf.Write(bytes)
}

func readBigInt(r *bytes.Reader) (*big.Int, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, errors.Wrap(err, "failed to read big.Int length")
	}
	raw := make([]byte, length)
	if length > 0 {
		if _, err := r.Read(raw); err != nil {
			return nil, errors.Wrap(err, "failed to read big.Int bytes")
		}
	}
	return new(big.Int).SetBytes(raw), nil
}

// SerializeBlockGHOSTDAGData encodes a BlockGHOSTDAGData into its flat
// on-disk form: blue score, blue work, selected parent, the two mergeset
// hash slices, and the anticone-size map.
func SerializeBlockGHOSTDAGData(data *model.BlockGHOSTDAGData) ([]byte, error) {
	buf := &bytes.Buffer{}

	binary.Write(buf, binary.LittleEndian, data.BlueScore)
	writeBigInt(buf, data.BlueWork)
	writeHash(buf, data.SelectedParent)
	writeHashSlice(buf, data.MergeSetBlues)
	writeHashSlice(buf, data.MergeSetReds)

	binary.Write(buf, binary.LittleEndian, uint64(len(data.BluesAnticoneSizes)))
	for hash, size := range data.BluesAnticoneSizes {
		hash := hash
		writeHash(buf, &hash)
		binary.Write(buf, binary.LittleEndian, uint8(size))
	}

	return buf.Bytes(), nil
}

// DeserializeBlockGHOSTDAGData decodes the bytes produced by
// SerializeBlockGHOSTDAGData.
func DeserializeBlockGHOSTDAGData(data []byte) (*model.BlockGHOSTDAGData, error) {
	r := bytes.NewReader(data)

	result := &model.BlockGHOSTDAGData{}

	if err := binary.Read(r, binary.LittleEndian, &result.BlueScore); err != nil {
		return nil, errors.Wrap(err, "failed to read blue score")
	}

	blueWork, err := readBigInt(r)
	if err != nil {
		return nil, err
	}
	result.BlueWork = blueWork

	selectedParent, err := readHash(r)
	if err != nil {
		return nil, err
	}
	result.SelectedParent = selectedParent

	mergeSetBlues, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}
	result.MergeSetBlues = mergeSetBlues

	mergeSetReds, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}
	result.MergeSetReds = mergeSetReds

	var anticoneCount uint64
	if err := binary.Read(r, binary.LittleEndian, &anticoneCount); err != nil {
		return nil, errors.Wrap(err, "failed to read anticone size count")
	}
	result.BluesAnticoneSizes = make(map[externalapi.DomainHash]dagconfig.KType, anticoneCount)
	for i := uint64(0); i < anticoneCount; i++ {
		hash, err := readHash(r)
		if err != nil {
			return nil, err
		}
		var size uint8
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, errors.Wrap(err, "failed to read anticone size")
		}
		result.BluesAnticoneSizes[*hash] = dagconfig.KType(size)
	}

	return result, nil
}
