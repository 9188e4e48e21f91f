package serialization

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model"
	"github.com/daglabs/ghostdag-consensus/domain/consensus/utils/interval"
)

// SerializeReachabilityData encodes a ReachabilityData: parent, interval,
// height, tree children and future covering set.
func SerializeReachabilityData(data *model.ReachabilityData) ([]byte, error) {
	buf := &bytes.Buffer{}

	hasParent := data.Parent != nil
	binary.Write(buf, binary.LittleEndian, hasParent)
	if hasParent {
		writeHash(buf, data.Parent)
	}

	binary.Write(buf, binary.LittleEndian, data.Interval.Start)
	binary.Write(buf, binary.LittleEndian, data.Interval.End)
	binary.Write(buf, binary.LittleEndian, data.Height)

	writeHashSlice(buf, data.Children)
	writeHashSlice(buf, data.FutureCoveringSet)

	return buf.Bytes(), nil
}

// DeserializeReachabilityData decodes the bytes produced by
// SerializeReachabilityData.
func DeserializeReachabilityData(data []byte) (*model.ReachabilityData, error) {
	r := bytes.NewReader(data)
	result := &model.ReachabilityData{}

	var hasParent bool
	if err := binary.Read(r, binary.LittleEndian, &hasParent); err != nil {
		return nil, errors.Wrap(err, "failed to read has-parent flag")
	}
	if hasParent {
		parent, err := readHash(r)
		if err != nil {
			return nil, err
		}
		result.Parent = parent
	}

	var start, end uint64
	if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
		return nil, errors.Wrap(err, "failed to read interval start")
	}
	if err := binary.Read(r, binary.LittleEndian, &end); err != nil {
		return nil, errors.Wrap(err, "failed to read interval end")
	}
	result.Interval = interval.New(start, end)

	if err := binary.Read(r, binary.LittleEndian, &result.Height); err != nil {
		return nil, errors.Wrap(err, "failed to read height")
	}

	children, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}
	result.Children = children

	fcs, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}
	result.FutureCoveringSet = fcs

	return result, nil
}

// SerializeBlockRelations encodes a BlockRelations: parent and child hash
// lists.
func SerializeBlockRelations(relations *model.BlockRelations) ([]byte, error) {
	buf := &bytes.Buffer{}
	writeHashSlice(buf, relations.Parents)
	writeHashSlice(buf, relations.Children)
	return buf.Bytes(), nil
}

// DeserializeBlockRelations decodes the bytes produced by
// SerializeBlockRelations.
func DeserializeBlockRelations(data []byte) (*model.BlockRelations, error) {
	r := bytes.NewReader(data)

	parents, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}
	children, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}

	return &model.BlockRelations{Parents: parents, Children: children}, nil
}

// SerializeBlockHeader encodes a DomainBlockHeader: parent hashes and bits.
func SerializeBlockHeader(header *model.DomainBlockHeader) ([]byte, error) {
	buf := &bytes.Buffer{}
	writeHashSlice(buf, header.ParentHashes)
	binary.Write(buf, binary.LittleEndian, header.Bits)
	return buf.Bytes(), nil
}

// DeserializeBlockHeader decodes the bytes produced by
// SerializeBlockHeader.
func DeserializeBlockHeader(data []byte) (*model.DomainBlockHeader, error) {
	r := bytes.NewReader(data)

	parents, err := readHashSlice(r)
	if err != nil {
		return nil, err
	}

	var bits uint32
	if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
		return nil, errors.Wrap(err, "failed to read bits")
	}

	return &model.DomainBlockHeader{ParentHashes: parents, Bits: bits}, nil
}

// SerializeUint64 encodes a plain counter value (used for the block header
// count record).
func SerializeUint64(value uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	return buf
}

// DeserializeUint64 decodes the bytes produced by SerializeUint64.
func DeserializeUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Errorf("invalid uint64 encoding length %d", len(data))
	}
	return binary.LittleEndian.Uint64(data), nil
}
