package serialization

import (
	"bytes"

	"github.com/daglabs/ghostdag-consensus/domain/consensus/model/externalapi"
)

// SerializeTips encodes the current DAG tip set as a flat hash slice.
func SerializeTips(tips []*externalapi.DomainHash) ([]byte, error) {
	buf := &bytes.Buffer{}
	writeHashSlice(buf, tips)
	return buf.Bytes(), nil
}

// DeserializeTips decodes the bytes produced by SerializeTips.
func DeserializeTips(data []byte) ([]*externalapi.DomainHash, error) {
	r := bytes.NewReader(data)
	return readHashSlice(r)
}
