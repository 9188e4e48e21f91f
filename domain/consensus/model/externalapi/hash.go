package externalapi

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainHashSize of array used to store hashes.
const DomainHashSize = 32

// DomainHash is the domain representation of a Hash
type DomainHash [DomainHashSize]byte

// ZeroHash is the DomainHash value consisting of all zeroes. It stands in for
// the selected parent of the genesis block, which has none.
var ZeroHash = DomainHash{}

// String returns the Hash as the hexadecimal string of the hash.
func (hash DomainHash) String() string {
	return hex.EncodeToString(hash[:])
}

// ByteSlice returns a slice view of the hash's bytes.
func (hash *DomainHash) ByteSlice() []byte {
	return hash[:]
}

// Clone clones the hash
func (hash *DomainHash) Clone() *DomainHash {
	hashClone := *hash
	return &hashClone
}

// NewDomainHashFromByteSlice constructs a DomainHash from a byte slice of
// exactly DomainHashSize bytes.
func NewDomainHashFromByteSlice(slice []byte) (*DomainHash, error) {
	if len(slice) != DomainHashSize {
		return nil, errors.Errorf("invalid hash length got %d, expected %d", len(slice), DomainHashSize)
	}
	hash := DomainHash{}
	copy(hash[:], slice)
	return &hash, nil
}

// Less returns whether hashA is lexicographically smaller than hashB. This is
// the protocol's tie-break rule wherever two candidates carry equal weight:
// the smaller hash wins.
func Less(hashA, hashB *DomainHash) bool {
	return bytes.Compare(hashA[:], hashB[:]) < 0
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ DomainHash = [DomainHashSize]byte{}

// Equal returns whether hash equals to other
func (hash *DomainHash) Equal(other *DomainHash) bool {
	if hash == nil || other == nil {
		return hash == other
	}

	return *hash == *other
}

// HashesEqual returns whether the given hash slices are equal.
func HashesEqual(a, b []*DomainHash) bool {
	if len(a) != len(b) {
		return false
	}

	for i, hash := range a {
		if !hash.Equal(b[i]) {
			return false
		}
	}
	return true
}

// CloneHashes returns a clone of the given hashes slice
func CloneHashes(hashes []*DomainHash) []*DomainHash {
	clone := make([]*DomainHash, len(hashes))
	for i, hash := range hashes {
		clone[i] = hash.Clone()
	}
	return clone
}

// DomainHashesToStrings returns a slice of strings representing the hashes in the given slice of hashes
func DomainHashesToStrings(hashes []*DomainHash) []string {
	strings := make([]string, len(hashes))
	for i, hash := range hashes {
		strings[i] = hash.String()
	}

	return strings
}
