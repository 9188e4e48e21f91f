// Package database namespaces the consensus stores' keys into buckets over
// the generic KV contract in infrastructure/db/database, and bridges that
// contract to the model.DBReader/model.DBTransaction interfaces the stores
// are written against.
package database

import (
	"bytes"
)

// bucketSeparator delimits a bucket prefix from the key suffix. It is
// disallowed inside bucket names to keep keys unambiguous.
const bucketSeparator = 0xff

// Bucket namespaces keys so that distinct stores (ghostdag data,
// reachability data, block relations, ...) sharing one physical database
// never collide.
type Bucket struct {
	path []byte
}

// MakeBucket creates a top-level bucket identified by path.
func MakeBucket(path []byte) *Bucket {
	return &Bucket{path: path}
}

// Bucket returns a sub-bucket nested under b.
func (b *Bucket) Bucket(path []byte) *Bucket {
	return &Bucket{path: append(append([]byte{}, b.path...), append([]byte{bucketSeparator}, path...)...)}
}

// Key builds a fully-qualified key for suffix within this bucket.
func (b *Bucket) Key(suffix []byte) *DBKey {
	key := make([]byte, 0, len(b.path)+1+len(suffix))
	key = append(key, b.path...)
	key = append(key, bucketSeparator)
	key = append(key, suffix...)
	return &DBKey{bytes: key}
}

// DBKey is the concrete model.DBKey implementation used throughout the
// consensus stores.
type DBKey struct {
	bytes []byte
}

// Bytes returns the raw byte representation of the key.
func (k *DBKey) Bytes() []byte {
	return k.bytes
}

func (k *DBKey) String() string {
	return string(k.bytes)
}

// Equal reports whether two keys are byte-for-byte identical.
func (k *DBKey) Equal(other *DBKey) bool {
	return bytes.Equal(k.bytes, other.bytes)
}
