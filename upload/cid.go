package upload

import (
	"crypto/sha256"
	"hash"

	"github.com/mr-tron/base58"
)

// multihash prefix for a 32-byte sha2-256 digest
var sha256Multihash = []byte{0x12, 0x20}

// ContentID returns the CIDv0 string ("Qm...") for data
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return encodeCID(sum[:])
}

func digestCID(h hash.Hash) string {
	return encodeCID(h.Sum(nil))
}

func encodeCID(digest []byte) string {
	return base58.Encode(append(append([]byte{}, sha256Multihash...), digest...))
}
