package source

import (
	"encoding/hex"

	"github.com/minio/sha256-simd"
)

// ID is the SHA-256 digest of an input's decompressed content. Two inputs
// with the same ID produce the same report.
type ID [sha256.Size]byte

const shortStr = 4

// Str returns the shortened string version of id, for log messages.
func (id *ID) Str() string {
	if id == nil {
		return "[nil]"
	}
	if id.IsNull() {
		return "[null]"
	}
	return hex.EncodeToString(id[:shortStr])
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsNull returns true iff id only consists of null bytes.
func (id ID) IsNull() bool {
	return id == ID{}
}

// Hash returns the ID for data.
func Hash(data []byte) ID {
	return sha256.Sum256(data)
}
