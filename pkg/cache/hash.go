package cache

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/matzehuels/progresstwin/pkg/codec"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, err := codec.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprint(parts...))
	}
	return prefix + ":" + Hash(data)
}

// Hash computes the BLAKE3-256 hash of data as 64 hex characters.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the deterministic CBOR encoding of v.
func HashValue(v any) (string, error) {
	data, err := codec.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode for hashing: %w", err)
	}
	return Hash(data), nil
}
