package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds "<kind>:<sha256>" from a scene hash and its key options.
// The options are JSON-encoded, so field tags fix the key layout.
func hashKey(kind, sceneHash string, opts any) string {
	data, _ := json.Marshal([]any{sceneHash, opts})
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of a scene source. Identical sources share
// cached renders and frames regardless of file name.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
