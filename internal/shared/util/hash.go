package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives the per-user directory name the object store files
// documents under. Hashing keeps raw user ids out of storage paths.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
