package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashData returns the hex-encoded sha256 digest of the given payload.
// Used as the content hash stored next to account data for auditability.
func HashData(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
