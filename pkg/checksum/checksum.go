// Package checksum computes the stable content hash used to key statement
// blocks and detect file changes across invocations.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex-encoded SHA-256 digest of text.
//
// Grounded on the chained SHA-256 hashing in
// housekeeper's pkg/migrator/sumfile.go, which hashes migration file
// content the same way; here the hash is taken over a single piece of text
// rather than chained across a sequence of files.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
