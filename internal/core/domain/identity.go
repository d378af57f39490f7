package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// HashBytes returns the lowercase hex sha256 of the given bytes.
// It is the content hash used for document identity.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DocumentID derives the stable document identifier from the resolved
// absolute path and the content hash. Identical bytes at an identical
// location always produce the same ID.
func DocumentID(absPath, contentHash string) string {
	return HashBytes([]byte(absPath + "|" + contentHash))
}

// ChunkID derives the stable chunk identifier from the parent document ID
// and the chunk's position in packing order.
func ChunkID(docID string, position int) string {
	return HashBytes([]byte(docID + ":" + strconv.Itoa(position)))
}
