package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"
)

// hasherPool keeps reusable SHA-256 instances for content hashing.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// ContentHash returns the hex-encoded SHA-256 digest of data. It is the hash
// reported for remote files by backends that do not compute one themselves.
//
// Example usage:
//
//	hash := utils.ContentHash([]byte("database bytes"))
func ContentHash(data []byte) string {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashReader streams r through SHA-256 and returns the hex digest.
func HashReader(r io.Reader) (string, error) {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("error hashing content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
