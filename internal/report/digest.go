package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Digest computes the provenance identity of a raw document payload:
// SHA-256 over its RFC 8785 canonical form. Two payloads that differ only in
// key order or whitespace share a digest, so re-publishing an unchanged
// artifact never looks like a new run.
func Digest(raw []byte) (string, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize document: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
