package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"oxidize/internal/ir"
)

// Digest identifies a module's IR content.
type Digest [sha256.Size]byte

// String returns the hex form of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// Fingerprint hashes a module's canonical IR dump. Equal IR always
// produces an equal digest, so it doubles as the cache key. The schema
// salt invalidates old entries when the dump format changes.
func Fingerprint(m *ir.Module) (Digest, error) {
	h := sha256.New()
	fmt.Fprintf(h, "oxidize/ir/v%d\n", cacheSchemaVersion)
	if err := ir.Dump(h, m); err != nil {
		return Digest{}, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
