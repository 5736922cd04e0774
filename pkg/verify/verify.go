// Package verify implements detached Ed25519 signature verification
// for inbound callback requests.
package verify

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Verifier checks request signatures against a fixed public key. The
// key is read-only after construction, so a single Verifier is safe
// for concurrent use.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// New creates a Verifier from a hex-encoded Ed25519 public key.
func New(publicKeyHex string) (*Verifier, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}

	return &Verifier{publicKey: ed25519.PublicKey(raw)}, nil
}

// Verify reports whether signatureHex is a valid detached signature
// over timestamp || body. Malformed input (bad hex, wrong length,
// empty headers) yields false, never an error.
func (v *Verifier) Verify(timestamp string, body []byte, signatureHex string) bool {
	if timestamp == "" || signatureHex == "" {
		return false
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(v.publicKey, msg, sig)
}
