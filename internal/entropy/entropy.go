// Package entropy derives the provably-fair uniform random value behind
// every wager. The server seed, client seed and nonce are persisted with the
// opening record so any third party can recompute the value after the fact.
package entropy

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/casedrop/engine/internal/domain"
)

// NewServerSeed generates a fresh 256-bit server seed, hex encoded.
// Seeds are generated per wager and never reused. If the secure source is
// unavailable the operation fails hard; there is no weaker fallback.
func NewServerSeed() (string, error) {
	buf := make([]byte, ServerSeedBytes)
	if _, err := crand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrEntropyUnavailable, err)
	}
	return hex.EncodeToString(buf), nil
}

// DeriveRandom maps (clientSeed, serverSeed, nonce) to a uniform value in
// [0,1). The digest is HMAC-SHA256 keyed by the server seed over
// "clientSeed|nonce"; the leading 8 bytes are reduced to 53 bits so the
// result is exactly representable as a float64 and never reaches 1.0.
func DeriveRandom(clientSeed, serverSeed string, nonce int64) float64 {
	mac := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s|%d", clientSeed, nonce)
	digest := mac.Sum(nil)

	u := binary.BigEndian.Uint64(digest[:8]) >> (64 - MantissaBits)
	return float64(u) / float64(uint64(1)<<MantissaBits)
}

// Verify recomputes the random value from persisted provenance and reports
// whether it matches what was recorded for the wager.
func Verify(p domain.Provenance) bool {
	derived := DeriveRandom(p.ClientSeed, p.ServerSeed, p.Nonce)
	return math.Abs(derived-p.RandomValue) < VerifyTolerance
}
