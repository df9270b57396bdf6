package certification

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateVerificationCode returns "VER-" followed by 16 uppercase hex
// characters from a CSPRNG. Uniqueness is still enforced by the storage
// constraint; collisions are retried by the caller.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return "VER-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// FormatCertificateNumber builds "CERT-{year}-{month}{day}-{sequence}"
// with a zero-padded five digit sequence.
func FormatCertificateNumber(issuedAt time.Time, seq int64) string {
	return fmt.Sprintf("CERT-%04d-%02d%02d-%05d",
		issuedAt.Year(), int(issuedAt.Month()), issuedAt.Day(), seq%100000)
}
