// Package cryptox holds the small hashing helpers shared by the gateway and
// the CLI.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token,
// base64url-encoded (43 chars). It lets a token partition shared state
// without the token itself being written anywhere.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ShortFingerprint is the first n characters of FingerprintToken, for keys
// and log lines.
func ShortFingerprint(token string, n int) string {
	fp := FingerprintToken(token)
	if n <= 0 || n >= len(fp) {
		return fp
	}
	return fp[:n]
}
