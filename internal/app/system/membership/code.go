// internal/app/system/membership/code.go
package membership

import (
	"crypto/rand"
	"fmt"
)

// GenerateCode returns a 4-character join code drawn uniformly from the
// unambiguous alphabet. Uniqueness is enforced by the groups.code index,
// not here.
func GenerateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
