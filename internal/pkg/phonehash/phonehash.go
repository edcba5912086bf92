// Package phonehash hashes phone numbers the way NotificationRead
// documents key them, so a raw Account.phone can be matched against
// logged reads.
package phonehash

import (
	"crypto/sha512"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-512 digest of input.
func Hash(input string) string {
	sum := sha512.Sum512([]byte(input))
	return hex.EncodeToString(sum[:])
}
