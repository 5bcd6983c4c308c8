package objectid

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"log"
	"math/rand"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// New returns a 24-character lowercase hex identifier built from 12 random
// bytes, the same layout as a Mongo ObjectId. crypto/rand is the primary
// source; if it is unavailable the generator falls back to math/rand, which
// gives a weaker uniqueness guarantee and is logged as a warning.
func New() string {
	var b [12]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		log.Printf("objectid: crypto/rand unavailable, falling back to math/rand: %v", err)
		for i := range b {
			b[i] = byte(rand.Intn(256))
		}
	}
	return hex.EncodeToString(b[:])
}

// IsValid reports whether id is exactly 24 hex characters, case-insensitive.
func IsValid(id string) bool {
	return idPattern.MatchString(id)
}
