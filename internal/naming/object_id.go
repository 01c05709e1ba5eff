package naming

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// NewObjectID returns a 24-char hex id shaped like Flywheel container ids:
// 4 bytes of big-endian Unix seconds followed by 8 random bytes.
// Ids generated in later seconds sort after earlier ones.
func NewObjectID() (string, error) {
	var b [12]byte
	ts := time.Now().UTC().Unix()
	if ts < 0 || ts > int64(^uint32(0)) {
		return "", fmt.Errorf("timestamp out of range for object id")
	}
	binary.BigEndian.PutUint32(b[:4], uint32(ts))
	if _, err := rand.Read(b[4:]); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
