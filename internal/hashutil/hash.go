package hashutil

import (
	"crypto/sha1"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/letterdash-games/letterdash/internal/bytespool"
)

const joinCodeSpace = 1000000

// JoinCode derives a six-digit numeric room code from the current time.
func JoinCode() int64 {
	buf := bytespool.Get()
	defer func() {
		buf.Reset()
		bytespool.Put(buf)
	}()
	buf.WriteString(strconv.FormatInt(time.Now().UnixNano(), 10))
	sum := sha1.Sum(buf.Bytes())
	n := binary.BigEndian.Uint64(sum[:8])
	return int64(n % joinCodeSpace)
}
