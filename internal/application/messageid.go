package application

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"
)

var messageCounter atomic.Uint64

// newMessageID builds a correlation id from the wall clock, a process-wide
// monotonic counter and a random suffix. The counter keeps ids unique within
// one process even for messages generated in the same millisecond; the
// random suffix keeps independent processes from colliding.
func newMessageID() string {
	now := strconv.FormatInt(time.Now().UnixMilli(), 16)
	seq := strconv.FormatUint(messageCounter.Add(1), 16)
	suffix := strconv.FormatUint(uint64(rand.Uint32()), 16)
	return now + "-" + seq + "-" + suffix
}
