package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger handles raw packet trace output with optional file output.
type RawLogger interface {
	Log(channel int, streamID uint64, data []byte)
}

// rawLogger implements RawLogger with thread-safe output.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// rawDumpLimit caps the hex dump per packet; sample payloads can be large.
const rawDumpLimit = 64

// Log emits a single-line packet trace with timestamp and a bounded hex
// dump of the sample payload.
func (r *rawLogger) Log(channel int, streamID uint64, data []byte) {
	if r.w == nil {
		return
	}

	dump := data
	truncated := ""
	if len(dump) > rawDumpLimit {
		dump = dump[:rawDumpLimit]
		truncated = " ..."
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range dump {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s ch%d stream %d: %d bytes, hex: %s%s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		channel,
		streamID,
		len(data),
		hexbuf.String(),
		truncated)

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
