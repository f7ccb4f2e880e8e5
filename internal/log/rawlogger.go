package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger receives every report exchanged with a device. The venus and
// holtek transports feed it both directions of traffic.
type RawLogger interface {
	Log(toDevice bool, data []byte)
}

// NewRaw returns a RawLogger writing one line per report to w. A nil
// writer yields a no-op logger, so transports can log unconditionally.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

type rawLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// Log writes a timestamped hex dump of one report. Millisecond timestamps
// make ack round-trips readable next to the 500ms echo deadline.
func (r *rawLogger) Log(toDevice bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	dir := "dev->host"
	if toDevice {
		dir = "host->dev"
	}
	line := fmt.Sprintf("%s %s %2d  % x\n",
		time.Now().Format("15:04:05.000"), dir, len(data), data)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.w, line)
}
