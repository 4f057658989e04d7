package bench

import (
	"encoding/binary"

	"github.com/bobboyms/radixtree/pkg/tracelog"
)

// traceSink wraps a *tracelog.Writer and is safe to call with a nil
// underlying writer (when --trace-log was not given), so the harness does
// not need to branch on whether tracing is enabled at every call site.
type traceSink struct {
	w *tracelog.Writer
}

func (s *traceSink) ready(workerID int) {
	if s == nil || s.w == nil {
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(workerID))
	s.w.WriteEvent(tracelog.EventReady, buf)
}

func (s *traceSink) start(threads int, startUnixNano int64) {
	if s == nil || s.w == nil {
		return
	}
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(threads))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(startUnixNano))
	s.w.WriteEvent(tracelog.EventStart, buf)
}

func (s *traceSink) workerDone(workerID int, lookups uint64, mismatches uint32) {
	if s == nil || s.w == nil {
		return
	}
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(workerID))
	binary.LittleEndian.PutUint64(buf[4:12], lookups)
	binary.LittleEndian.PutUint32(buf[12:16], mismatches)
	s.w.WriteEvent(tracelog.EventWorkerDone, buf)
}

func (s *traceSink) correctnessViolation(kind uint8, key uint64) {
	if s == nil || s.w == nil {
		return
	}
	buf := make([]byte, 9)
	buf[0] = kind
	binary.LittleEndian.PutUint64(buf[1:9], key)
	s.w.WriteEvent(tracelog.EventCorrectnessViolation, buf)
}

func (s *traceSink) close() error {
	if s == nil || s.w == nil {
		return nil
	}
	return s.w.Close()
}

// newTraceSink opens path for event tracing, or returns a no-op sink if
// path is empty.
func newTraceSink(path string) (*traceSink, error) {
	if path == "" {
		return &traceSink{}, nil
	}
	w, err := tracelog.NewWriter(path, tracelog.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return &traceSink{w: w}, nil
}
