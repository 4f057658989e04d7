// Package tracelog is a checksummed, length-prefixed append-only event log,
// adapted from the teacher's pkg/wal: the same framed header, sync.Pool
// reuse, background-flush writer, and sequential reader, but the entries it
// carries are benchmark-harness lifecycle events rather than row mutations.
// There is no notion of transaction, segment, or recovery here — a trace is
// written once per harness run and read back only for post-mortem
// inspection.
package tracelog

import (
	"encoding/binary"
	"io"
)

const (
	HeaderSize = 24 // fixed header size in bytes, unchanged from the WAL layout

	// TraceMagic replaces the WAL's record magic: a distinct constant so a
	// trace file is never mistaken for a WAL segment by either reader.
	TraceMagic = 0xC0FFEE01
	Version    = 1
)

// EventType enumerates the harness lifecycle moments a run can record.
type EventType uint8

const (
	EventReady EventType = iota + 1
	EventStart
	EventWorkerDone
	EventCorrectnessViolation
)

// Header is the 24-byte framing header for one event, byte-for-byte the
// shape of the teacher's WALHeader with LSN renamed to Seq.
type Header struct {
	Magic      uint32
	Version    uint8
	EventType  EventType
	Reserved   uint16
	Seq        uint64
	PayloadLen uint32
	CRC32      uint32
}

// Event is one recorded lifecycle moment: a typed header plus an opaque,
// event-specific payload encoded by the pkg/bench glue that knows what each
// EventType's payload means.
type Event struct {
	Header  Header
	Payload []byte
}

func (h *Header) Encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	buf[4] = h.Version
	buf[5] = uint8(h.EventType)
	binary.LittleEndian.PutUint16(buf[6:8], h.Reserved)
	binary.LittleEndian.PutUint64(buf[8:16], h.Seq)
	binary.LittleEndian.PutUint32(buf[16:20], h.PayloadLen)
	binary.LittleEndian.PutUint32(buf[20:24], h.CRC32)
}

func (h *Header) Decode(buf []byte) {
	h.Magic = binary.LittleEndian.Uint32(buf[0:4])
	h.Version = buf[4]
	h.EventType = EventType(buf[5])
	h.Reserved = binary.LittleEndian.Uint16(buf[6:8])
	h.Seq = binary.LittleEndian.Uint64(buf[8:16])
	h.PayloadLen = binary.LittleEndian.Uint32(buf[16:20])
	h.CRC32 = binary.LittleEndian.Uint32(buf[20:24])
}

// WriteTo encodes the header into a scratch buffer drawn from the pool
// (AcquireBuffer / ReleaseBuffer, pool.go) rather than a fresh allocation
// per call, then writes header and payload to w.
func (e *Event) WriteTo(w io.Writer) (int64, error) {
	bufPtr := AcquireBuffer()
	defer ReleaseBuffer(bufPtr)

	buf := *bufPtr
	if cap(buf) < HeaderSize {
		buf = make([]byte, HeaderSize)
	} else {
		buf = buf[:HeaderSize]
	}
	e.Header.Encode(buf)
	*bufPtr = buf

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), err
	}

	m, err := w.Write(e.Payload)
	return int64(n + m), err
}

// NewEvent builds an event ready to write, computing its checksum and
// payload length from payload.
func NewEvent(typ EventType, seq uint64, payload []byte) *Event {
	return &Event{
		Header: Header{
			Magic:      TraceMagic,
			Version:    Version,
			EventType:  typ,
			Seq:        seq,
			PayloadLen: uint32(len(payload)),
			CRC32:      CalculateCRC32(payload),
		},
		Payload: payload,
	}
}
