package bench

import (
	"os"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// RunReport is the structured, machine-readable summary of one harness
// invocation, BSON-encoded the way the teacher's storage engine encodes its
// own documents (pkg/storage/bson.go), so a run's parameters and outcome
// can be inspected without scraping stdout.
type RunReport struct {
	RunID          string  `bson:"run_id"`
	Variant        string  `bson:"variant"`
	Bits           uint    `bson:"bits"`
	Radix          uint    `bson:"radix"`
	Keys           uint64  `bson:"keys"`
	LookupsPerGo   uint64  `bson:"lookups_per_thread"`
	Threads        int     `bson:"threads"`
	ElapsedSeconds float64 `bson:"elapsed_seconds"`
	ErrorCode      int     `bson:"error_code"`
}

// newRunID mirrors the teacher's storage.GenerateKey: a time-ordered,
// random-tailed UUIDv7, so run reports sort chronologically by ID even
// without reading their contents.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the entropy source is broken, which this
		// process cannot recover from either way.
		panic(err)
	}
	return id.String()
}

// WriteReport BSON-marshals r and writes it to path, truncating any
// existing file.
func WriteReport(path string, r RunReport) error {
	data, err := bson.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
