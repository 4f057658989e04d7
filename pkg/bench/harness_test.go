package bench

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bobboyms/radixtree/pkg/tracelog"
)

// TestE3_FullRunAcrossVariants reproduces the spec's E3 scenario (prefill
// 0..29999, 4 threads, fixed seed, on every variant), scaled down from
// 60000 to 6000 lookups per thread so the suite stays fast. The error flag
// must stay 0 and elapsed time must be positive.
func TestE3_FullRunAcrossVariants(t *testing.T) {
	for _, variant := range []string{"sequential", "lock_level", "lock_node", "lock_subtree", "lockless"} {
		variant := variant
		t.Run(variant, func(t *testing.T) {
			res, err := Run(context.Background(), Params{
				Variant:          variant,
				Bits:             16,
				Radix:            4,
				Keys:             30000,
				LookupsPerThread: 6000,
				Threads:          4,
			})
			if err != nil {
				t.Fatalf("Run(%s): %v", variant, err)
			}
			if res.ErrorCode != 0 {
				t.Fatalf("variant %s: error code = %d, want 0", variant, res.ErrorCode)
			}
			if res.ElapsedSeconds <= 0 {
				t.Fatalf("variant %s: elapsed = %v, want > 0", variant, res.ElapsedSeconds)
			}
			if res.RunID == "" {
				t.Fatalf("variant %s: RunID is empty", variant)
			}
		})
	}
}

// TestAddressableKeys_Boundaries exercises the "keys exceeds addressable
// space" and "keys = 0" boundaries named in section 8.
func TestAddressableKeys_Boundaries(t *testing.T) {
	cases := []struct {
		bits uint
		keys uint64
		want uint64
	}{
		{bits: 4, keys: 0, want: 0},
		{bits: 4, keys: 1000, want: 15},
		{bits: 8, keys: 100, want: 100},
		{bits: 1, keys: 5, want: 1},
	}
	for _, c := range cases {
		if got := addressableKeys(c.bits, c.keys); got != c.want {
			t.Errorf("addressableKeys(%d,%d) = %d, want %d", c.bits, c.keys, got, c.want)
		}
	}
}

// TestRun_ZeroLookups exercises lookups=0: the parallel phase should
// complete immediately without error.
func TestRun_ZeroLookups(t *testing.T) {
	res, err := Run(context.Background(), Params{
		Variant:          "sequential",
		Bits:             8,
		Radix:            4,
		Keys:             10,
		LookupsPerThread: 0,
		Threads:          2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ErrorCode != 0 {
		t.Fatalf("error code = %d, want 0", res.ErrorCode)
	}
}

// TestRun_UnknownVariant exercises the CLI-error path: New fails, Run
// returns a non-nil error rather than a correctness-violation code.
func TestRun_UnknownVariant(t *testing.T) {
	_, err := Run(context.Background(), Params{
		Variant: "does-not-exist",
		Bits:    8,
		Radix:   4,
		Threads: 1,
	})
	if err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
}

// TestRun_CanceledContextReturnsInsteadOfDeadlocking exercises the
// ctx-check the driver makes while waiting on the barrier, before the
// measured window opens: a context canceled before the barrier releases
// must not leave the already-spawned
// worker goroutines parked forever in barrier.arrive(). Run must still
// return (with ctx.Err()) rather than hang.
func TestRun_CanceledContextReturnsInsteadOfDeadlocking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = Run(ctx, Params{
			Variant:          "sequential",
			Bits:             8,
			Radix:            4,
			Keys:             100,
			LookupsPerThread: 10,
			Threads:          4,
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation; barrier likely deadlocked")
	}

	if err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}

// TestRun_WritesReportAndTrace checks that the optional report and trace
// outputs (section 10.3, 10.7) are produced and readable when requested.
func TestRun_WritesReportAndTrace(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.bson")
	tracePath := filepath.Join(dir, "trace.log")

	res, err := Run(context.Background(), Params{
		Variant:          "lockless",
		Bits:             8,
		Radix:            4,
		Keys:             200,
		LookupsPerThread: 50,
		Threads:          4,
		ReportPath:       reportPath,
		TraceLogPath:     tracePath,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ErrorCode != 0 {
		t.Fatalf("error code = %d, want 0", res.ErrorCode)
	}

	r, err := tracelog.NewReader(tracePath)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	sawReady, sawStart, sawDone := false, false, false
	for {
		event, err := r.ReadEvent()
		if err != nil {
			break
		}
		switch event.Header.EventType {
		case tracelog.EventReady:
			sawReady = true
		case tracelog.EventStart:
			sawStart = true
		case tracelog.EventWorkerDone:
			sawDone = true
		}
		tracelog.ReleaseEvent(event)
	}
	if !sawReady || !sawStart || !sawDone {
		t.Fatalf("trace missing expected events: ready=%v start=%v done=%v", sawReady, sawStart, sawDone)
	}
}
