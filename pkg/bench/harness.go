// Package bench implements the comparative benchmark harness (spec section
// 4.7): a single-threaded prefill against a shadow oracle, followed by a
// barrier-synchronized parallel lookup phase that measures wall-clock time
// and verifies every lookup against that oracle.
package bench

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/rand"

	"github.com/bobboyms/radixtree/pkg/radix"
	"github.com/bobboyms/radixtree/pkg/radixerr"
)

// Params configures one harness run, mirroring the CLI flag table in
// section 6.
type Params struct {
	Variant          string
	Bits             uint
	Radix            uint
	Keys             uint64
	LookupsPerThread uint64
	Threads          int

	MetricsAddr  string
	ReportPath   string
	TraceLogPath string
}

// Result is what a run produces: the measured elapsed time and the
// correctness-error code the harness detected, if any.
type Result struct {
	RunID          string
	ElapsedSeconds float64
	// ErrorCode is 0 on success, 1 for a prefill (find-or-create) mismatch,
	// 2 for a lookup-phase mismatch, matching the CLI's exit codes.
	ErrorCode int
	// Violation carries the first correctness mismatch the harness observed,
	// or nil on success. It is the concrete payload ErrorCode summarizes as
	// a bare int. The trace log records each mismatch's kind and key on its
	// own; the run report carries only ErrorCode, and the CLI does not send
	// Violation to Sentry.
	Violation *radixerr.CorrectnessViolationError
}

// benchValue is the factory-produced value the harness installs at every
// prefilled key: a fresh, distinct reference per key, exactly what
// testable property 2 requires.
type benchValue struct {
	key uint64
}

// addressableKeys returns min(keys, 2^bits-1), the number of sequential
// keys the prefill phase inserts (keys 0 up to but excluding that bound,
// section 4.7 step 3). bits>=64 is handled without overflowing the shift.
func addressableKeys(bits uint, keys uint64) uint64 {
	if keys == 0 {
		return 0
	}
	if bits >= 64 {
		// 2^64-1 is the largest uint64, so it is never smaller than
		// any representable keys count.
		return keys
	}
	space := uint64(1) << bits
	if keys > space-1 {
		return space - 1
	}
	return keys
}

// Run executes one full harness invocation against the variant named in
// p.Variant and returns its result. The returned error is a setup/CLI-level
// error (invalid parameters, an unopenable trace/report path); correctness
// violations are reported through Result.ErrorCode instead, per section 7's
// propagation policy.
func Run(ctx context.Context, p Params) (Result, error) {
	tree, err := radix.New(p.Variant, p.Bits, p.Radix)
	if err != nil {
		return Result{}, radixerr.Wrap(err, "constructing tree")
	}
	defer tree.Destroy()

	trace, err := newTraceSink(p.TraceLogPath)
	if err != nil {
		return Result{}, radixerr.Wrap(err, "opening trace log")
	}
	defer trace.close()

	var reg *prometheus.Registry
	var metrics *Metrics
	var metricsCancel context.CancelFunc
	var metricsDone chan struct{}
	if p.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		metrics = NewMetrics(reg)
		var metricsCtx context.Context
		metricsCtx, metricsCancel = context.WithCancel(ctx)
		metricsDone = make(chan struct{})
		go func() {
			defer close(metricsDone)
			ServeUntil(metricsCtx, p.MetricsAddr, reg)
		}()
	}

	n := addressableKeys(p.Bits, p.Keys)
	shadow := make(map[uint64]any, n)

	var result Result
	var prefillViolation *radixerr.CorrectnessViolationError
	for k := uint64(0); k < n && prefillViolation == nil; k++ {
		v := tree.FindOrCreate(k, func(key uint64) any { return &benchValue{key: key} })
		if v == nil {
			prefillViolation = &radixerr.CorrectnessViolationError{Kind: 1, Key: k, Want: nil, Got: nil}
			trace.correctnessViolation(1, k)
			break
		}
		if existing, ok := shadow[k]; ok && existing != v {
			prefillViolation = &radixerr.CorrectnessViolationError{Kind: 1, Key: k, Want: existing, Got: v}
			trace.correctnessViolation(1, k)
			break
		}
		shadow[k] = v
	}

	if prefillViolation != nil {
		result = Result{ErrorCode: 1, Violation: prefillViolation}
	} else {
		lookupKeys := generateLookupKeys(n, p.Threads, p.LookupsPerThread)
		var err error
		result, err = runParallelLookups(ctx, tree, shadow, lookupKeys, p, trace, metrics)
		if err != nil {
			return Result{}, err
		}
	}

	if metricsCancel != nil {
		metricsCancel()
		<-metricsDone
	}

	result.RunID = newRunID()
	if p.ReportPath != "" {
		report := RunReport{
			RunID:          result.RunID,
			Variant:        p.Variant,
			Bits:           p.Bits,
			Radix:          p.Radix,
			Keys:           p.Keys,
			LookupsPerGo:   p.LookupsPerThread,
			Threads:        p.Threads,
			ElapsedSeconds: result.ElapsedSeconds,
			ErrorCode:      result.ErrorCode,
		}
		if err := WriteReport(p.ReportPath, report); err != nil {
			return result, radixerr.Wrap(err, "writing run report")
		}
	}

	return result, nil
}

// generateLookupKeys produces threads*lookupsPerThread keys in
// [0, addressable), deterministically (seed fixed at 0, section 4.7 step
// 4), as a single pre-generated sequence split into one contiguous chunk
// per worker.
func generateLookupKeys(addressable uint64, threads int, lookupsPerThread uint64) [][]uint64 {
	chunks := make([][]uint64, threads)
	if addressable == 0 {
		for i := range chunks {
			chunks[i] = nil
		}
		return chunks
	}

	src := rand.New(rand.NewSource(0))
	for i := 0; i < threads; i++ {
		chunk := make([]uint64, lookupsPerThread)
		for j := range chunk {
			chunk[j] = src.Uint64() % addressable
		}
		chunks[i] = chunk
	}
	return chunks
}

// runParallelLookups implements the barrier-synchronized measurement phase
// (section 4.7 steps 5-8).
func runParallelLookups(
	ctx context.Context,
	tree radix.Tree,
	shadow map[uint64]any,
	lookupKeys [][]uint64,
	p Params,
	trace *traceSink,
	metrics *Metrics,
) (Result, error) {
	threads := p.Threads
	b := newBarrier(threads)
	var errCode atomic.Int32
	var violation atomic.Pointer[radixerr.CorrectnessViolationError]
	var wg sync.WaitGroup

	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func(workerID int) {
			defer wg.Done()
			trace.ready(workerID)
			b.arrive()

			keys := lookupKeys[workerID]
			var mismatches uint32
			var done uint64
			for _, key := range keys {
				got := tree.Find(key)
				want := shadow[key]
				matched := got == want
				if metrics != nil {
					metrics.RecordLookup(p.Variant, matched)
				}
				done++
				if !matched {
					mismatches++
					errCode.CompareAndSwap(0, 2)
					violation.CompareAndSwap(nil, &radixerr.CorrectnessViolationError{Kind: 2, Key: key, Want: want, Got: got})
					trace.correctnessViolation(2, key)
					break
				}
			}
			trace.workerDone(workerID, done, mismatches)
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			// Every spawned worker is parked in barrier.arrive(),
			// spinning on the start flag that only release() sets:
			// without releasing first, wg.Wait() below would block
			// forever on goroutines that can never wake up.
			b.release()
			wg.Wait()
			return Result{}, ctx.Err()
		default:
		}
		if b.allReady() {
			break
		}
	}

	start := time.Now()
	trace.start(threads, start.UnixNano())
	b.release()

	wg.Wait()
	elapsed := time.Since(start)

	if metrics != nil {
		metrics.RecordElapsed(elapsed.Seconds())
	}

	return Result{
		ElapsedSeconds: elapsed.Seconds(),
		ErrorCode:      int(errCode.Load()),
		Violation:      violation.Load(),
	}, nil
}

// FormatElapsed renders a Result's elapsed time as the harness's
// stdout-facing decimal-seconds string (section 6).
func FormatElapsed(r Result) string {
	return fmt.Sprintf("%f", r.ElapsedSeconds)
}
