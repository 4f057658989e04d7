// Command radixbench drives the comparative benchmark harness over the
// radix tree's five synchronization variants (spec section 4.7, section
// 6). Unlike the teacher's freyja CLI, this tool has no subcommands: the
// distilled spec's surface is one flat flag set, so a single cobra.Command
// carries everything.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/bobboyms/radixtree/pkg/bench"
	"github.com/bobboyms/radixtree/pkg/radix"
)

var flags struct {
	bits        uint
	radixBits   uint
	keys        uint64
	lookups     uint64
	threads     int
	variant     string
	metricsAddr string
	reportPath  string
	traceLog    string
	sentryDSN   string
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radixbench",
		Short: "Benchmark the concurrent radix tree's synchronization variants",
		Long: `radixbench prefills a concurrent radix tree single-threaded, then races
many goroutines performing pure lookups against it, measuring elapsed time
and checking every result against a shadow oracle.`,
		RunE: runBench,
	}

	f := cmd.Flags()
	f.UintVarP(&flags.bits, "bits", "b", 16, "key universe size in bits")
	f.UintVarP(&flags.radixBits, "radix", "r", 4, "bits consumed per tree level")
	f.Uint64VarP(&flags.keys, "keys", "k", 30000, "number of keys inserted sequentially before the race")
	f.Uint64VarP(&flags.lookups, "lookups", "l", 60000, "lookups performed per worker goroutine")
	f.IntVarP(&flags.threads, "threads", "p", 4, "worker goroutine count")
	f.StringVarP(&flags.variant, "variant", "i", "sequential", fmt.Sprintf("synchronization variant (%v)", radix.Variants()))
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the run executes")
	f.StringVar(&flags.reportPath, "report-path", "", "write a BSON-encoded run report to this path")
	f.StringVar(&flags.traceLog, "trace-log", "", "append checksummed lifecycle events to this path")
	f.StringVar(&flags.sentryDSN, "sentry-dsn", "", "report fatal conditions to Sentry at this DSN")

	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	if flags.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: flags.sentryDSN}); err != nil {
			fmt.Fprintf(os.Stderr, "radixbench: sentry init failed: %v\n", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	params := bench.Params{
		Variant:          flags.variant,
		Bits:             flags.bits,
		Radix:            flags.radixBits,
		Keys:             flags.keys,
		LookupsPerThread: flags.lookups,
		Threads:          flags.threads,
		MetricsAddr:      flags.metricsAddr,
		ReportPath:       flags.reportPath,
		TraceLogPath:     flags.traceLog,
	}

	fmt.Fprintf(os.Stderr, "radixbench: variant=%s bits=%d radix=%d keys=%d lookups=%d threads=%d\n",
		params.Variant, params.Bits, params.Radix, params.Keys, params.LookupsPerThread, params.Threads)

	result, err := bench.Run(cmd.Context(), params)
	if err != nil {
		if flags.sentryDSN != "" {
			sentry.CaptureException(err)
		}
		fmt.Fprintf(os.Stderr, "radixbench: %v\n", err)
		return err
	}

	fmt.Println(bench.FormatElapsed(result))

	if result.ErrorCode != 0 {
		fmt.Fprintf(os.Stderr, "radixbench: correctness violation detected (kind %d)\n", result.ErrorCode)
		os.Exit(result.ErrorCode)
	}
	return nil
}

func main() {
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
