// Package runner drives a probe run: it generates queries, sends each one
// through a transport and reports per-query outcomes and a final summary.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/stats"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

// previewLimit is the number of memory summaries shown per query in verbose mode.
const previewLimit = 2

// Rewriter optionally rephrases a generated query before it is sent.
type Rewriter interface {
	Rewrite(ctx context.Context, query string) (string, error)
}

// Options configures a probe run.
type Options struct {
	NumQueries int
	Shape      query.Shape
	Context    transport.RequestContext
	Delay      time.Duration
	Verbose    bool
	Seed       *int64

	// Address and Service are only used for the header.
	Address string
	Service string
}

// Summary is the outcome of a run.
type Summary struct {
	RunID      string             `json:"run_id"`
	Seed       *int64             `json:"seed,omitempty"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []transport.Result `json:"results"`
	Latency    stats.Snapshot     `json:"latency"`
	Duration   time.Duration      `json:"duration"`
}

// Runner orchestrates a probe run. Invocations are strictly sequential.
type Runner struct {
	generator *query.Generator
	transport transport.Transport
	rewriter  Rewriter
	opts      Options
	out       *printer
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewRunner creates a runner writing its report to out.
func NewRunner(generator *query.Generator, t transport.Transport, out io.Writer, opts Options) *Runner {
	return &Runner{
		generator: generator,
		transport: t,
		opts:      opts,
		out:       newPrinter(out),
		sleep:     sleepContext,
	}
}

// SetRewriter enables query rewriting.
func (r *Runner) SetRewriter(rw Rewriter) {
	r.rewriter = rw
}

// Run executes the configured number of queries. Failed invocations are
// recorded and never stop the run; cancelling ctx stops it between queries.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	n := r.opts.NumQueries
	if n < 0 {
		return nil, fmt.Errorf("number of queries must not be negative, got %d", n)
	}

	start := time.Now()
	summary := &Summary{
		RunID:   uuid.NewString(),
		Seed:    r.opts.Seed,
		Results: make([]transport.Result, 0, n),
	}
	latency := stats.NewLatency()

	slog.Debug("starting probe run",
		"run_id", summary.RunID,
		"queries", n,
		"shape", r.opts.Shape,
	)
	r.out.header(r.opts)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			slog.Warn("probe run cancelled", "completed", i, "total", n)
			break
		}

		q := r.rewrite(ctx, r.generator.Next(r.opts.Shape))
		result := r.transport.Invoke(ctx, q, r.opts.Context)
		latency.Record(result.Duration)
		summary.Results = append(summary.Results, result)

		r.out.result(i+1, n, result)
		if result.Success {
			summary.Successful++
			if r.opts.Verbose {
				r.out.previews(result.MemorySummaries(previewLimit))
			}
		} else {
			summary.Failed++
		}

		if i < n-1 {
			if err := r.sleep(ctx, r.opts.Delay); err != nil {
				slog.Warn("probe run cancelled", "completed", i+1, "total", n)
				break
			}
		}
	}

	summary.Latency = latency.Snapshot()
	summary.Duration = time.Since(start)
	r.out.footer(summary)

	return summary, nil
}

func (r *Runner) rewrite(ctx context.Context, q string) string {
	if r.rewriter == nil {
		return q
	}
	rewritten, err := r.rewriter.Rewrite(ctx, q)
	if err != nil {
		slog.Warn("query rewrite failed, sending generated query", "query", q, "error", err)
		return q
	}
	slog.Debug("query rewritten", "query", q, "rewritten", rewritten)
	return rewritten
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
