package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/testutil"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

func seed(v int64) *int64 {
	return &v
}

// newTestRunner builds a runner whose delays are recorded instead of slept.
func newTestRunner(t transport.Transport, opts Options) (*Runner, *bytes.Buffer, *[]time.Duration) {
	var out bytes.Buffer
	r := NewRunner(query.NewGenerator(query.DefaultPools(), opts.Seed), t, &out, opts)

	var sleeps []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return r, &out, &sleeps
}

func lines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestRunSeededSimpleQueries(t *testing.T) {
	stub := &testutil.StubTransport{}
	opts := Options{
		NumQueries: 3,
		Shape:      query.ShapeSimple,
		Context:    transport.RequestContext{UserID: "harry"},
		Delay:      100 * time.Millisecond,
		Seed:       seed(42),
		Address:    "localhost:5051",
		Service:    transport.DefaultService,
	}
	r, out, sleeps := newTestRunner(stub, opts)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Successful)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, summary.Results, 3)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, stub.Calls)
	assert.Equal(t, transport.RequestContext{UserID: "harry"}, stub.LastContext)

	// One pause between each pair of queries, none after the last.
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, *sleeps)

	text := out.String()
	assert.Contains(t, text, "Testing gRPC endpoint at localhost:5051\n")
	assert.Contains(t, text, "Service: memory_v1.MemoryService/SearchMemories\n")
	assert.Contains(t, text, "Sending 3 queries with user_id='harry'\n")
	assert.Contains(t, text, "Query type: simple\n")
	assert.Contains(t, text, "Random seed: 42\n")
	assert.Equal(t, 3, strings.Count(text, "Found 0 memories"))
	assert.Contains(t, text, "Results: 3 successful, 0 failed\n")
	assert.Contains(t, text, "To reproduce these results, use: --seed 42\n")

	for i, q := range stub.Queries {
		assert.Contains(t, text, "["+string(rune('1'+i))+"/3] ✓ Query: '"+q+"' | Found 0 memories\n")
		assert.NotContains(t, q, " ")
	}
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	opts := Options{NumQueries: 10, Shape: query.ShapeAny, Seed: seed(7)}

	first := &testutil.StubTransport{}
	r1, _, _ := newTestRunner(first, opts)
	_, err := r1.Run(context.Background())
	require.NoError(t, err)

	second := &testutil.StubTransport{}
	r2, _, _ := newTestRunner(second, opts)
	_, err = r2.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Queries, second.Queries)
}

func TestRunAllTimeouts(t *testing.T) {
	stub := testutil.TimeoutTransport()
	r, out, _ := newTestRunner(stub, Options{NumQueries: 4, Shape: query.ShapeAny})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Successful)
	assert.Equal(t, 4, summary.Failed)
	for _, res := range summary.Results {
		assert.False(t, res.Success)
		assert.Equal(t, "Request timed out", res.Error)
	}

	text := out.String()
	assert.Equal(t, 4, strings.Count(text, "❌ Query: '"))
	assert.Equal(t, 4, strings.Count(text, "| Error: Request timed out\n"))
	assert.Contains(t, text, "Results: 0 successful, 4 failed\n")
	assert.NotContains(t, text, "Random seed")
	assert.NotContains(t, text, "To reproduce")
}

func TestRunMixedOutcomesContinue(t *testing.T) {
	calls := 0
	ft := transportFunc(func(_ context.Context, q string, _ transport.RequestContext) transport.Result {
		calls++
		if calls%2 == 0 {
			return transport.Failed(q, "Failed to dial target host")
		}
		return transport.ParseResponse(q, []byte(`{"memories":[{},{}]}`))
	})
	r, out, _ := newTestRunner(ft, Options{NumQueries: 5, Shape: query.ShapePhrase, Seed: seed(1)})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Successful)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 5, calls)
	assert.Contains(t, out.String(), "Found 2 memories")
	assert.Contains(t, out.String(), "Results: 3 successful, 2 failed")
}

func TestRunVerbosePreviews(t *testing.T) {
	long := strings.Repeat("a", 65) + "éééééééééé"
	stub := &testutil.StubTransport{
		DefaultResponse: `{"memories":[
			{"content":{"summary":"` + long + `"}},
			{"content":{}},
			{"content":{"summary":"third is never shown"}}
		]}`,
	}
	r, out, _ := newTestRunner(stub, Options{NumQueries: 1, Shape: query.ShapeSimple, Verbose: true})

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Found 3 memories")
	assert.Contains(t, text, "    └─ "+strings.Repeat("a", 65)+"ééééé\n")
	assert.Contains(t, text, "    └─ N/A\n")
	assert.NotContains(t, text, "third is never shown")
}

func TestRunNotVerboseHidesPreviews(t *testing.T) {
	stub := &testutil.StubTransport{DefaultResponse: `{"memories":[{"content":{"summary":"hidden"}}]}`}
	r, out, _ := newTestRunner(stub, Options{NumQueries: 1, Shape: query.ShapeSimple})

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "hidden")
}

func TestRunZeroQueries(t *testing.T) {
	stub := &testutil.StubTransport{}
	r, out, sleeps := newTestRunner(stub, Options{NumQueries: 0, Shape: query.ShapeAny})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stub.Calls)
	assert.Empty(t, *sleeps)
	assert.Contains(t, out.String(), "Results: 0 successful, 0 failed")
	assert.NotContains(t, out.String(), "Latency:")
	assert.Empty(t, summary.Results)
}

func TestRunNegativeQueries(t *testing.T) {
	r, _, _ := newTestRunner(&testutil.StubTransport{}, Options{NumQueries: -1})
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunCancelledStopsBetweenQueries(t *testing.T) {
	stub := &testutil.StubTransport{}
	r, out, _ := newTestRunner(stub, Options{NumQueries: 5, Shape: query.ShapeSimple})

	ctx, cancel := context.WithCancel(context.Background())
	r.sleep = func(_ context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	summary, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.Calls)
	assert.Equal(t, 1, summary.Successful)
	assert.Contains(t, out.String(), "Results: 1 successful, 0 failed")
}

func TestRunPrintsLatency(t *testing.T) {
	ft := transportFunc(func(_ context.Context, q string, _ transport.RequestContext) transport.Result {
		r := transport.ParseResponse(q, []byte(`{}`))
		r.Duration = 20 * time.Millisecond
		return r
	})
	r, out, _ := newTestRunner(ft, Options{NumQueries: 2, Shape: query.ShapeSimple})

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Latency.Count)
	assert.InDelta(t, 20, summary.Latency.P50Ms, 0.1)
	assert.Contains(t, lines(out)[len(lines(out))-1], "Latency: p50=20.0ms")
}

func TestRunRewriter(t *testing.T) {
	stub := &testutil.StubTransport{}
	r, _, _ := newTestRunner(stub, Options{NumQueries: 2, Shape: query.ShapeSimple, Seed: seed(3)})
	r.SetRewriter(rewriterFunc(func(_ context.Context, q string) (string, error) {
		return "what about " + q + "?", nil
	}))

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	for _, q := range stub.Queries {
		assert.True(t, strings.HasPrefix(q, "what about "), q)
	}
}

func TestRunRewriterFailureKeepsQuery(t *testing.T) {
	stub := &testutil.StubTransport{}
	r, _, _ := newTestRunner(stub, Options{NumQueries: 1, Shape: query.ShapeSimple, Seed: seed(3)})
	r.SetRewriter(rewriterFunc(func(_ context.Context, q string) (string, error) {
		return "", assert.AnError
	}))

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	want := query.NewGenerator(query.DefaultPools(), seed(3)).Next(query.ShapeSimple)
	assert.Equal(t, []string{want}, stub.Queries)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 70))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "└─", truncate("└─x", 2))
}

type transportFunc func(ctx context.Context, q string, rc transport.RequestContext) transport.Result

func (f transportFunc) Invoke(ctx context.Context, q string, rc transport.RequestContext) transport.Result {
	return f(ctx, q, rc)
}

type rewriterFunc func(ctx context.Context, q string) (string, error)

func (f rewriterFunc) Rewrite(ctx context.Context, q string) (string, error) {
	return f(ctx, q)
}
