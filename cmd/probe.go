package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/runner"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

type probeFlags struct {
	endpointFlags

	numQueries int
	userID     string
	agentID    string
	runID      string
	queryType  string
	delay      float64
	seed       int64

	rewriteEndpoint string
	rewriteModel    string
	rewriteAPIKey   string
	rewriteTemp     float64
}

func (f *probeFlags) register(cmd *cobra.Command) {
	f.endpointFlags.register(cmd)

	shapes := make([]string, 0, len(query.Shapes))
	for _, s := range query.Shapes {
		shapes = append(shapes, string(s))
	}

	fs := cmd.Flags()
	fs.IntVarP(&f.numQueries, "num-queries", "n", 1, "Number of random queries to send")
	fs.StringVarP(&f.userID, "user-id", "u", "harry", "User ID for context")
	fs.StringVarP(&f.agentID, "agent-id", "a", "", "Agent ID for context (optional)")
	fs.StringVarP(&f.runID, "run-id", "r", "", "Run ID for context (optional)")
	fs.StringVarP(&f.queryType, "query-type", "t", string(query.ShapeAny), "Type of queries to generate: "+strings.Join(shapes, ", "))
	fs.Float64VarP(&f.delay, "delay", "d", 0.1, "Delay between requests in seconds")
	fs.Int64VarP(&f.seed, "seed", "s", 0, "Random seed for reproducible queries (optional)")

	fs.StringVar(&f.rewriteEndpoint, "rewrite-endpoint", "", "OpenAI-compatible endpoint used to rephrase queries (optional)")
	fs.StringVar(&f.rewriteModel, "rewrite-model", "", "Model used to rephrase queries")
	fs.Float64Var(&f.rewriteTemp, "rewrite-temperature", 0.7, "Sampling temperature for query rewriting")
	fs.StringVar(&f.rewriteAPIKey, "rewrite-api-key", "", "API key for the rewrite endpoint (or set "+apiKeyEnv+")")
}

func runProbe(cmd *cobra.Command, f *probeFlags) error {
	shape, err := query.ParseShape(f.queryType)
	if err != nil {
		return err
	}
	if f.numQueries < 0 {
		return fmt.Errorf("--num-queries must not be negative")
	}
	if f.delay < 0 {
		return fmt.Errorf("--delay must not be negative")
	}
	if f.rewriteTemp < 0 || f.rewriteTemp > 2 {
		return fmt.Errorf("--rewrite-temperature must be between 0 and 2")
	}

	cfg, err := f.load(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	pools, err := query.LoadPools(f.poolsFile)
	if err != nil {
		return err
	}

	var seed *int64
	if cmd.Flags().Changed("seed") {
		s := f.seed
		seed = &s
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	client := transport.NewGrpcurlClient(cfg.TransportOptions()...)
	r := runner.NewRunner(query.NewGenerator(pools, seed), client, cmd.OutOrStdout(), runner.Options{
		NumQueries: f.numQueries,
		Shape:      shape,
		Context: transport.RequestContext{
			UserID:  f.userID,
			AgentID: f.agentID,
			RunID:   f.runID,
		},
		Delay:   time.Duration(f.delay * float64(time.Second)),
		Verbose: verbose,
		Seed:    seed,
		Address: cfg.Address(),
		Service: cfg.Service,
	})

	if rw := newRewriterFromFlags(f); rw != nil {
		r.SetRewriter(rw)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := r.Run(ctx)
	if err != nil {
		return err
	}

	slog.Debug("probe run complete",
		"run_id", summary.RunID,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	return nil
}
