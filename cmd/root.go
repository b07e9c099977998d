package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

var (
	buildCommit = "unknown"
	buildDate   = "unknown"
)

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// SetBuildInfo sets the commit and build date for the version command.
func SetBuildInfo(commit, date string) {
	buildCommit = commit
	buildDate = date
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "memsearch-probe version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &probeFlags{}

	cmd := &cobra.Command{
		Use:   "memsearch-probe",
		Short: "Probe the SearchMemories RPC with randomized queries",
		Long: `memsearch-probe sends randomized natural-language queries to the SearchMemories
RPC of a memory service and reports how many calls succeeded.

Each query is sent through grpcurl over a plaintext connection, so the target
server must have gRPC reflection enabled. Queries are built from fixed word
pools in three shapes (simple, phrase, sentence); pass --seed to reproduce a run.

Per-query failures never abort the run.`,
		Example: `  memsearch-probe -n 10 -t phrase
  memsearch-probe -n 5 -u harry -a chef --seed 42 -v
  memsearch-probe --host memory.internal --port 6000 --timeout 3s`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd, flags)
		},
	}

	flags.register(cmd)
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print memory previews and debug logs")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPoolsCmd())

	return cmd
}
