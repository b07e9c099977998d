package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giantswarm/memsearch-probe/internal/query"
)

func newPoolsCmd() *cobra.Command {
	var poolsFile string

	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List the word pools queries are built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pools, err := query.LoadPools(poolsFile)
			if err != nil {
				return err
			}

			source := "built-in"
			if poolsFile != "" {
				source = poolsFile
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Word pools (%s):\n\n", source)
			for _, c := range pools.Categories {
				fmt.Fprintf(out, "  - %s (%d words)\n", c.Name, len(c.Words))
				fmt.Fprintf(out, "    %s\n\n", strings.Join(c.Words, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&poolsFile, "pools-file", "", "YAML file replacing the built-in word pools")

	return cmd
}
