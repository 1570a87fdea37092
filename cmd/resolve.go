// -- cmd/resolve.go --
package cmd

import (
	"fmt"

	"github.com/caseboard/caseboard/internal/casefile"
	"github.com/caseboard/caseboard/internal/observability"
	"github.com/caseboard/caseboard/internal/resolver"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var resolveAsJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <case.json>",
	Short: "Resolve a case file into a typed relationship graph",
	Long: `Resolve cross-references the characters, elements, puzzles, and timeline
events of a case file and prints the derived graph. Dangling references are
reported as diagnostics, never as failures.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := casefile.Load(args[0])
		if err != nil {
			return err
		}

		res := resolver.New(resolverWeights(), observability.GetLogger()).Resolve(cols)

		out := cmd.OutOrStdout()
		if resolveAsJSON {
			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Graph       any `json:"graph"`
				Diagnostics any `json:"diagnostics"`
			}{res.Graph, res.Diagnostics})
		}

		fmt.Fprintf(out, "nodes: %d\nedges: %d\n", len(res.Graph.Nodes), len(res.Graph.Edges))
		for _, d := range res.Diagnostics {
			fmt.Fprintf(out, "%s [%s] %s\n", d.Severity, d.Code, d.Message)
		}
		return nil
	},
}

// resolverWeights merges config overrides onto the default tuning.
func resolverWeights() resolver.Weights {
	w := resolver.DefaultWeights()
	if appCfg == nil {
		return w
	}
	rc := appCfg.Resolver
	return w.MergeOverrides(rc.TierMultipliers, rc.Strengths, rc.ConnectionPoints, rc.MaxImportance)
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveAsJSON, "json", false, "print the full graph as JSON")
	rootCmd.AddCommand(resolveCmd)
}
