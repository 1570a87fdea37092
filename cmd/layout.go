// -- cmd/layout.go --
package cmd

import (
	"fmt"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/caseboard/caseboard/internal/casefile"
	"github.com/caseboard/caseboard/internal/engine"
	"github.com/caseboard/caseboard/internal/layoutcache"
	"github.com/caseboard/caseboard/internal/layouts"
	"github.com/caseboard/caseboard/internal/observability"
	"github.com/caseboard/caseboard/internal/resolver"
	"github.com/caseboard/caseboard/internal/traversal"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var layoutFlags struct {
	algorithm   string
	search      string
	puzzle      string
	focus       string
	depth       int
	acts        []string
	tiers       []string
	asJSON      bool
	showMetrics bool
}

var layoutCmd = &cobra.Command{
	Use:   "layout <case.json>",
	Short: "Resolve, filter, and position a case graph",
	Long: `Layout runs the full pipeline: the case file is resolved into a graph,
optionally filtered, and positioned with one of the built-in layout
algorithms. Results are memoized in the layout cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := casefile.Load(args[0])
		if err != nil {
			return err
		}

		algorithm := layoutFlags.algorithm
		if algorithm == "" && appCfg != nil {
			algorithm = appCfg.Layout.Algorithm
		}
		positioner, err := layouts.ForAlgorithm(algorithm)
		if err != nil {
			return err
		}

		log := observability.GetLogger()
		cache := cacheFromConfig(log)
		eng, err := engine.New(resolver.New(resolverWeights(), log), cache, positioner, log)
		if err != nil {
			return err
		}

		layoutCfg := schemas.LayoutConfig{Algorithm: algorithm}
		if appCfg != nil {
			layoutCfg.Direction = appCfg.Layout.Direction
			layoutCfg.Spacing = appCfg.Layout.Spacing
		}

		filter := traversal.Filter{
			Search:   layoutFlags.search,
			Acts:     layoutFlags.acts,
			PuzzleID: layoutFlags.puzzle,
			Focus:    layoutFlags.focus,
			Depth:    layoutFlags.depth,
		}
		for _, tier := range layoutFlags.tiers {
			filter.Tiers = append(filter.Tiers, schemas.CharacterTier(tier))
		}

		res, err := eng.Materialize(cmd.Context(), cols, filter, layoutCfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if layoutFlags.asJSON {
			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res.Data); err != nil {
				return err
			}
		} else {
			for _, n := range res.Data.Nodes {
				fmt.Fprintf(out, "%-12s %-10s (%.0f, %.0f)\n", n.ID, n.Type, n.Position.X, n.Position.Y)
			}
			for _, d := range res.Diagnostics {
				fmt.Fprintf(out, "%s [%s] %s\n", d.Severity, d.Code, d.Message)
			}
		}

		if layoutFlags.showMetrics {
			m := cache.Metrics()
			fmt.Fprintf(out, "cache: hits=%d misses=%d hit_rate=%.2f entries=%d total_size=%d evictions=%d\n",
				m.Hits, m.Misses, m.HitRate, m.Entries, m.TotalSize, m.Evictions)
		}
		return nil
	},
}

// cacheFromConfig builds the layout cache from the loaded configuration.
func cacheFromConfig(log *zap.Logger) *layoutcache.Cache {
	opts := []layoutcache.Option{layoutcache.WithLogger(log)}
	if appCfg != nil {
		c := appCfg.Cache
		opts = append(opts,
			layoutcache.WithMaxEntries(c.MaxEntries),
			layoutcache.WithTTL(c.TTL),
			layoutcache.WithRefreshOnAccess(c.RefreshOnAccess),
			layoutcache.WithMaxMemoryMB(c.MaxMemoryMB),
			layoutcache.WithMetrics(c.EnableMetrics),
		)
	}
	return layoutcache.New(opts...)
}

func init() {
	layoutCmd.Flags().StringVar(&layoutFlags.algorithm, "algorithm", "", "layout algorithm (grid, circle)")
	layoutCmd.Flags().StringVar(&layoutFlags.search, "search", "", "keep nodes matching a search term")
	layoutCmd.Flags().StringVar(&layoutFlags.puzzle, "puzzle", "", "isolate one puzzle and its reachable nodes")
	layoutCmd.Flags().StringVar(&layoutFlags.focus, "focus", "", "focused node for depth expansion")
	layoutCmd.Flags().IntVar(&layoutFlags.depth, "depth", 0, "hops of context around the focused node")
	layoutCmd.Flags().StringSliceVar(&layoutFlags.acts, "act", nil, "keep only the listed acts")
	layoutCmd.Flags().StringSliceVar(&layoutFlags.tiers, "tier", nil, "keep only characters of the listed tiers")
	layoutCmd.Flags().BoolVar(&layoutFlags.asJSON, "json", false, "print the positioned graph as JSON")
	layoutCmd.Flags().BoolVar(&layoutFlags.showMetrics, "metrics", false, "print cache metrics after the run")
	rootCmd.AddCommand(layoutCmd)
}
