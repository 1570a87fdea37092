// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/caseboard/caseboard/internal/config"
	"github.com/caseboard/caseboard/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	appCfg  *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "caseboard",
	Short:   "Caseboard derives and lays out murder-mystery investigation graphs.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			// Initialize a fallback logger so the error itself gets logged sanely.
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "caseboard"})
			return err
		}
		appCfg = cfg
		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting caseboard", zap.String("version", Version))
		return nil
	},
}

// Execute adds all child commands to the root command and runs it. The
// context carries OS signal cancellation so in-flight layout computations
// stop on Ctrl+C.
func Execute(ctx context.Context) error {
	defer observability.Sync()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./caseboard.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
