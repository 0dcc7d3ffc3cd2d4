// Package cmd is gammactl's command tree, built the way
// junjiewwang-perf-analysis/cmd/cli/cmd lays out its cobra root: a
// PersistentPreRunE that loads configuration and wires the logger once, and
// one sub-command per mode of operation.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/korjavin/gammagame/pkg/config"
	"github.com/korjavin/gammagame/pkg/gamelog"
)

var (
	configPath string
	cfg        *config.Config
	logger     gamelog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gammactl",
	Short: "Drive the gamma territory-claim engine from the command line",
	Long: `gammactl is the batch host for the gamma engine: it speaks the
line-oriented command protocol described in spec.md §6 (construct a board,
claim and override cells, query occupancy) over stdin/stdout. It does not
implement the interactive full-screen UI — that layer is out of scope for
this repository.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		session := uuid.NewString()
		logger = gamelog.New(gamelog.ParseLevel(cfg.Log.Level), os.Stderr).WithField("session", session)
		return nil
	},
}

// Execute runs the command tree, exiting the process with status 1 on
// error the way junjiewwang-perf-analysis/cmd/cli/cmd.Execute does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a gammactl config file (defaults searched in . and ./configs)")
}
