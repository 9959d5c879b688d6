// Command marketsim runs the transfer market headless on a generated world
// and prints what happened.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marketsim",
	Short: "Headless transfer market simulator",
	Long: `marketsim generates a seeded football world and runs market cycles
over it, printing a report per cycle and the transfer history.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newRunCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	opts := defaultSimOptions()
	var rulesFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run market cycles on a seeded world",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesFile)
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			if _, err := simulate(cmd.OutOrStdout(), rules, opts); err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.World.Seed, "seed", opts.World.Seed, "random seed for the world and the market")
	flags.IntVar(&opts.Cycles, "cycles", opts.Cycles, "number of market cycles to run")
	flags.IntVar(&opts.World.Leagues, "leagues", opts.World.Leagues, "number of leagues")
	flags.IntVar(&opts.World.ClubsPerLeague, "clubs", opts.World.ClubsPerLeague, "clubs per league")
	flags.IntVar(&opts.World.HumanClubs, "humans", opts.World.HumanClubs, "human controlled clubs in the top league")
	flags.StringVar(&opts.Policy, "policy", opts.Policy, "human policy: passive or accept")
	flags.StringVar(&rulesFile, "rules", "", "rules file (yaml, toml or json) overriding the default market rules")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log market events to stderr")
	return cmd
}
