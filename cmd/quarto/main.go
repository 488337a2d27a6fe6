// Command quarto plays Quarto in the terminal: human against human, human
// against the computer, or computer against computer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jordanlassers22/quarto/engine"
	"github.com/jordanlassers22/quarto/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags mirrors config.Config for the command line; only flags the user
// sets override the loaded configuration.
type flags struct {
	envFile    string
	seed       uint64
	p1, p2     string
	p1Computer bool
	p2Computer bool
	first      string
	placement  string
	delay      time.Duration
	logLevel   string
	games      int
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "quarto",
		Short: "Play Quarto in the terminal",
		Long: `Quarto is played with 16 tokens that are small or large, circle or square,
blue or red, solid or hollow. On your turn you place the token your opponent
chose for you, then choose the token your opponent must place. Four tokens
sharing one characteristic in a row, column or diagonal win.

Tokens are written as four letters: size S/L, shape C/Q, color B/R and
F/H for solid or hollow, e.g. LQRH. Cells are a column A-D and a row 1-4.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(cfg.LogLevel)
			return run(cfg, f.games, logger, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading QUARTO_* variables")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed, 0 for time-based")
	fl.StringVar(&f.p1, "p1", "", "name of player 1")
	fl.StringVar(&f.p2, "p2", "", "name of player 2")
	fl.BoolVar(&f.p1Computer, "p1-computer", false, "player 1 is the computer")
	fl.BoolVar(&f.p2Computer, "p2-computer", true, "player 2 is the computer")
	fl.StringVar(&f.first, "first", "", "who selects the first token: p1 or p2")
	fl.StringVar(&f.placement, "placement", "", "computer placement strategy: random or winning")
	fl.DurationVar(&f.delay, "delay", 0, "pause before each computer move")
	fl.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fl.IntVar(&f.games, "games", 1, "number of games to play in a row")

	cmd.AddCommand(newTokensCmd())
	return cmd
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("p1") {
		cfg.PlayerNames[0] = f.p1
	}
	if fl.Changed("p2") {
		cfg.PlayerNames[1] = f.p2
	}
	if fl.Changed("p1-computer") {
		cfg.Computer[0] = f.p1Computer
	}
	if fl.Changed("p2-computer") {
		cfg.Computer[1] = f.p2Computer
	}
	if fl.Changed("first") {
		first, err := config.ParseFirstSelector(f.first)
		if err != nil {
			return cfg, err
		}
		cfg.FirstSelector = first
	}
	if fl.Changed("placement") {
		cfg.Placement = f.placement
	}
	if fl.Changed("delay") {
		cfg.ComputerDelay = f.delay
	}
	if fl.Changed("log-level") {
		lvl, err := logrus.ParseLevel(f.logLevel)
		if err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = lvl
	}
	if f.games < 1 {
		return cfg, fmt.Errorf("--games must be at least 1, got %d", f.games)
	}
	return cfg, nil
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List the 16 tokens with their codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, t := range engine.Catalog() {
				fmt.Fprintf(out, "%s  %s\n", t.Code(), describe(t))
			}
		},
	}
}
