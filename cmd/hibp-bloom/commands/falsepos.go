package commands

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/internal/config"
	"github.com/as3richa/hibp-bloom/pkg/bloom"
)

// probeKeySize is the byte length of each random probe. Probes this long
// collide with inserted keys with negligible probability, so every hit
// counts as a false positive.
const probeKeySize = 16

// FalseposCommand holds the flags for the falsepos command.
type FalseposCommand struct {
	configPath string
	trials     int
}

// NewFalseposCommand creates and configures the falsepos command.
func NewFalseposCommand() *cobra.Command {
	fc := &FalseposCommand{}

	cobraCmd := &cobra.Command{
		Use:   "falsepos <file>",
		Short: "Empirically measure a Bloom filter's false-positive rate",
		Long: "Empirically measure the false-positive rate of a saved Bloom filter by\n" +
			"querying random keys that are almost surely not members of the set.",
		Args: cobra.ExactArgs(1),
		RunE: fc.Run,
	}

	cobraCmd.Flags().IntVarP(&fc.trials, "trials", "t", 0, "Number of random probes (default from config)")
	cobraCmd.Flags().StringVar(&fc.configPath, "config", "", "Config file path")

	return cobraCmd
}

// Run executes the falsepos command.
func (fc *FalseposCommand) Run(cmd *cobra.Command, args []string) error {
	trials := fc.trials

	if !cmd.Flags().Changed("trials") {
		cfg, err := config.Load(fc.configPath)
		if err != nil {
			return err
		}

		trials = cfg.Trials
	}

	if trials <= 0 {
		return config.ErrInvalidTrials
	}

	f, err := bloom.LoadFile(args[0])
	if err != nil {
		return err
	}

	slog.Debug("loaded filter", "path", args[0],
		"hash_functions", f.HashCount(), "log2_bits", f.Log2Bits())

	hits := 0
	probe := make([]byte, probeKeySize)

	for i := 0; i < trials; i++ {
		if _, readErr := rand.Read(probe); readErr != nil {
			return fmt.Errorf("draw random probe: %w", readErr)
		}

		if f.Query(probe) {
			hits++
		}
	}

	rate := float64(hits) / float64(trials)

	fmt.Fprintf(cmd.OutOrStdout(), "%d false positives over %d trials (%.6f%%)\n",
		hits, trials, rate*100)

	return nil
}
