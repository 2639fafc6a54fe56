// Package commands provides CLI command implementations for hibp-bloom.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/internal/config"
	"github.com/as3richa/hibp-bloom/pkg/bloom"
	"github.com/as3richa/hibp-bloom/pkg/safeconv"
)

// CreateCommand holds the flags for the create command.
type CreateCommand struct {
	hashFunctions uint64
	log2Bits      uint64
}

// NewCreateCommand creates and configures the create command.
func NewCreateCommand() *cobra.Command {
	cc := &CreateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create a Bloom filter from explicit parameters",
		Long: "Create a Bloom filter with the given number of randomly-chosen hash\n" +
			"functions and a bit vector of length 2^log2-bits, and write it to file.",
		Args: cobra.ExactArgs(1),
		RunE: cc.Run,
	}

	cobraCmd.Flags().Uint64VarP(&cc.hashFunctions, "hash-functions", "k", 0, "Number of hash functions")
	cobraCmd.Flags().Uint64VarP(&cc.log2Bits, "log2-bits", "b", 0, "Log2 of the bit-vector length")
	_ = cobraCmd.MarkFlagRequired("hash-functions")
	_ = cobraCmd.MarkFlagRequired("log2-bits")

	return cobraCmd
}

// Run executes the create command.
func (cc *CreateCommand) Run(cmd *cobra.Command, args []string) error {
	k, ok := safeconv.Uint64ToUint(cc.hashFunctions)
	if !ok {
		return fmt.Errorf("hash function count %d does not fit this platform: %w", cc.hashFunctions, bloom.ErrTooBig)
	}

	b, ok := safeconv.Uint64ToUint(cc.log2Bits)
	if !ok {
		return fmt.Errorf("log2-bits %d does not fit this platform: %w", cc.log2Bits, bloom.ErrTooBig)
	}

	return writeNewFilter(cmd, args[0], k, b)
}

// CreateFalseposCommand holds the flags for the create-falsepos command.
type CreateFalseposCommand struct {
	configPath string
	count      uint64
	rate       float64
}

// NewCreateFalseposCommand creates and configures the create-falsepos command.
func NewCreateFalseposCommand() *cobra.Command {
	cc := &CreateFalseposCommand{}

	cobraCmd := &cobra.Command{
		Use:   "create-falsepos <file>",
		Short: "Create a Bloom filter sized for a target false-positive rate",
		Long: "Create a Bloom filter sized for the expected cardinality of the set at\n" +
			"an approximate goal false-positive rate, and write it to file.",
		Args: cobra.ExactArgs(1),
		RunE: cc.Run,
	}

	cobraCmd.Flags().Uint64VarP(&cc.count, "count", "n", 0, "Expected cardinality of the set")
	cobraCmd.Flags().Float64VarP(&cc.rate, "rate", "p", 0, "Target false-positive rate (default from config)")
	cobraCmd.Flags().StringVar(&cc.configPath, "config", "", "Config file path")
	_ = cobraCmd.MarkFlagRequired("count")

	return cobraCmd
}

// Run executes the create-falsepos command.
func (cc *CreateFalseposCommand) Run(cmd *cobra.Command, args []string) error {
	rate := cc.rate

	if !cmd.Flags().Changed("rate") {
		cfg, err := config.Load(cc.configPath)
		if err != nil {
			return err
		}

		rate = cfg.FalsePositiveRate
	}

	if rate <= 0 || rate >= 1 {
		return fmt.Errorf("false-positive rate %v is not in (0, 1): %w", rate, bloom.ErrParam)
	}

	count, ok := safeconv.Uint64ToUint(cc.count)
	if !ok {
		return fmt.Errorf("count %d does not fit this platform: %w", cc.count, bloom.ErrTooBig)
	}

	k, b := bloom.OptimalParams(count, rate)

	return writeNewFilter(cmd, args[0], k, b)
}

// CreateMaxmemCommand holds the flags for the create-maxmem command.
type CreateMaxmemCommand struct {
	configPath string
	maxMemory  string
	count      uint64
}

// NewCreateMaxmemCommand creates and configures the create-maxmem command.
func NewCreateMaxmemCommand() *cobra.Command {
	cc := &CreateMaxmemCommand{}

	cobraCmd := &cobra.Command{
		Use:   "create-maxmem <file>",
		Short: "Create a Bloom filter within a memory budget",
		Long: "Create a Bloom filter sized for the expected cardinality of the set\n" +
			"within an approximate memory budget, and write it to file.",
		Args: cobra.ExactArgs(1),
		RunE: cc.Run,
	}

	cobraCmd.Flags().Uint64VarP(&cc.count, "count", "n", 0, "Expected cardinality of the set")
	cobraCmd.Flags().StringVarP(&cc.maxMemory, "max-memory", "m", "", `Memory budget, e.g. "64MiB" (default from config)`)
	cobraCmd.Flags().StringVar(&cc.configPath, "config", "", "Config file path")
	_ = cobraCmd.MarkFlagRequired("count")

	return cobraCmd
}

// Run executes the create-maxmem command.
func (cc *CreateMaxmemCommand) Run(cmd *cobra.Command, args []string) error {
	budgetStr := cc.maxMemory

	if budgetStr == "" {
		cfg, err := config.Load(cc.configPath)
		if err != nil {
			return err
		}

		budgetStr = cfg.MaxMemory
	}

	budgetBytes, err := humanize.ParseBytes(budgetStr)
	if err != nil {
		return fmt.Errorf("parse memory budget %q: %w", budgetStr, err)
	}

	budget, ok := safeconv.Uint64ToUint(budgetBytes)
	if !ok {
		return fmt.Errorf("memory budget %s does not fit this platform: %w", budgetStr, bloom.ErrTooBig)
	}

	count, ok := safeconv.Uint64ToUint(cc.count)
	if !ok {
		return fmt.Errorf("count %d does not fit this platform: %w", cc.count, bloom.ErrTooBig)
	}

	k, b := bloom.ConstrainedParams(count, budget)

	return writeNewFilter(cmd, args[0], k, b)
}

// writeNewFilter constructs a filter and persists it, reporting the chosen
// parameters.
func writeNewFilter(cmd *cobra.Command, path string, k, b uint) error {
	f, err := bloom.New(k, b)
	if err != nil {
		return err
	}

	if saveErr := f.SaveFile(path); saveErr != nil {
		return saveErr
	}

	slog.Debug("created filter", "path", path, "hash_functions", k, "log2_bits", b)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d hash functions, 2^%d bits, %s\n",
		path, k, b, humanize.IBytes(uint64(f.MemoryUsage())))

	return nil
}
