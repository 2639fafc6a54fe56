package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/pkg/bloom"
)

// NewInsertCommand creates and configures the insert command.
func NewInsertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <file> <string>...",
		Short: "Insert one or more strings into a Bloom filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateFilter(cmd, args[0], func(f *bloom.Filter) error {
				for _, s := range args[1:] {
					f.InsertString(s)
				}

				return nil
			})
		},
	}
}

// NewInsertSHACommand creates and configures the insert-sha command.
func NewInsertSHACommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert-sha <file> <hash>...",
		Short: "Insert one or more hex-encoded SHA-1 digests into a Bloom filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateFilter(cmd, args[0], func(f *bloom.Filter) error {
				for _, s := range args[1:] {
					digest, err := bloom.SHA1HexToBin(s)
					if err != nil {
						return fmt.Errorf("digest %q: %w", s, err)
					}

					f.InsertSHA1(digest)
				}

				return nil
			})
		},
	}
}

// updateFilter loads the filter, applies fn, and persists the result. The
// file is rewritten only if fn succeeds.
func updateFilter(cmd *cobra.Command, path string, fn func(*bloom.Filter) error) error {
	f, err := bloom.LoadFile(path)
	if err != nil {
		return err
	}

	slog.Debug("loaded filter", "path", path,
		"hash_functions", f.HashCount(), "log2_bits", f.Log2Bits())

	if fnErr := fn(f); fnErr != nil {
		return fnErr
	}

	if saveErr := f.SaveFile(path); saveErr != nil {
		return saveErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: fill ratio now %.6f\n", path, f.FillRatio())

	return nil
}
