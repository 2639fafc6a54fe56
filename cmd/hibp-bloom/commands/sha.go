package commands

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

// NewSHACommand creates and configures the sha command.
func NewSHACommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sha <string>...",
		Short: "Compute the SHA-1 digest of one or more strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, s := range args {
				digest := sha1.Sum([]byte(s))
				fmt.Fprintf(out, "%s  %s\n", hex.EncodeToString(digest[:]), s)
			}

			return nil
		},
	}
}
