package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/pkg/bloom"
)

// Query verdict strings.
const (
	verdictPresent = "probably present"
	verdictAbsent  = "definitely absent"
)

// QueryCommand holds the flags for the query commands.
type QueryCommand struct {
	noColor bool
	sha     bool
}

// NewQueryCommand creates and configures the query command.
func NewQueryCommand() *cobra.Command {
	qc := &QueryCommand{}

	cobraCmd := &cobra.Command{
		Use:   "query <file> <string>...",
		Short: "Query one or more strings against a Bloom filter",
		Long: "Query for the presence of one or more strings. A negative answer is\n" +
			"exact; a positive answer is correct up to the filter's false-positive rate.",
		Args: cobra.MinimumNArgs(2),
		RunE: qc.Run,
	}

	cobraCmd.Flags().BoolVar(&qc.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// NewQuerySHACommand creates and configures the query-sha command.
func NewQuerySHACommand() *cobra.Command {
	qc := &QueryCommand{sha: true}

	cobraCmd := &cobra.Command{
		Use:   "query-sha <file> <hash>...",
		Short: "Query one or more hex-encoded SHA-1 digests against a Bloom filter",
		Args:  cobra.MinimumNArgs(2),
		RunE:  qc.Run,
	}

	cobraCmd.Flags().BoolVar(&qc.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the query command.
func (qc *QueryCommand) Run(cmd *cobra.Command, args []string) error {
	if qc.noColor {
		color.NoColor = true
	}

	f, err := bloom.LoadFile(args[0])
	if err != nil {
		return err
	}

	// Present means the key is in the breach corpus: flag it loudly.
	present := color.New(color.FgRed).Sprint(verdictPresent)
	absent := color.New(color.FgGreen).Sprint(verdictAbsent)

	out := cmd.OutOrStdout()

	for _, s := range args[1:] {
		hit, queryErr := qc.queryOne(f, s)
		if queryErr != nil {
			return queryErr
		}

		verdict := absent
		if hit {
			verdict = present
		}

		fmt.Fprintf(out, "%s: %s\n", s, verdict)
	}

	return nil
}

// queryOne evaluates a single argument, as a raw string or a hex digest.
func (qc *QueryCommand) queryOne(f *bloom.Filter, s string) (bool, error) {
	if !qc.sha {
		return f.QueryString(s), nil
	}

	digest, err := bloom.SHA1HexToBin(s)
	if err != nil {
		return false, fmt.Errorf("digest %q: %w", s, err)
	}

	return f.QuerySHA1(digest), nil
}
