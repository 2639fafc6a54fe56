package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/pkg/bloom"
)

// NewInfoCommand creates and configures the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the parameters and saturation of a saved Bloom filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := bloom.LoadFile(args[0])
			if err != nil {
				return err
			}

			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.SetOutputMirror(cmd.OutOrStdout())

			tbl.AppendHeader(table.Row{"Property", "Value"})
			tbl.AppendRow(table.Row{"Hash functions", f.HashCount()})
			tbl.AppendRow(table.Row{"Log2 bits", f.Log2Bits()})
			tbl.AppendRow(table.Row{"Bits", f.BitCount()})
			tbl.AppendRow(table.Row{"Memory", humanize.IBytes(uint64(f.MemoryUsage()))})
			tbl.AppendRow(table.Row{"Fill ratio", fmt.Sprintf("%.6f", f.FillRatio())})

			tbl.Render()

			return nil
		},
	}
}
