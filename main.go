// Command sheetpreview ingests spreadsheets, previews their rows as HTML and
// exports them back to xlsx, from the command line or over HTTP.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetpreview",
		Short: "Preview and convert spreadsheet files",
		Long: `sheetpreview reads the first sheet of a spreadsheet (xlsx, csv, tsv or
an HTML table), renders its rows as HTML and writes them back as sheetjs.xlsx.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(), newPreviewCmd(), newConvertCmd())
	return rootCmd
}
