package main

import (
	"fmt"

	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		outputPath string
		sheetName  string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Read a spreadsheet and write its first sheet as xlsx or csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := pipeline.Ingest(cmd.Context(), pipeline.PathSource(args[0]), pipeline.WithSheet(sheetName))
			if err != nil {
				return err
			}
			if err := pipeline.ExportFile(outputPath, table.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %d cols)\n", outputPath, len(table.Data), len(table.Cols))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", pipeline.ExportFileName, "Output file path (.xlsx, .xlsm, .csv, .tsv or .txt)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	return cmd
}
