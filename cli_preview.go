package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/locvowork/sheetpreview/pkg/dataflow"
	"github.com/locvowork/sheetpreview/pkg/pipeline"
	"github.com/locvowork/sheetpreview/pkg/preview"
	"github.com/spf13/cobra"
)

type previewResult struct {
	path  string
	table *pipeline.Table
	err   error
}

func newPreviewCmd() *cobra.Command {
	var (
		format     string
		layoutPath string
		sheetName  string
		workers    int
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "preview FILE...",
		Short: "Print the rows of one or more spreadsheets",
		Long: `preview ingests every FILE concurrently and prints, in argument order,
its rows as JSON, as the media HTML snippet or as an HTML table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json", string(preview.KindSnippet), string(preview.KindTable):
			default:
				return fmt.Errorf("invalid format: %s (must be json, snippet or table)", format)
			}
			layout, err := preview.LoadLayout(layoutPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			items := make([]interface{}, len(args))
			for i, path := range args {
				items[i] = path
			}

			ingest := func(msg interface{}) (interface{}, error) {
				path := msg.(string)
				table, err := pipeline.Ingest(ctx, pipeline.PathSource(path), pipeline.WithSheet(sheetName))
				return previewResult{path: path, table: table, err: err}, nil
			}
			results := dataflow.Map(ctx, dataflow.From(ctx, items...), ingest,
				dataflow.WithWorkers(workers), dataflow.WithOrdered())

			failed := 0
			err = dataflow.ForEach(ctx, results, func(msg interface{}) error {
				res := msg.(previewResult)
				if res.err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.path, res.err)
					return nil
				}
				return writePreview(cmd.OutOrStdout(), res.table, format, layout, pretty)
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, snippet, table")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "YAML snippet layout (default: columns A-F)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of files read concurrently")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func writePreview(w io.Writer, table *pipeline.Table, format string, layout preview.Layout, pretty bool) error {
	switch format {
	case string(preview.KindSnippet):
		fmt.Fprintf(w, "<!-- %s -->\n", table.Source)
		return preview.RenderSnippet(w, table.Data, layout)
	case string(preview.KindTable):
		fmt.Fprintf(w, "<!-- %s -->\n", table.Source)
		return preview.RenderTable(w, table.Data, table.Cols)
	default:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(table)
	}
}
