package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/converter"
)

func (a *app) newConvertCmd() *cobra.Command {
	var (
		padSubs        bool
		strict         bool
		maxGroups      int
		headerRow      int
		csvHeaderRow   int
		sheet          string
		rawValues      bool
		encoding       string
		outputEncoding string
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a report to CSV aligned with the canonical schema",
		Long: `Convert reads a Service Contract Inventory report (.xlsx, header on row 4,
or .csv), drops a stray leading blank column, detects how many subcontractor
groups it carries and writes a CSV whose columns match the canonical schema.`,
		Example: `  scimerge convert report.xlsx report.csv
  scimerge convert report.xlsx report.csv --pad-subs
  scimerge convert export.csv aligned.csv --strict`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(
				func(c *config.Config) {
					c.InputPath = args[0]
					c.OutputPath = args[1]
				},
				flagOverrides(cmd, map[string]func(*config.Config){
					"pad-subs":        func(c *config.Config) { c.PadSubs = padSubs },
					"strict":          func(c *config.Config) { c.Strict = strict },
					"max-groups":      func(c *config.Config) { c.MaxGroups = maxGroups },
					"header-row":      func(c *config.Config) { c.HeaderRow = headerRow },
					"csv-header-row":  func(c *config.Config) { c.CSVHeaderRow = csvHeaderRow },
					"sheet":           func(c *config.Config) { c.Sheet = sheet },
					"raw-values":      func(c *config.Config) { c.RawValues = rawValues },
					"encoding":        func(c *config.Config) { c.Encoding = encoding },
					"output-encoding": func(c *config.Config) { c.OutputEncoding = outputEncoding },
				}),
			)
			if err != nil {
				return a.finish(Output{}, err)
			}

			res, err := converter.NewConverter(a.logger).Convert(cfg)
			if err != nil {
				return a.finish(Output{}, err)
			}

			if !a.jsonOut {
				fmt.Fprintf(a.stdout, "Wrote: %s\n", res.OutputPath)
				fmt.Fprintf(a.stdout, "Rows: %d  |  Columns: %d\n", res.Rows, res.Columns)
			}
			return a.finish(Output{
				OutputFiles: []string{res.OutputPath},
				RowCount:    int64(res.Rows),
				ColumnCount: res.Columns,
			}, nil)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&padSubs, "pad-subs", false, "Pad subcontractor groups up to --max-groups")
	flags.BoolVar(&strict, "strict", false, "Fail on column count drift instead of truncating or padding")
	flags.IntVar(&maxGroups, "max-groups", config.DefaultMaxGroups, "Upper bound of subcontractor groups (0-100)")
	flags.IntVar(&headerRow, "header-row", config.DefaultHeaderRow, "Zero-based header row of the spreadsheet")
	flags.IntVar(&csvHeaderRow, "csv-header-row", 0, "Zero-based header record of CSV input")
	flags.StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet)")
	flags.BoolVar(&rawValues, "raw-values", false, "Read cell values without number formats")
	flags.StringVar(&encoding, "encoding", config.DefaultEncoding, "Encoding of CSV input")
	flags.StringVar(&outputEncoding, "output-encoding", config.DefaultOutputEncoding, "Encoding of the output CSV")

	return cmd
}
