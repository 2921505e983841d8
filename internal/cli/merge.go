package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/merger"
)

func (a *app) newMergeCmd() *cobra.Command {
	var (
		pattern   string
		colName   string
		tagWidth  int
		encoding  string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "merge <input_dir> <output>",
		Short: "Merge CSV files with identical headers",
		Long: `Merge combines CSV files with identical headers into one file, adding a first
column with the first four characters of each source file name.

Files are taken in sorted order; empty files are skipped. The first non-empty
file defines the header every other file must match (surrounding whitespace is
ignored). Any mismatch aborts the run and no output is kept.`,
		Example: `  scimerge merge exports/ merged.csv
  scimerge merge exports/ merged.csv --pattern "FY24*.csv" --col-name source --recursive`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(
				func(c *config.Config) {
					c.InputDir = args[0]
					c.OutputPath = args[1]
				},
				flagOverrides(cmd, map[string]func(*config.Config){
					"pattern":   func(c *config.Config) { c.Pattern = pattern },
					"col-name":  func(c *config.Config) { c.TagColumn = colName },
					"tag-width": func(c *config.Config) { c.TagWidth = tagWidth },
					"encoding":  func(c *config.Config) { c.Encoding = encoding },
					"recursive": func(c *config.Config) { c.Recursive = recursive },
				}),
			)
			if err != nil {
				return a.finish(Output{}, err)
			}

			res, err := merger.NewStreamMerger(a.logger).MergeFiles(cfg)
			if err != nil {
				return a.finish(Output{}, err)
			}

			if !a.jsonOut {
				fmt.Fprintf(a.stdout, "Merged %d file(s) with header from '%s' into '%s' (%d rows).\n",
					res.FileCount, filepath.Base(res.HeaderSource), cfg.OutputPath, res.RowCount)
			}
			return a.finish(Output{
				OutputFiles:  res.OutputFiles,
				RowCount:     res.RowCount,
				FileCount:    res.FileCount,
				HeaderSource: res.HeaderSource,
			}, nil)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&pattern, "pattern", config.DefaultPattern, "Glob pattern for input files")
	flags.StringVar(&colName, "col-name", config.DefaultTagColumn, "Name of the new first column")
	flags.IntVar(&tagWidth, "tag-width", config.DefaultTagWidth, "Number of file name characters in the tag")
	flags.StringVar(&encoding, "encoding", config.DefaultEncoding, "File encoding for input and output")
	flags.BoolVar(&recursive, "recursive", false, "Search nested folders too")

	return cmd
}
