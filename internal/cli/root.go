// Package cli - команды scimerge: convert приводит отчет к канонической
// схеме, merge сливает CSV-выгрузки в один файл.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryabkov82/scimerge/internal/config"
	"github.com/ryabkov82/scimerge/internal/errors"
	"github.com/ryabkov82/scimerge/internal/logging"
)

type app struct {
	configPath string
	verbose    bool
	jsonOut    bool

	stdout io.Writer
	stderr io.Writer
	start  time.Time
	logger *zap.Logger
}

// NewRootCmd собирает дерево команд с заданными потоками вывода.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "scimerge",
		Short: "Prepare Service Contract Inventory exports for database import",
		Long: `scimerge normalizes Service Contract Inventory report exports into CSV
files with one consistent column layout.

  convert  align a spreadsheet (or CSV) report to the canonical schema
  merge    combine same-shaped CSV files, tagging each row with its source`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.start = time.Now()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.InvalidArgument("%v", err)
	})

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print the run result as JSON")

	root.AddCommand(a.newConvertCmd(), a.newMergeCmd())
	return root
}

// Run выполняет команду и возвращает код завершения процесса.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, errors.Format(err))
	}
	return errors.ExitCode(err)
}

// Execute запускает CLI с аргументами процесса.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// loadConfig загружает конфигурацию, применяет флаги и поднимает логгер.
func (a *app) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(a.configPath, overrides...)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	return cfg, nil
}

// exactArgs - как cobra.ExactArgs, но ошибка классифицируется как InvalidArgument.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.InvalidArgument("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// flagOverrides возвращает override, переносящий в конфигурацию только
// явно заданные флаги, чтобы не затирать значения из файла и окружения.
func flagOverrides(cmd *cobra.Command, setters map[string]func(*config.Config)) func(*config.Config) {
	return func(c *config.Config) {
		for name, set := range setters {
			if cmd.Flags().Changed(name) {
				set(c)
			}
		}
	}
}
