// file: cmd/root.go
// version: 2.1.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jdfalk/isbn-renamer/internal/config"
	"github.com/jdfalk/isbn-renamer/internal/isbn"
	"github.com/jdfalk/isbn-renamer/internal/logging"
	"github.com/jdfalk/isbn-renamer/internal/metadata"
	"github.com/jdfalk/isbn-renamer/internal/metrics"
	"github.com/jdfalk/isbn-renamer/internal/models"
	"github.com/jdfalk/isbn-renamer/internal/organizer"
	"github.com/jdfalk/isbn-renamer/internal/pipeline"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = NewRootCmd()

// NewRootCmd builds the command tree with fresh flag state
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "isbn-renamer [flags] FILE...",
		Short: "Rename book files after the title, publisher and year of their ISBN",
		Long: `isbn-renamer finds a 10 character ISBN in each file name, looks the
book up in an online catalogue and renames the file to
"<title>, <publisher>, <year><ext>" in the working directory
(or next to the source with --keep-dir).

Files are processed in order and the first failure stops the run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: runRename,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.isbn-renamer.yaml)")
	flags.String("provider", config.ProviderOpenLibrary, "metadata provider: openlibrary, googlebooks, or a comma separated chain")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")

	root.Flags().BoolP("backup", "b", false, "copy each file to <file>.bak before renaming it")
	root.Flags().Bool("overwrite", false, "replace an existing file at the destination")
	root.Flags().BoolP("dry-run", "n", false, "print the planned renames without touching any file")
	root.Flags().Bool("keep-dir", false, "leave renamed files in their source directory instead of the working directory")
	root.Flags().Bool("progress", false, "show a progress bar on stderr when it is a terminal")
	root.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path after the run")

	root.AddCommand(newConfigCmd())
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

// bindFlags maps cobra flags onto viper keys. Flags missing from cmd, as on
// subcommands, are skipped.
func bindFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		"backup":         "backup",
		"overwrite":      "overwrite",
		"dry_run":        "dry-run",
		"keep_directory": "keep-dir",
		"provider":       "provider",
		"progress":       "progress",
		"log_level":      "log-level",
		"log_format":     "log-format",
		"metrics_file":   "metrics-file",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".isbn-renamer")
	}

	viper.SetEnvPrefix("ISBN_RENAMER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config.InitConfig()
	if err := config.AppConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  config.AppConfig.LogLevel,
		Format: config.AppConfig.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, err := isbn.NewExtractor(cfg.ISBNPattern)
	if err != nil {
		return fmt.Errorf("invalid isbn pattern: %w", err)
	}

	source, err := metadata.NewSourceFromConfig(&cfg)
	if err != nil {
		return err
	}
	logger.Debug("metadata source ready", "source", source.Name())

	renamer := organizer.NewRenamer(organizer.Options{
		Template:      cfg.RenameTemplate,
		BackupSuffix:  cfg.BackupSuffix,
		Overwrite:     cfg.Overwrite,
		DryRun:        cfg.DryRun,
		KeepDirectory: cfg.KeepDirectory,
		Out:           cmd.OutOrStdout(),
	})

	metrics.Register()

	runner := pipeline.NewRunner(extractor, metadata.NewFetcher(source), renamer, pipeline.Options{
		Backup:   cfg.Backup,
		Logger:   logger,
		Progress: newProgress(cfg.Progress, len(args), cmd.ErrOrStderr()),
	})

	records, runErr := runner.Run(ctx, args)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if cfg.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), renderPlan(records))
	}
	return nil
}

// newProgress returns nil unless a bar was asked for and stderr is a terminal
func newProgress(enabled bool, total int, w io.Writer) pipeline.Progress {
	if !enabled || !isTerminal(w) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("renaming"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func planRows(records []models.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		id := rec.ISBNValue()
		dest := rec.Rename
		if !rec.HasISBN() {
			id = "-"
			dest = "(skipped)"
		}
		rows = append(rows, []string{rec.Filename, id, dest})
	}
	return rows
}
