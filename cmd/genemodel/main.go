// Package main provides the genemodel command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/genemodel/internal/annotation"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is built by the root command before any subcommand runs.
var logger = zap.NewNop()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "genemodel",
		Short:         "Gene annotation model for BED12 and refFlat files",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			l, err := newLogger(viper.GetString("log.level"), viper.GetString("log.format"))
			if err != nil {
				return &usageError{err}
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	flags := cmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console, json")
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))

	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newExonsCmd())
	cmd.AddCommand(newBlocksCmd())
	cmd.AddCommand(newLocateCmd())
	cmd.AddCommand(newOverlapCmd())
	cmd.AddCommand(newBedCmd())
	cmd.AddCommand(newFqstatCmd())
	cmd.AddCommand(newKmerCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads ~/.genemodel.yaml and GENEMODEL_* environment variables.
func initConfig() error {
	viper.SetDefault("load.skip_malformed", false)
	viper.SetDefault("load.merge", "last-wins")

	viper.SetEnvPrefix("GENEMODEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if viper.ConfigFileUsed() == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".genemodel.yaml"))
	}
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q (want console or json)", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadFlags are the flags shared by commands that read an annotation file.
type loadFlags struct {
	format string
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Annotation format: bed12, refflat (detected if not specified)")
	cmd.Flags().Bool("skip-malformed", false, "Skip malformed lines instead of failing")
	cmd.Flags().String("merge", "last-wins", "Merge policy for conflicting transcripts: last-wins, strict")
}

// load builds the transcriptome for path using the command's flags and config.
// viper keeps one flag per key, so the running command binds its own.
func (f *loadFlags) load(cmd *cobra.Command, path string) (*annotation.Transcriptome, *annotation.Loader, error) {
	_ = viper.BindPFlag("load.skip_malformed", cmd.Flags().Lookup("skip-malformed"))
	_ = viper.BindPFlag("load.merge", cmd.Flags().Lookup("merge"))

	format := annotation.FormatUnknown
	if f.format != "" {
		var err error
		if format, err = annotation.ParseFormat(f.format); err != nil {
			return nil, nil, &usageError{err}
		}
	}
	policy, err := annotation.ParseMergePolicy(viper.GetString("load.merge"))
	if err != nil {
		return nil, nil, &usageError{err}
	}

	l := annotation.NewLoader(path, format)
	l.SetSkipMalformed(viper.GetBool("load.skip_malformed"))
	l.SetPolicy(policy)
	l.SetLogger(logger)

	tx, err := l.Load()
	if err != nil {
		return nil, nil, err
	}
	return tx, l, nil
}
