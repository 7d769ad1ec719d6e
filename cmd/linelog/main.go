// Package main is a small app to write, read and stress a line-limited log file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golift.io/linelog"
)

// Usage, keep the newest 5 lines and write one:
//   go run ./cmd/linelog --limit 5 write info "hello world"
//
// Usage, print the log file:
//   go run ./cmd/linelog show
//
// Usage, 20 writers with 50 entries each against a 500 line limit:
//   go run ./cmd/linelog --limit 500 burst --workers 20 --count 50

type flags struct {
	config  string
	root    string
	name    string
	pattern string
	limit   uint
	local   bool
	public  bool
	debug   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &flags{}

	root := &cobra.Command{
		Use:          "linelog",
		Short:        "Line-limited log file writer",
		Long:         `Append time-stamped entries to a log file that keeps only its newest lines.`,
		SilenceUsage: true,
	}

	pflags := root.PersistentFlags()
	pflags.StringVarP(&opts.config, "config", "c", "", "YAML or JSON config file; flags override it")
	pflags.StringVarP(&opts.root, "root", "r", ".", "private storage root")
	pflags.StringVarP(&opts.name, "name", "n", "", "log file base name (default "+linelog.DefaultFileName+")")
	pflags.UintVarP(&opts.limit, "limit", "l", 0, "maximum line count, 0 for unlimited")
	pflags.BoolVar(&opts.local, "local", false, "use local time stamps instead of UTC")
	pflags.StringVarP(&opts.pattern, "pattern", "p", "", "time stamp pattern (default "+linelog.DefaultTimePattern+")")
	pflags.BoolVar(&opts.public, "public", false, "store the log in the public directory")
	pflags.BoolVarP(&opts.debug, "debug", "d", false, "print debug diagnostics")

	root.AddCommand(writeCmd(opts), showCmd(opts), pathCmd(opts), burstCmd(opts))

	return root
}

func writeCmd(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "write <level> <message...>",
		Short: "Append one entry",
		Long:  `Append one entry. Level is one of info, verbose, debug or warn.`,
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := linelog.ParseLevel(args[0])
			if err != nil {
				return err
			}

			logger, diag, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer diag.Sync() //nolint:errcheck

			message := strings.Join(args[1:], " ")
			if err := logger.Append(level.String(), message); err != nil {
				return err
			}

			diag.Debug("entry written", zap.Stringer("level", level), zap.Any("stats", logger.Stats()))

			return nil
		},
	}
}

func showCmd(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, diag, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer diag.Sync() //nolint:errcheck

			return logger.ReadLog(func(r io.Reader) error {
				_, err := io.Copy(cmd.OutOrStdout(), r)
				return err
			})
		},
	}
}

func pathCmd(opts *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the log file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, diag, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer diag.Sync() //nolint:errcheck

			path, _ := logger.LogFile()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

			return err
		},
	}
}

func burstCmd(opts *flags) *cobra.Command {
	var workers, count int

	cmd := &cobra.Command{
		Use:   "burst",
		Short: "Append from many go routines at once",
		Long:  `Append entries from many go routines at once to watch locking and rotation work together.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, diag, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer diag.Sync() //nolint:errcheck

			start := time.Now()

			var group errgroup.Group

			for worker := range workers {
				group.Go(func() error {
					for idx := range count {
						if err := logger.Append(fmt.Sprint("worker-", worker), fmt.Sprint("entry ", idx)); err != nil {
							return err
						}
					}

					return nil
				})
			}

			if err := group.Wait(); err != nil {
				return err
			}

			stats := logger.Stats()
			diag.Info("burst finished",
				zap.Int("workers", workers),
				zap.Uint64("appended", stats.Appended),
				zap.Uint64("dropped", stats.Dropped),
				zap.Uint64("failed", stats.Failed),
				zap.Duration("elapsed", time.Since(start)))

			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 10, "concurrent writers") //nolint:mnd
	cmd.Flags().IntVar(&count, "count", 100, "entries written per worker")  //nolint:mnd

	return cmd
}

// open builds the diagnostic logger and the line logger from flags and the config file.
func (f *flags) open(cmd *cobra.Command) (*linelog.Logger, *zap.Logger, error) {
	diag := newDiag(cmd.ErrOrStderr(), f.debug)

	config, err := f.loadConfig(cmd)
	if err != nil {
		return nil, diag, err
	}

	config.Sink = linelog.ZapSink(diag)

	logger, err := linelog.New(config, f.root)
	if err != nil {
		return nil, diag, fmt.Errorf("opening log: %w", err)
	}

	path, _ := logger.LogFile()
	diag.Debug("log opened", zap.String("path", path),
		zap.Bool("rotation", config.Rotation.Enabled), zap.Uint("max_lines", config.Rotation.MaxLines))

	return logger, diag, nil
}

// loadConfig reads the config file, if any, and applies flags that were set.
func (f *flags) loadConfig(cmd *cobra.Command) (linelog.Config, error) {
	config := linelog.DefaultConfig()

	if f.config != "" {
		var err error
		if config, err = linelog.ReadConfigFile(f.config); err != nil {
			return config, err
		}
	}

	pflags := cmd.Flags()

	if pflags.Changed("name") {
		config.FileName = f.name
	}

	if pflags.Changed("limit") {
		config.Rotation = linelog.Rotation{Enabled: f.limit > 0, MaxLines: f.limit}
	}

	if pflags.Changed("local") {
		config.Timezone = linelog.UTC
		if f.local {
			config.Timezone = linelog.Local
		}
	}

	if pflags.Changed("pattern") {
		config.TimePattern = f.pattern
	}

	if pflags.Changed("public") {
		config.Location = linelog.Private
		if f.public {
			config.Location = linelog.Public
		}
	}

	return config, nil
}

// newDiag returns a console zap logger for the app's own messages.
func newDiag(output io.Writer, debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(output), level)

	return zap.New(core)
}
