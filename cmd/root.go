// Package cmd implements the blob2c command line.
//
// Generated source is the only thing written to stdout. Help, version,
// usage and diagnostics all go to stderr.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xll-gen/blob2c/internal/blob"
	"github.com/xll-gen/blob2c/internal/config"
	"github.com/xll-gen/blob2c/internal/generator"
	"github.com/xll-gen/blob2c/pkg/log"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// version is set at build time with -ldflags "-X github.com/xll-gen/blob2c/cmd.version=...".
var version = "dev"

// ErrMissingFilename is returned when no input file is given.
var ErrMissingFilename = errors.New("missing filename argument")

// usageError marks errors caused by bad command-line flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// flagValues holds the raw flag values before they are layered onto the config.
type flagValues struct {
	configPath string
	typ        string
	sizeType   string
	prefix     string
	basename   string
	ihex       bool
	fill       uint8
	logLevel   string
	logFile    string
}

// newRootCmd builds the blob2c command writing generated source to stdout.
// Each call returns a fresh command with its own flag state.
func newRootCmd(stdout io.Writer) *cobra.Command {
	fv := &flagValues{}

	cmd := &cobra.Command{
		Use:   "blob2c [-t type] [-s sizetype] [-p prefix] [-b basename] filename",
		Short: "Convert a binary file into a C array and size constant",
		Long: `blob2c reads a binary file and writes C source to stdout: an array holding
one hex literal per byte and a constant holding the byte count. Redirect the
output to a header to embed firmware images, fonts or certificates.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrMissingFilename
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, fv, args[0], stdout)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fv.typ, "type", "t", generator.DefaultType, "element type of the array")
	f.StringVarP(&fv.sizeType, "size-type", "s", generator.DefaultSizeType, "type of the size constant")
	f.StringVarP(&fv.prefix, "prefix", "p", generator.DefaultPrefix, "text emitted before the array")
	f.StringVarP(&fv.basename, "basename", "b", "", "symbol name stem (default derived from filename)")
	f.StringVarP(&fv.configPath, "config", "c", "", "YAML config file (env "+config.EnvConfig+")")
	f.BoolVar(&fv.ihex, "ihex", false, "decode the input as Intel HEX")
	f.Uint8Var(&fv.fill, "fill", 0xFF, "gap fill byte for Intel HEX images")
	f.StringVar(&fv.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.StringVar(&fv.logFile, "log-file", "", "log file path (default stderr)")
	// Long-only, so -h and -v stay unknown shorthands.
	f.Bool("help", false, "print help to stderr and exit")
	f.Bool("version", false, "print the version to stderr and exit")
	f.SortFlags = false

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		// pflag answers an undefined -h with ErrHelp, which cobra would
		// turn into a successful help run.
		if errors.Is(err, pflag.ErrHelp) {
			err = errors.New("unknown shorthand flag: 'h'")
		}
		return &usageError{err: err}
	})

	return cmd
}

// Execute runs the root command with the process arguments and exits with
// status 1 on errors and 2 on flag usage errors.
// This is called by main.main().
func Execute() {
	if code := execute(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// execute is the single top-level error handler. It returns the exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitFailure
}

// runConvert resolves the configuration, reads the input and renders it to
// stdout.
//
// Returns:
//   - error: An error if the configuration is invalid or the input cannot be read.
func runConvert(cmd *cobra.Command, fv *flagValues, path string, stdout io.Writer) error {
	cfg, err := resolveConfig(cmd.Flags(), fv)
	if err != nil {
		return err
	}

	if cfg.Logging.Path != "" {
		if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
	} else {
		log.InitWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	}
	slog.Debug("resolved config", "type", cfg.Type, "size_type", cfg.SizeType, "format", cfg.Input.Format)

	var data []byte
	switch cfg.Input.Format {
	case config.FormatIHex:
		data, err = blob.ReadIntelHex(path, *cfg.Input.Fill)
	default:
		data, err = blob.ReadFile(path)
	}
	if err != nil {
		return err
	}

	opts := cfg.Options(path)
	slog.Debug("read blob", "path", path, "format", cfg.Input.Format, "size", len(data), "basename", opts.Basename)

	return generator.Render(stdout, data, opts)
}

// resolveConfig layers the config file, the environment and the flags that
// were set explicitly, in that order, on top of the defaults.
func resolveConfig(flags *pflag.FlagSet, fv *flagValues) (*config.Config, error) {
	cfg := &config.Config{}
	if path := config.ConfigPath(fv.configPath); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	config.ApplyEnv(cfg)
	config.ApplyDefaults(cfg)

	if flags.Changed("type") {
		cfg.Type = fv.typ
	}
	if flags.Changed("size-type") {
		cfg.SizeType = fv.sizeType
	}
	if flags.Changed("prefix") {
		cfg.Prefix = &fv.prefix
	}
	if flags.Changed("basename") {
		cfg.Basename = &fv.basename
	}
	if flags.Changed("ihex") {
		cfg.Input.Format = config.FormatRaw
		if fv.ihex {
			cfg.Input.Format = config.FormatIHex
		}
	}
	if flags.Changed("fill") {
		cfg.Input.Fill = &fv.fill
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = fv.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.Path = fv.logFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
