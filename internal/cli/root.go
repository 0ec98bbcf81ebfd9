package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/rabbet/internal/config"
	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/engine"
	"github.com/leengari/rabbet/internal/logging"
	"github.com/leengari/rabbet/internal/output"
	"github.com/leengari/rabbet/internal/storage"
	"github.com/leengari/rabbet/internal/storage/writer"
	"github.com/leengari/rabbet/internal/validation"
)

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// Streams are the process streams a command reads from and writes to
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// app carries the state shared by every subcommand of one invocation
type app struct {
	streams Streams

	configPath string
	format     *enumFlag
	logLevel   string
	outputPath string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
}

// Execute runs the command line and returns the process exit status.
// Errors are printed once to the error stream as "error: <message>".
func Execute(args []string, streams Streams) int {
	a := &app{streams: streams, closeLog: func() {}}
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.Execute()
	a.closeLog()
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(streams.Err, "error: %v\n", err)
	if domainerrors.IsValidation(err) {
		return ExitValidation
	}
	return ExitFailure
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rabbet",
		Short:         "User-friendly CLI tool for joining tables",
		Long:          "rabbet joins, aggregates and queries delimited text tables.\nA table argument of '-' reads standard input.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetIn(a.streams.In)
	root.SetOut(a.streams.Out)
	root.SetErr(a.streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return domainerrors.NewValidation("%v", err)
	})

	flags := root.PersistentFlags()
	a.format = newEnumFlag("auto", "format", output.FormatNames(), func(s string) error {
		_, err := output.ParseFormat(s)
		return err
	})
	a.format.register(root, flags, "format", "output format")
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rabbet/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVarP(&a.outputPath, "output", "o", "", "write the result as CSV to this file instead of stdout")

	root.AddCommand(
		a.joinCommand(),
		a.aggregateCommand(),
		a.queryCommand(),
		a.catCommand(),
		a.headCommand(),
		a.tailCommand(),
	)

	return root
}

// setup loads configuration, applies flag overrides and installs the logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = a.format.String()
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	if _, err := output.ParseFormat(cfg.Format); err != nil {
		return domainerrors.NewValidation("%v", err)
	}

	logger, closeFn, err := logging.SetupLogger(cfg.Log, a.streams.Err)
	if err != nil {
		return domainerrors.NewValidation("%v", err)
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeFn

	logger.Debug("configuration loaded",
		slog.String("command", cmd.Name()),
		slog.String("format", cfg.Format),
		slog.String("delimiter", cfg.Delimiter),
	)
	return nil
}

// delimiter resolves --delimiter against the configured default
func (a *app) delimiter(cmd *cobra.Command) (rune, error) {
	value := a.cfg.Delimiter
	if f := cmd.Flags().Lookup("delimiter"); f != nil && f.Changed {
		value = f.Value.String()
	}
	return validation.ValidateDelimiter(value)
}

func (a *app) newEngine(delimiter rune) *engine.Engine {
	eng := engine.New(
		storage.NewCSVReader(delimiter, a.streams.In),
		engine.WithLegacyProvenance(a.cfg.Join.LegacyProvenance),
	)
	eng.AddObserver(engine.NewLoggingObserver(a.logger))
	return eng
}

// write renders t to the output stream in the configured format, or saves it with --output
func (a *app) write(t *schema.Table) error {
	if a.outputPath != "" {
		return writer.SaveCSV(a.outputPath, t, ',')
	}
	return a.render(a.streams.Out, t)
}

func (a *app) render(w io.Writer, t *schema.Table) error {
	format, err := output.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	fd, isFile := a.outputFd()
	isTerminal := isFile && output.IsTerminal(fd)
	useTable := format.UseTable(isTerminal, a.cfg.Table.Forced())

	settings := output.DefaultSettings()
	if isTerminal {
		settings = output.DetectSettings(fd)
	}
	settings = settings.Override(output.Settings{
		Width:   a.cfg.Table.Width,
		MaxRows: a.cfg.Table.MaxRows,
		StrLen:  a.cfg.Table.StrLen,
		MaxCols: a.cfg.Table.MaxCols,
	})

	if err := output.Write(w, t, useTable, settings); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	return nil
}

func (a *app) outputFd() (int, bool) {
	f, ok := a.streams.Out.(*os.File)
	if !ok {
		return 0, false
	}
	return int(f.Fd()), true
}
