package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/repl"
	"github.com/leengari/rabbet/internal/storage"
	"github.com/leengari/rabbet/internal/validation"
)

type queryOptions struct {
	names       []string
	interactive bool
	explain     bool
}

func (a *app) queryCommand() *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <table...> -- <sql>",
		Short: "Run a SQL query over tables",
		Long: `Register tables under their names (--as, or T1..TN) and run a SELECT over them.

The query follows '--'. With --interactive, a shell reads statements instead.`,
		Example: `  rabbet query users.csv orders.csv --as u,o -- "SELECT u.name, o.amount FROM u JOIN o ON u.id = o.user_id"
  rabbet query sales.csv -- "SELECT * FROM T1 WHERE amount > 100 ORDER BY amount DESC LIMIT 10"
  rabbet query users.csv orders.csv --as u,o --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.names, "as", nil, "table names, comma separated (default T1..TN)")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "start an interactive shell")
	flags.BoolVar(&opts.explain, "explain", false, "print the query plan instead of running it")
	flags.String("delimiter", ",", "delimiter for input files")

	return cmd
}

// splitQuery separates table arguments from the SQL that follows "--"
func splitQuery(cmd *cobra.Command, args []string) ([]string, string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, ""
	}
	return args[:dash], strings.TrimSpace(strings.Join(args[dash:], " "))
}

func (a *app) runQuery(cmd *cobra.Command, args []string, opts *queryOptions) error {
	tables, sql := splitQuery(cmd, args)
	if err := validation.ValidateQueryArgs(tables, opts.names, sql, opts.interactive); err != nil {
		return err
	}
	if opts.interactive && slices.Contains(tables, storage.StdinPath) {
		return domainerrors.NewValidation("Standard input cannot be used as a table in interactive mode")
	}

	delimiter, err := a.delimiter(cmd)
	if err != nil {
		return err
	}

	eng := a.newEngine(delimiter)
	if err := eng.Load(tables, opts.names); err != nil {
		return err
	}

	if opts.interactive {
		return repl.Start(eng, a.streams.Out, a.render, historyFile())
	}

	if opts.explain {
		tree, err := eng.Explain(sql)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.streams.Out, tree)
		return err
	}

	result, err := eng.Execute(sql)
	if err != nil {
		return err
	}
	a.logger.Info(result.Message, slog.Int("rows", result.Table.Height()))

	return a.write(result.Table)
}

// historyFile returns the shell history path, or "" when no cache directory is usable
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "rabbet")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
