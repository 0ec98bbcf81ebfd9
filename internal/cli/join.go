package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	domainerrors "github.com/leengari/rabbet/internal/domain/errors"
	"github.com/leengari/rabbet/internal/engine"
	"github.com/leengari/rabbet/internal/query/operations/join"
	"github.com/leengari/rabbet/internal/validation"
)

type joinOptions struct {
	names    []string
	on       []string
	joinType *enumFlag
}

func (a *app) joinCommand() *cobra.Command {
	opts := &joinOptions{
		joinType: newEnumFlag("inner", "type", join.JoinTypeNames(), func(s string) error {
			_, err := join.ParseJoinType(s)
			return err
		}),
	}

	cmd := &cobra.Command{
		Use:   "join <table> <table> [table...]",
		Short: "Join two or more tables on shared columns",
		Long: `Join tables left to right on the columns given with --on.

A qualified spec (T1.id=T2.user_id) binds one column to each named table.
A bare column name (id) is used by every table, ahead of that table's
qualified columns.`,
		Example: `  rabbet join users.csv orders.csv --on T1.id=T2.user_id
  rabbet join users.csv orders.csv --as u,o --on u.id=o.user_id --type left
  rabbet join a.csv b.csv --on region,T1.id=T2.a_id
  cat orders.csv | rabbet join users.csv - --on T1.id=T2.user_id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runJoin(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.names, "as", nil, "table names, comma separated (default T1..TN)")
	flags.StringSliceVar(&opts.on, "on", nil, "join columns, comma separated")
	opts.joinType.register(cmd, flags, "type", "join type")
	flags.String("delimiter", ",", "delimiter for input files")

	return cmd
}

func (a *app) runJoin(cmd *cobra.Command, tables []string, opts *joinOptions) error {
	if err := validation.ValidateJoinArgs(tables, opts.names, opts.on); err != nil {
		return err
	}

	joinType, err := join.ParseJoinType(opts.joinType.String())
	if err != nil {
		return domainerrors.NewValidation("%v", err)
	}

	delimiter, err := a.delimiter(cmd)
	if err != nil {
		return err
	}

	result, err := a.newEngine(delimiter).RunJoin(engine.JoinRequest{
		Paths: tables,
		Names: opts.names,
		On:    opts.on,
		Type:  joinType,
	})
	if err != nil {
		return err
	}

	a.logger.Info("join completed",
		slog.String("type", joinType.Name()),
		slog.Int("tables", len(tables)),
		slog.Int("rows", result.Height()),
	)

	return a.write(result)
}
