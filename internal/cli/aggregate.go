package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leengari/rabbet/internal/query/operations/aggregate"
	"github.com/leengari/rabbet/internal/validation"
)

type aggregateOptions struct {
	by   []string
	with []string
}

func (a *app) aggregateCommand() *cobra.Command {
	opts := &aggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate <table>",
		Short: "Aggregate columns, optionally grouped",
		Example: `  rabbet aggregate sales.csv --by region --with amount=sum,_=count
  rabbet aggregate sales.csv --with price=min,price=max,price=mean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAggregate(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.by, "by", nil, "columns to group by, comma separated")
	flags.StringSliceVar(&opts.with, "with", nil, "column=operation pairs, comma separated ('_' counts rows)")
	flags.String("delimiter", ",", "delimiter for input files")

	return cmd
}

func (a *app) runAggregate(cmd *cobra.Command, args []string, opts *aggregateOptions) error {
	if err := validation.ValidateSingleTable(args); err != nil {
		return err
	}

	specs, err := aggregate.ParseSpecs(opts.with)
	if err != nil {
		return err
	}

	delimiter, err := a.delimiter(cmd)
	if err != nil {
		return err
	}

	table, err := a.newEngine(delimiter).Read(args[0])
	if err != nil {
		return err
	}

	result, err := aggregate.Aggregate(table, opts.by, specs)
	if err != nil {
		return fmt.Errorf("failed to perform aggregation on %s: %w", args[0], err)
	}

	a.logger.Info("aggregation completed",
		slog.Int("groups", result.Height()),
		slog.Int("specs", len(specs)),
	)

	return a.write(result)
}
