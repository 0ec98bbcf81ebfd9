package cli

import (
	"github.com/spf13/cobra"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/validation"
)

const defaultRowCount = 5

func (a *app) catCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <table>",
		Short: "Print a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd, args, func(t *schema.Table) *schema.Table { return t })
		},
	}
	cmd.Flags().String("delimiter", ",", "delimiter for input files")
	return cmd
}

func (a *app) headCommand() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "head <table>",
		Short: "Print the first rows of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateRowCount(n); err != nil {
				return err
			}
			return a.show(cmd, args, func(t *schema.Table) *schema.Table { return t.Head(n) })
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", defaultRowCount, "number of rows to display from the beginning")
	cmd.Flags().String("delimiter", ",", "delimiter for input files")
	return cmd
}

func (a *app) tailCommand() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "tail <table>",
		Short: "Print the last rows of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateRowCount(n); err != nil {
				return err
			}
			return a.show(cmd, args, func(t *schema.Table) *schema.Table { return t.Tail(n) })
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", defaultRowCount, "number of rows to display from the end")
	cmd.Flags().String("delimiter", ",", "delimiter for input files")
	return cmd
}

// show reads a single table, applies slice and writes the result
func (a *app) show(cmd *cobra.Command, args []string, slice func(*schema.Table) *schema.Table) error {
	if err := validation.ValidateSingleTable(args); err != nil {
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

	return a.write(slice(table))
}
