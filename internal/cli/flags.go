package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumFlag is a string flag restricted to the names its parser accepts
type enumFlag struct {
	value string
	names []string
	typ   string
	parse func(string) error
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(def, typ string, names []string, parse func(string) error) *enumFlag {
	return &enumFlag{value: def, names: names, typ: typ, parse: parse}
}

func (f *enumFlag) String() string { return f.value }

func (f *enumFlag) Set(s string) error {
	if err := f.parse(s); err != nil {
		return err
	}
	f.value = strings.ToLower(strings.TrimSpace(s))
	return nil
}

func (f *enumFlag) Type() string { return f.typ }

// register adds the flag to flags and completes its names in the shell
func (f *enumFlag) register(cmd *cobra.Command, flags *pflag.FlagSet, name, usage string) {
	flags.Var(f, name, usage+" ("+strings.Join(f.names, ", ")+")")
	_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(f.names, cobra.ShellCompDirectiveNoFileComp))
}
