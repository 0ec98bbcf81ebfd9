package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/engine"
)

const (
	prompt             = "rabbet> "
	continuationPrompt = "   ...> "
)

// Renderer writes a result table to the shell's output
type Renderer func(w io.Writer, t *schema.Table) error

// LineReader is the subset of *readline.Instance the shell uses
type LineReader interface {
	Readline() (string, error)
	SetPrompt(string)
	Close() error
}

// Shell is an interactive SQL prompt over the engine's catalog
type Shell struct {
	eng    *engine.Engine
	out    io.Writer
	render Renderer
}

func NewShell(eng *engine.Engine, out io.Writer, render Renderer) *Shell {
	return &Shell{eng: eng, out: out, render: render}
}

// Start opens a readline prompt on the terminal and runs until \q, exit or EOF
func Start(eng *engine.Engine, out io.Writer, render Renderer, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}

	fmt.Fprintln(out, "rabbet interactive shell")
	fmt.Fprintln(out, "End statements with ';'. Type '\\help' for commands, '\\q' to quit.")

	return NewShell(eng, out, render).Run(rl)
}

// Run reads statements until the reader is exhausted or the user quits
func (s *Shell) Run(rl LineReader) error {
	defer rl.Close()

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(continuationPrompt)
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if isCommand(trimmed) {
				if s.command(trimmed) {
					return nil
				}
				continue
			}
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			continue
		}
		s.execute(buf.String())
		buf.Reset()
	}
}

func isCommand(line string) bool {
	return strings.HasPrefix(line, "\\") || line == "exit" || line == "quit"
}

// command runs a shell command and reports whether the shell should exit
func (s *Shell) command(line string) bool {
	switch {
	case line == "\\q" || line == "exit" || line == "quit":
		return true
	case line == "\\tables":
		s.listTables()
	case line == "\\help" || line == "\\?":
		fmt.Fprintln(s.out, `Commands:
  \tables          list tables and their columns
  \explain <sql>   show the plan for a statement
  \q, exit         quit`)
	case strings.HasPrefix(line, "\\explain"):
		sql := strings.TrimSpace(strings.TrimPrefix(line, "\\explain"))
		tree, err := s.eng.Explain(sql)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprint(s.out, tree)
	case strings.HasPrefix(line, "\\"):
		fmt.Fprintf(s.out, "Unknown command: %s\n", line)
	}
	return false
}

func (s *Shell) listTables() {
	tables := s.eng.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(s.out, "No tables loaded")
		return
	}
	for _, t := range tables {
		cols := make([]string, t.Width())
		for i, c := range t.Schema.Columns {
			cols[i] = fmt.Sprintf("%s %s", c.Name, c.Type)
		}
		fmt.Fprintf(s.out, "%s (%d rows): %s\n", t.Label, t.Height(), strings.Join(cols, ", "))
	}
}

func (s *Shell) execute(sql string) {
	result, err := s.eng.Execute(sql)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.render(s.out, result.Table); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, result.Message)
}

// statementComplete reports whether sql ends with ';' outside quotes
func statementComplete(sql string) bool {
	var quote rune
	last := rune(0)
	for _, r := range sql {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		}
		if quote == 0 && r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			last = r
		}
	}
	return quote == 0 && last == ';'
}
