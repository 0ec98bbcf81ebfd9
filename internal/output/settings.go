package output

import (
	"golang.org/x/term"
)

const (
	minWidth = 80
	maxWidth = 300

	minRows = 10
	maxRows = 1000

	// rows kept free for the prompt and the table border
	reservedRows = 5

	fallbackWidth = 120
	fallbackRows  = 25

	DefaultStrLen  = 16
	DefaultMaxCols = 100
)

// Settings controls table rendering.
// It is computed once per invocation and passed to Render; nothing is read from the environment later.
type Settings struct {
	Width   int // maximum table width in characters
	MaxRows int // rows shown before eliding the middle
	StrLen  int // cells longer than this are truncated
	MaxCols int // columns shown before eliding the middle
}

// DefaultSettings returns the settings used when no terminal size is available
func DefaultSettings() Settings {
	return Settings{
		Width:   fallbackWidth,
		MaxRows: fallbackRows,
		StrLen:  DefaultStrLen,
		MaxCols: DefaultMaxCols,
	}
}

// SettingsForSize derives settings from a terminal size in characters.
// A non-positive size selects the fallback.
func SettingsForSize(cols, rows int) Settings {
	s := DefaultSettings()
	if cols <= 0 || rows <= 0 {
		return s
	}
	s.Width = clamp(cols, minWidth, maxWidth)
	s.MaxRows = clamp(rows-reservedRows, minRows, maxRows)
	return s
}

// DetectSettings sizes the table for the terminal behind fd
func DetectSettings(fd int) Settings {
	if !term.IsTerminal(fd) {
		return DefaultSettings()
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return DefaultSettings()
	}
	return SettingsForSize(cols, rows)
}

// IsTerminal reports whether fd is a terminal
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Override replaces every positive field of o in s
func (s Settings) Override(o Settings) Settings {
	if o.Width > 0 {
		s.Width = o.Width
	}
	if o.MaxRows > 0 {
		s.MaxRows = o.MaxRows
	}
	if o.StrLen > 0 {
		s.StrLen = o.StrLen
	}
	if o.MaxCols > 0 {
		s.MaxCols = o.MaxCols
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
