// Package theme maps token kinds to colors.
package theme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/chenen3/codepad/internal/lexer"
)

var ErrUnknownTheme = errors.New("unknown theme")

type Theme struct {
	Name       string
	Background string // "#rrggbb"
	Foreground string
	Bracket    string // background of matched brackets
	Colors     map[lexer.Kind]string
	Italic     map[lexer.Kind]bool
}

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Background: "#ffffff",
		Foreground: "#000000",
		Bracket:    "#d0e0ff",
		Colors: map[lexer.Kind]string{
			lexer.Keyword:  "#0000ff",
			lexer.Type:     "#267f99",
			lexer.Atom:     "#811f3f",
			lexer.Number:   "#098658",
			lexer.String:   "#008000",
			lexer.Comment:  "#808080",
			lexer.Operator: "#a31515",
			lexer.Error:    "#ff0000",
		},
		Italic: map[lexer.Kind]bool{lexer.Comment: true},
	},
	"dark": {
		Name:       "dark",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Bracket:    "#3a3d41",
		Colors: map[lexer.Kind]string{
			lexer.Keyword:  "#569cd6",
			lexer.Type:     "#4ec9b0",
			lexer.Atom:     "#569cd6",
			lexer.Number:   "#b5cea8",
			lexer.String:   "#ce9178",
			lexer.Comment:  "#6a9955",
			lexer.Operator: "#d4d4d4",
			lexer.Error:    "#f44747",
		},
		Italic: map[lexer.Kind]bool{lexer.Comment: true},
	},
}

// Lookup returns the built-in theme called name.
func Lookup(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("theme %q: %w", name, ErrUnknownTheme)
	}
	return t, nil
}

func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// color returns the foreground color of kind, falling back to the
// theme's foreground.
func (t Theme) color(kind lexer.Kind) string {
	if c, ok := t.Colors[kind]; ok {
		return c
	}
	return t.Foreground
}

// Default is the style of text outside any token.
func (t Theme) Default() tcell.Style {
	return tcell.StyleDefault.Background(tcell.GetColor(t.Background)).Foreground(tcell.GetColor(t.Foreground))
}

// Style returns the terminal cell style for kind.
func (t Theme) Style(kind lexer.Kind) tcell.Style {
	s := t.Default().Foreground(tcell.GetColor(t.color(kind)))
	if t.Italic[kind] {
		s = s.Italic(true)
	}
	if kind == lexer.Error {
		s = s.Underline(true)
	}
	return s
}

// MatchStyle decorates a matched bracket on top of its token style.
func (t Theme) MatchStyle(s tcell.Style) tcell.Style {
	return s.Background(tcell.GetColor(t.Bracket)).Bold(true)
}

// ANSI returns the style used when printing kind to a terminal.
func (t Theme) ANSI(kind lexer.Kind) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(t.color(kind))).TabWidth(lipgloss.NoTabConversion)
	if t.Italic[kind] {
		s = s.Italic(true)
	}
	if kind == lexer.Error {
		s = s.Underline(true)
	}
	return s
}
