package theme

import (
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/chenen3/codepad/internal/lexer"
)

func TestLookup(t *testing.T) {
	if _, err := Lookup("solarized"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Lookup(solarized) error = %v, want ErrUnknownTheme", err)
	}
	if got, want := Names(), []string{"dark", "light"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStyle(t *testing.T) {
	light, err := Lookup("light")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		kind lexer.Kind
		fg   tcell.Color
	}{
		{lexer.Keyword, tcell.GetColor("#0000ff")},
		{lexer.String, tcell.GetColor("#008000")},
		{lexer.Comment, tcell.GetColor("#808080")},
		{lexer.Identifier, tcell.GetColor("#000000")},
	}
	for _, tt := range tests {
		fg, bg, _ := light.Style(tt.kind).Decompose()
		if fg != tt.fg {
			t.Errorf("%s foreground = %v, want %v", tt.kind, fg, tt.fg)
		}
		if bg != tcell.GetColor("#ffffff") {
			t.Errorf("%s background = %v, want white", tt.kind, bg)
		}
	}

	_, _, attr := light.Style(lexer.Comment).Decompose()
	if attr&tcell.AttrItalic == 0 {
		t.Error("comments are not italic")
	}
	_, _, attr = light.MatchStyle(light.Style(lexer.Delimiter)).Decompose()
	if attr&tcell.AttrBold == 0 {
		t.Error("matched bracket is not bold")
	}
}

func TestANSI(t *testing.T) {
	dark, _ := Lookup("dark")
	s := dark.ANSI(lexer.Keyword)
	if got := s.GetForeground(); got != lipgloss.TerminalColor(lipgloss.Color("#569cd6")) {
		t.Errorf("keyword foreground = %v", got)
	}
	if !dark.ANSI(lexer.Comment).GetItalic() {
		t.Error("comments are not italic")
	}
}
