package main

import (
	"errors"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

var errNoFilename = errors.New("empty filename")

// saveBar asks where to save an untitled buffer, or whether to save
// before quitting.
type saveBar struct {
	baseView
	c        *codepad
	filename []rune
	quit     bool
}

func newSaveBar(c *codepad, quit bool) *saveBar {
	s := &saveBar{c: c, quit: quit}
	s.height = 1
	s.fixedSize = true
	return s
}

func (s *saveBar) prompt() string {
	prompt := "save changes? "
	if s.c.filename == "" {
		prompt = "save as: "
	}
	if s.quit {
		prompt = "quit and " + prompt
	}
	return prompt
}

func (s *saveBar) OnFocus() {
	s.baseView.OnFocus()
	s.ShowCursor()
}

func (s *saveBar) ShowCursor() {
	screen.ShowCursor(s.x+len(s.prompt())+len(s.filename), s.y)
}

func (s *saveBar) Draw() {
	style := tcell.StyleDefault.Background(tcell.ColorLightYellow).Foreground(tcell.ColorBlack)
	s.fill(style)
	end := s.drawText(s.x, s.y, s.prompt()+string(s.filename), style)
	keymap := "<enter> save, <esc> cancel"
	if s.quit {
		keymap += ", <ctrl+q> discard"
	}
	s.drawRight(s.y, keymap, end, style)
	if s.focused {
		s.ShowCursor()
	}
}

func (s *saveBar) HandleKey(k *tcell.EventKey) {
	switch k.Key() {
	case tcell.KeyRune:
		if s.c.filename != "" {
			return
		}
		s.filename = append(s.filename, k.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.c.filename != "" || len(s.filename) == 0 {
			return
		}
		s.filename = s.filename[:len(s.filename)-1]
	case tcell.KeyEnter:
		filename := s.c.filename
		if filename == "" {
			filename = string(s.filename)
		}
		if err := s.c.save(filename); err != nil {
			logger.Error("save", zap.String("file", filename), zap.Error(err))
			return
		}
		if s.quit {
			s.c.Close()
			return
		}
		s.c.resetStatus()
		return
	case tcell.KeyESC:
		s.c.resetStatus()
		return
	}
	s.Draw()
}

func writeFile(name string, e *editor) error {
	if name == "" {
		return errNoFilename
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := e.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}
