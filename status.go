package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// statusView holds the bar at the bottom of the screen, which the find,
// goto and save prompts take over in turn.
type statusView struct {
	View
}

func (s *statusView) Set(v View) {
	x, y, w, h := s.Pos()
	v.SetPos(x, y, w, h)
	s.View = v
}

type statusBar struct {
	baseView
	c *codepad
}

func newStatusBar(c *codepad) *statusBar {
	b := &statusBar{c: c}
	b.height = 1
	b.fixedSize = true
	return b
}

func (b *statusBar) Draw() {
	style := tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack)
	b.fill(style)

	s := fmt.Sprintf("line %d, column %d", b.c.editor.Line(), b.c.editor.Column())
	end := b.drawText(b.x, b.y, s, style)
	// do not cover the line number
	b.drawRight(b.y, "<ctrl+s> save, <ctrl+f> find, <ctrl+g> goto, <ctrl+q> quit", end, style)
}

// OnFocus hands the focus back to the editor, the bar takes no input.
func (b *statusBar) OnFocus() {
	b.c.Focus(b.c.editor)
}
