package main

import "github.com/gdamore/tcell/v2"

type titleBar struct {
	baseView
	c *codepad
}

func newTitleBar(c *codepad) *titleBar {
	t := &titleBar{c: c}
	t.height = 1
	t.fixedSize = true
	return t
}

func (t *titleBar) Draw() {
	style := tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack)
	t.fill(style)

	title := t.c.filename
	if title == "" {
		title = "untitled"
	}
	if t.c.editor.Dirty() {
		title += " *"
	}
	end := t.drawText(t.x, t.y, title, style)
	t.drawRight(t.y, t.c.sess.Document().Lexer().Name(), end, style.Foreground(tcell.ColorDarkBlue))
}

// OnFocus hands the focus back to the editor.
func (t *titleBar) OnFocus() {
	t.c.Focus(t.c.editor)
}
