package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

type findBar struct {
	baseView
	c       *codepad
	keyword []rune
}

func newFindBar(c *codepad) *findBar {
	f := &findBar{c: c}
	f.height = 1
	f.fixedSize = true
	return f
}

func (f *findBar) OnFocus() {
	f.baseView.OnFocus()
	f.ShowCursor()
}

func (f *findBar) ShowCursor() {
	screen.ShowCursor(f.x+len("find:")+len(f.keyword), f.y)
}

func (f *findBar) Draw() {
	style := tcell.StyleDefault.Background(tcell.ColorLightYellow).Foreground(tcell.ColorBlack)
	f.fill(style)

	end := f.drawText(f.x, f.y, "find:"+string(f.keyword), style)
	e := f.c.editor
	if len(f.keyword) > 0 {
		index := "no results"
		if len(e.findMatch) > 0 {
			index = fmt.Sprintf("%d/%d", e.findIndex+1, len(e.findMatch))
		}
		// align center
		if x := f.x + (f.width-len(index))/2; x > end {
			f.drawText(x, f.y, index, style)
			end = x + len(index)
		}
	}
	f.drawRight(f.y, "<down> next, <up> previous, <esc> cancel", end, style)
	if f.focused {
		f.ShowCursor()
	}
}

func (f *findBar) HandleKey(k *tcell.EventKey) {
	e := f.c.editor
	switch k.Key() {
	case tcell.KeyRune:
		f.keyword = append(f.keyword, k.Rune())
		e.Find(string(f.keyword))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(f.keyword) == 0 {
			return
		}
		f.keyword = f.keyword[:len(f.keyword)-1]
		e.Find(string(f.keyword))
	case tcell.KeyEnter, tcell.KeyDown:
		e.FindNext()
	case tcell.KeyUp:
		e.FindPrev()
	case tcell.KeyESC:
		e.ClearFind()
		f.c.resetStatus()
		return
	}
	f.Draw()
}
