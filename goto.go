package main

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// gotoBar asks for a line number. A leading ':' is accepted.
type gotoBar struct {
	baseView
	c       *codepad
	keyword []rune
	err     string
}

func newGotoBar(c *codepad) *gotoBar {
	g := &gotoBar{c: c}
	g.height = 1
	g.fixedSize = true
	return g
}

func (g *gotoBar) OnFocus() {
	g.baseView.OnFocus()
	g.ShowCursor()
}

func (g *gotoBar) ShowCursor() {
	screen.ShowCursor(g.x+len("go to line:")+len(g.keyword), g.y)
}

func (g *gotoBar) Draw() {
	style := tcell.StyleDefault.Background(tcell.ColorLightGray).Foreground(tcell.ColorBlack)
	g.fill(style)
	end := g.drawText(g.x, g.y, "go to line:"+string(g.keyword), style)
	if g.err != "" {
		end = g.drawText(end+1, g.y, g.err, style.Foreground(tcell.ColorDarkRed))
	}
	g.drawRight(g.y, "<enter> go, <esc> cancel", end, style)
	if g.focused {
		g.ShowCursor()
	}
}

func (g *gotoBar) HandleKey(k *tcell.EventKey) {
	switch k.Key() {
	case tcell.KeyRune:
		g.keyword = append(g.keyword, k.Rune())
		g.err = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.keyword) == 0 {
			return
		}
		g.keyword = g.keyword[:len(g.keyword)-1]
		g.err = ""
	case tcell.KeyEnter:
		if err := g.gotoLine(); err != nil {
			logger.Warn("goto", zap.Error(err))
			g.err = err.Error()
			break
		}
		g.c.resetStatus()
		return
	case tcell.KeyESC:
		g.c.resetStatus()
		return
	}
	g.Draw()
}

func (g *gotoBar) gotoLine() error {
	s := strings.TrimPrefix(strings.TrimSpace(string(g.keyword)), ":")
	line, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	return g.c.editor.GotoLine(line)
}
