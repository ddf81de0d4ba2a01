package main

import (
	"github.com/gdamore/tcell/v2"
)

type View interface {
	SetPos(x, y, width, height int)
	Pos() (x1, y1, width, height int)
	Draw()
	FixedSize() bool
	// HandleKey is used to operate inside a view.
	// Keys that work across views are registered with [App.Handle].
	HandleKey(*tcell.EventKey)
	OnFocus()
	OnBlur()
	OnClick(x, y int)
	ScrollUp(delta int)
	ScrollDown(delta int)
}

type baseView struct {
	x, y          int
	width, height int
	fixedSize     bool
	focused       bool
}

func (v *baseView) SetPos(x, y, width, height int) {
	v.x = x
	v.y = y
	v.width = width
	v.height = height
}

func (v *baseView) Pos() (int, int, int, int) { return v.x, v.y, v.width, v.height }
func (v *baseView) FixedSize() bool           { return v.fixedSize }
func (v *baseView) OnFocus()                  { v.focused = true }
func (v *baseView) OnBlur()                   { v.focused = false }
func (v *baseView) Focused() bool             { return v.focused }
func (v *baseView) OnClick(int, int)          {}
func (v *baseView) ScrollUp(int)              {}
func (v *baseView) ScrollDown(int)            {}

func (v *baseView) HandleKey(*tcell.EventKey) {}

// fill paints the area of v with blanks in style.
func (v *baseView) fill(style tcell.Style) {
	for y := v.y; y < v.y+v.height; y++ {
		for x := v.x; x < v.x+v.width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes s from x on row y, stopping at the right edge of v.
// It returns the column after the last rune written.
func (v *baseView) drawText(x, y int, s string, style tcell.Style) int {
	for _, c := range s {
		if x >= v.x+v.width {
			break
		}
		screen.SetContent(x, y, c, nil, style)
		x++
	}
	return x
}

// drawRight writes s aligned to the right edge of v, keeping clear of
// the column limit.
func (v *baseView) drawRight(y int, s string, limit int, style tcell.Style) {
	n := len([]rune(s))
	x := v.x + v.width - 1 - n
	if x <= limit {
		return
	}
	v.drawText(x, y, s, style)
}

type vstack struct {
	baseView
	Views []View
}

func VStack(v ...View) *vstack {
	return &vstack{Views: v}
}

func (v *vstack) OnClick(x, y int) {
	for _, view := range v.Views {
		if inView(view, x, y) {
			view.OnClick(x, y)
			return
		}
	}
}

func (v *vstack) Draw() {
	if len(v.Views) == 0 {
		v.fill(tcell.StyleDefault)
		return
	}

	var fixed int
	var remainH = v.height
	for _, view := range v.Views {
		_, _, _, h := view.Pos()
		if view.FixedSize() {
			fixed++
			remainH -= h
		}
	}
	var avgH int
	if fixed != len(v.Views) {
		avgH = remainH / (len(v.Views) - fixed)
	}

	y := v.y
	for _, view := range v.Views {
		_, _, _, h := view.Pos()
		if view.FixedSize() {
			view.SetPos(v.x, y, v.width, h)
			y += h
		} else {
			view.SetPos(v.x, y, v.width, avgH)
			y += avgH
		}
		view.Draw()
	}
}

func inView(v View, x, y int) bool {
	x1, y1, w, h := v.Pos()
	return x1 <= x && x < x1+w && y1 <= y && y < y1+h
}

// getHover returns the innermost view under x, y.
func getHover(view View, x, y int) View {
	if !inView(view, x, y) {
		return nil
	}
	if s, ok := view.(*vstack); ok {
		for _, v := range s.Views {
			if hover := getHover(v, x, y); hover != nil {
				return hover
			}
		}
	}
	if s, ok := view.(*statusView); ok && s.View != nil {
		return getHover(s.View, x, y)
	}
	return view
}
