package main

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// A multiplier to be used on the y position of mouse wheel scroll events
const scrollSensitivity = 0.125

// paster is a view that takes bracketed paste.
type paster interface {
	Paste(start bool)
}

// Application framework
type App struct {
	body View

	focus  View
	done   chan struct{}
	mouseX int
	mouseY int
	keymap map[tcell.Key]func(*tcell.EventKey)
}

func NewApp() *App {
	return &App{
		done:   make(chan struct{}),
		keymap: make(map[tcell.Key]func(*tcell.EventKey)),
	}
}

func (a *App) SetBody(v View) {
	a.body = v
}

func (a *App) Redraw() {
	a.body.Draw()
}

// Close stops Run. It is safe to call more than once.
func (a *App) Close() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

func (a *App) Closed() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}

func (a *App) Focus(v View) {
	if v == nil || a.focus == v {
		return
	}

	if a.focus != nil {
		a.focus.OnBlur()
	}
	a.focus = v
	v.OnFocus()
}

func (a *App) GetHover() View {
	return getHover(a.body, a.mouseX, a.mouseY)
}

// Handle registers f for key before any view sees it.
func (a *App) Handle(key tcell.Key, f func(*tcell.EventKey)) {
	a.keymap[key] = f
}

// HandleEvent dispatches one event. It is split from Run so the event
// path can be driven without polling a screen.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		width, height := screen.Size()
		a.body.SetPos(0, 0, width, height)
		a.body.Draw()
		screen.Sync()
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.mouseX, a.mouseY = x, y
		view := a.GetHover()
		if view == nil {
			return
		}
		switch ev.Buttons() {
		case tcell.Button1:
			a.Focus(view)
			view.OnClick(x, y)
		case tcell.WheelUp:
			view.ScrollUp(max(1, int(float32(y)*scrollSensitivity)))
		case tcell.WheelDown:
			view.ScrollDown(max(1, int(float32(y)*scrollSensitivity)))
		}
	case *tcell.EventPaste:
		if p, ok := a.focus.(paster); ok {
			p.Paste(ev.Start())
		}
	case *tcell.EventKey:
		logger.Debug("key", zap.String("name", ev.Name()))
		if f, ok := a.keymap[ev.Key()]; ok {
			f(ev)
		} else if a.focus != nil {
			a.focus.HandleKey(ev)
		}
	}
}

// Run will not return until Close
func (a *App) Run() {
	a.body.Draw()
	screen.Show()
	for !a.Closed() {
		ev := screen.PollEvent()
		if ev == nil {
			// screen finalized
			return
		}
		a.HandleEvent(ev)
		screen.Show()
	}
}
