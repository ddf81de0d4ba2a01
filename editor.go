package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/chenen3/codepad/internal/autoclose"
	"github.com/chenen3/codepad/internal/bracket"
	"github.com/chenen3/codepad/internal/document"
	"github.com/chenen3/codepad/internal/session"
)

const tabWidth = 4

type editor struct {
	baseView
	sess *session.Session
	doc  *document.Document

	cursor    document.Pos
	anchor    document.Pos // equals cursor when nothing is selected
	startLine int          // first line on screen, zero based
	highlight bracket.Highlight
	dirty     bool // modified since the last save
	pasting   bool // between the start and end of a bracketed paste

	findKey   []rune
	findFrom  document.Pos // cursor when the search started
	findMatch []document.Pos
	findIndex int

	// called after the cursor moved or the text changed
	onChange func()
}

func newEditor(sess *session.Session) *editor {
	return &editor{sess: sess, doc: sess.Document()}
}

// cellWidth is the number of screen cells r takes when drawn x cells
// from the start of its line.
func cellWidth(r rune, x int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// cellX returns the screen offset of col within line.
func cellX(line []rune, col int) int {
	x := 0
	for _, r := range line[:min(col, len(line))] {
		x += cellWidth(r, x)
	}
	return x
}

// colAt is the inverse of cellX. A position past half of a tab counts
// as the next column.
func colAt(line []rune, x int) int {
	cx := 0
	for i, r := range line {
		w := cellWidth(r, cx)
		if x < cx+w {
			if w > 1 && x-cx > w/2 {
				return i + 1
			}
			return i
		}
		cx += w
	}
	return len(line)
}

func (e *editor) gutterWidth() int {
	w := 2
	for i := e.doc.NumLines(); i > 0; i = i / 10 {
		w++
	}
	return w
}

func (e *editor) sel() autoclose.Selection {
	return autoclose.Selection{Anchor: e.anchor, Head: e.cursor}
}

func (e *editor) selection() (document.Pos, document.Pos) {
	s := e.sel()
	return s.From(), s.To()
}

func (e *editor) Draw() {
	th := e.sess.Theme()
	e.fill(th.Default())

	gutter := e.gutterWidth()
	lineNumStyle := th.Default().Foreground(tcell.ColorGray)
	for row := 0; row < e.height; row++ {
		i := e.startLine + row
		if i >= e.doc.NumLines() {
			break
		}
		num := strconv.Itoa(i + 1)
		// align right
		e.drawText(e.x+gutter-1-len(num), e.y+row, num, lineNumStyle)
		e.drawLine(i, e.y+row, gutter)
	}
	if e.focused {
		e.ShowCursor()
	}
}

func (e *editor) drawLine(i, y, gutter int) {
	th := e.sess.Theme()
	line := e.doc.Line(i)
	tokens := e.doc.Tokens(i)
	from, to := e.selection()

	x, t := 0, 0
	for col, r := range line {
		for t < len(tokens) && tokens[t].End <= col {
			t++
		}
		style := th.Default()
		if t < len(tokens) && tokens[t].Contains(col) {
			style = th.Style(tokens[t].Kind)
		}
		p := document.Pos{Line: i, Col: col}
		if e.highlight.Marked(p) {
			style = th.MatchStyle(style)
		}
		if found, current := e.found(p); found {
			if current {
				style = style.Background(tcell.ColorYellow)
			} else {
				style = style.Background(tcell.ColorLightYellow)
			}
		}
		if !p.Less(from) && p.Less(to) {
			style = style.Reverse(true)
		}

		w := cellWidth(r, x)
		sx := e.x + gutter + x
		if sx+w > e.x+e.width {
			break
		}
		if r == '\t' {
			for k := 0; k < w; k++ {
				screen.SetContent(sx+k, y, ' ', nil, style)
			}
		} else {
			screen.SetContent(sx, y, r, nil, style)
		}
		x += w
	}
}

func (e *editor) ShowCursor() {
	row := e.cursor.Line - e.startLine
	if row < 0 || row >= e.height {
		screen.HideCursor()
		return
	}
	x := e.x + e.gutterWidth() + cellX(e.doc.Line(e.cursor.Line), e.cursor.Col)
	screen.ShowCursor(x, e.y+row)
}

func (e *editor) OnFocus() {
	e.baseView.OnFocus()
	e.ShowCursor()
}

func (e *editor) OnClick(x, y int) {
	i := min(max(y-e.y+e.startLine, 0), e.doc.NumLines()-1)
	col := colAt(e.doc.Line(i), x-e.x-e.gutterWidth())
	e.moveTo(document.Pos{Line: i, Col: col}, false)
}

func (e *editor) ScrollUp(delta int) {
	e.startLine = max(e.startLine-delta, 0)
	e.Draw()
}

func (e *editor) ScrollDown(delta int) {
	e.startLine = min(e.startLine+delta, e.doc.NumLines()-1)
	e.Draw()
}

func (e *editor) scrollToCursor() {
	if e.height <= 0 {
		return
	}
	if e.cursor.Line < e.startLine {
		e.startLine = e.cursor.Line
	} else if e.cursor.Line >= e.startLine+e.height {
		e.startLine = e.cursor.Line - e.height + 1
	}
}

func (e *editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

// apply takes the cursor, decorations and dirty state from eff.
func (e *editor) apply(eff session.Effects) {
	if len(eff.Selections) > 0 {
		e.anchor, e.cursor = eff.Selections[0].Anchor, eff.Selections[0].Head
	}
	e.highlight = eff.Highlight
	if !eff.Dirty.Empty() {
		e.dirty = true
		if len(e.findKey) > 0 {
			e.findMatch = e.search(e.findKey)
			e.findIndex = min(e.findIndex, max(len(e.findMatch)-1, 0))
		}
	}
	e.scrollToCursor()
	e.Draw()
	e.changed()
}

func (e *editor) edit(from, to document.Pos, text string) {
	e.apply(e.sess.Edit(document.Change{From: from, To: to, Text: text}))
}

func (e *editor) moveTo(p document.Pos, extend bool) {
	e.cursor = e.doc.Clamp(p)
	if !extend {
		e.anchor = e.cursor
	}
	e.highlight = e.sess.Cursor([]document.Pos{e.cursor}).Highlight
	e.scrollToCursor()
	e.Draw()
	e.changed()
}

// Paste marks the start or end of pasted input. Pasted runes are
// inserted as they are: no pairs, no indentation, no completion.
func (e *editor) Paste(start bool) {
	e.pasting = start
}

// key offers k to the session and reports whether it was handled there.
// Pasted input is never offered.
func (e *editor) key(k autoclose.Key) bool {
	if e.pasting {
		return false
	}
	eff := e.sess.Key([]autoclose.Selection{e.sel()}, k)
	if !eff.Handled {
		return false
	}
	e.apply(eff)
	return true
}

func (e *editor) Insert(r rune) {
	if e.key(autoclose.Key{Kind: autoclose.KeyRune, Rune: r}) {
		return
	}
	from, to := e.selection()
	e.edit(from, to, string(r))
}

// Enter splits the line, keeping the indentation before the cursor.
func (e *editor) Enter() {
	if e.key(autoclose.Key{Kind: autoclose.KeyEnter}) {
		return
	}
	from, to := e.selection()
	if e.pasting {
		e.edit(from, to, "\n")
		return
	}
	indent := e.doc.Indentation(from.Line)
	if len(indent) > from.Col {
		indent = indent[:from.Col]
	}
	e.edit(from, to, "\n"+indent)
}

func (e *editor) DeleteLeft() {
	if e.key(autoclose.Key{Kind: autoclose.KeyBackspace}) {
		return
	}
	from, to := e.selection()
	if from == to {
		from = e.left(from)
		if from == to {
			return
		}
	}
	e.edit(from, to, "")
}

func (e *editor) DeleteRight() {
	from, to := e.selection()
	if from == to {
		to = e.right(to)
		if from == to {
			return
		}
	}
	e.edit(from, to, "")
}

func (e *editor) DeleteToLineStart() {
	e.edit(document.Pos{Line: e.cursor.Line}, e.cursor, "")
}

func (e *editor) DeleteToLineEnd() {
	end := document.Pos{Line: e.cursor.Line, Col: e.doc.LineLen(e.cursor.Line)}
	e.edit(e.cursor, end, "")
}

// Complete replaces the word before the cursor with the first longer
// identifier starting with it, or inserts a tab when there is none.
func (e *editor) Complete() {
	word := e.sess.WordBefore(e.cursor)
	if word != "" && e.anchor == e.cursor {
		for _, w := range e.sess.Complete(word) {
			if len(w) > len(word) {
				from := document.Pos{Line: e.cursor.Line, Col: e.cursor.Col - len([]rune(word))}
				e.edit(from, e.cursor, w)
				return
			}
		}
	}
	e.Insert('\t')
}

func (e *editor) left(p document.Pos) document.Pos {
	if p.Col > 0 {
		return document.Pos{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return document.Pos{Line: p.Line - 1, Col: e.doc.LineLen(p.Line - 1)}
	}
	return p
}

func (e *editor) right(p document.Pos) document.Pos {
	if p.Col < e.doc.LineLen(p.Line) {
		return document.Pos{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line < e.doc.NumLines()-1 {
		return document.Pos{Line: p.Line + 1}
	}
	return p
}

func (e *editor) vertical(delta int) document.Pos {
	line := min(max(e.cursor.Line+delta, 0), e.doc.NumLines()-1)
	return e.doc.Clamp(document.Pos{Line: line, Col: e.cursor.Col})
}

func (e *editor) HandleKey(ev *tcell.EventKey) {
	extend := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyRune:
		e.Insert(ev.Rune())
	case tcell.KeyTab:
		if e.pasting {
			e.Insert('\t')
			break
		}
		e.Complete()
	case tcell.KeyEnter:
		e.Enter()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.DeleteLeft()
	case tcell.KeyDelete:
		e.DeleteRight()
	case tcell.KeyCtrlU:
		e.DeleteToLineStart()
	case tcell.KeyCtrlK:
		e.DeleteToLineEnd()
	case tcell.KeyUp:
		e.moveTo(e.vertical(-1), extend)
	case tcell.KeyDown:
		e.moveTo(e.vertical(1), extend)
	case tcell.KeyPgUp:
		e.moveTo(e.vertical(-max(e.height-1, 1)), extend)
	case tcell.KeyPgDn:
		e.moveTo(e.vertical(max(e.height-1, 1)), extend)
	case tcell.KeyLeft:
		e.moveTo(e.left(e.cursor), extend)
	case tcell.KeyRight:
		e.moveTo(e.right(e.cursor), extend)
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.moveTo(document.Pos{Line: e.cursor.Line}, extend)
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.moveTo(document.Pos{Line: e.cursor.Line, Col: e.doc.LineLen(e.cursor.Line)}, extend)
	}
}

// Line return current number of line in editor
func (e *editor) Line() int { return e.cursor.Line + 1 }

// Column return the screen column of the cursor, counting tabs by
// their width. It is intended for the status bar.
func (e *editor) Column() int {
	return cellX(e.doc.Line(e.cursor.Line), e.cursor.Col) + 1
}

// GotoLine moves the cursor to the start of line n, counted from 1, and
// centers it on screen.
func (e *editor) GotoLine(n int) error {
	if n < 1 || n > e.doc.NumLines() {
		return fmt.Errorf("line %d out of range [1, %d]", n, e.doc.NumLines())
	}
	e.startLine = max(n-1-e.height/2, 0)
	e.moveTo(document.Pos{Line: n - 1}, false)
	return nil
}

// A newline is appended if the text does not already end with one.
func (e *editor) WriteTo(w io.Writer) (int64, error) {
	text := e.sess.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	n, err := io.WriteString(w, text)
	if err != nil {
		return int64(n), err
	}
	e.dirty = false
	e.changed()
	return int64(n), nil
}

func (e *editor) Dirty() bool { return e.dirty }

func (e *editor) search(key []rune) []document.Pos {
	var match []document.Pos
	if len(key) == 0 {
		return nil
	}
	for i := 0; i < e.doc.NumLines(); i++ {
		line := e.doc.Line(i)
		for col := 0; col+len(key) <= len(line); col++ {
			if slices.Equal(line[col:col+len(key)], key) {
				match = append(match, document.Pos{Line: i, Col: col})
				col += len(key) - 1
			}
		}
	}
	return match
}

func (e *editor) found(p document.Pos) (found, current bool) {
	for i, m := range e.findMatch {
		if m.Line == p.Line && m.Col <= p.Col && p.Col < m.Col+len(e.findKey) {
			return true, i == e.findIndex
		}
		if p.Line < m.Line {
			break
		}
	}
	return false, false
}

func (e *editor) ClearFind() {
	e.findKey = nil
	e.findMatch = nil
	e.findIndex = 0
	e.Draw()
}

// Find highlights every occurrence of key and jumps to the first one at
// or after the cursor.
func (e *editor) Find(key string) {
	if key == "" {
		e.ClearFind()
		return
	}
	if len(e.findKey) == 0 {
		e.findFrom = e.cursor
	}
	e.findKey = []rune(key)
	e.findMatch = e.search(e.findKey)
	logger.Debug("find", zap.String("key", key), zap.Int("matches", len(e.findMatch)))
	if len(e.findMatch) == 0 {
		e.Draw()
		return
	}
	e.findIndex = 0
	for i, m := range e.findMatch {
		if !m.Less(e.findFrom) {
			e.findIndex = i
			break
		}
	}
	e.jumpToMatch()
}

func (e *editor) FindNext() {
	if len(e.findMatch) == 0 {
		return
	}
	e.findIndex = (e.findIndex + 1) % len(e.findMatch)
	e.jumpToMatch()
}

func (e *editor) FindPrev() {
	if len(e.findMatch) == 0 {
		return
	}
	e.findIndex = (e.findIndex - 1 + len(e.findMatch)) % len(e.findMatch)
	e.jumpToMatch()
}

// jumpToMatch places the cursor at the end of the current match for easy
// editing.
func (e *editor) jumpToMatch() {
	m := e.findMatch[e.findIndex]
	if m.Line < e.startLine || m.Line >= e.startLine+e.height {
		e.startLine = max(m.Line-e.height/2, 0)
	}
	e.moveTo(document.Pos{Line: m.Line, Col: m.Col + len(e.findKey)}, false)
}
