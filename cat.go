package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/chenen3/codepad/internal/session"
)

// printHighlighted writes the text of s to w one line at a time. Tokens
// are colored with the theme's ANSI styles when color is set.
func printHighlighted(w io.Writer, s *session.Session, color bool) error {
	bw := bufio.NewWriter(w)
	doc := s.Document()
	th := s.Theme()
	for i := 0; i < doc.NumLines(); i++ {
		line := doc.Line(i)
		if i == doc.NumLines()-1 && len(line) == 0 {
			// the newline ending the file
			break
		}
		if !color {
			bw.WriteString(string(line))
			bw.WriteByte('\n')
			continue
		}

		var b strings.Builder
		col := 0
		for _, t := range doc.Tokens(i) {
			b.WriteString(string(line[col:t.Start]))
			b.WriteString(th.ANSI(t.Kind).Render(string(line[t.Start:t.End])))
			col = t.End
		}
		b.WriteString(string(line[col:]))
		bw.WriteString(b.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
