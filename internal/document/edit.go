package document

import (
	"slices"
	"strings"
)

func (d *Document) Insert(p Pos, text string) Dirty {
	return d.Apply(Change{From: p, To: p, Text: text})
}

func (d *Document) Delete(from, to Pos) Dirty {
	return d.Apply(Change{From: from, To: to})
}

func (d *Document) Replace(from, to Pos, text string) Dirty {
	return d.Apply(Change{From: from, To: to, Text: text})
}

// Apply performs c and retokenizes. The returned range covers the lines
// whose text changed and every line below them whose tokens had to be
// recomputed.
func (d *Document) Apply(c Change) Dirty {
	from, to := d.Clamp(c.From), d.Clamp(c.To)
	if to.Less(from) {
		from, to = to, from
	}
	first, oldLast := from.Line, to.Line
	prefix := d.lines[first].text[:from.Col]
	suffix := d.lines[oldLast].text[to.Col:]

	parts := strings.Split(c.Text, "\n")
	added := make([]*line, len(parts))
	for i, s := range parts {
		var text []rune
		if i == 0 {
			text = append(text, prefix...)
		}
		text = append(text, []rune(s)...)
		if i == len(parts)-1 {
			text = append(text, suffix...)
		}
		added[i] = &line{text: text}
	}
	d.lines = slices.Replace(d.lines, first, oldLast+1, added...)
	d.version++

	last := first + len(added) - 1
	switch delta := len(added) - (oldLast - first + 1); {
	case d.valid > oldLast:
		d.valid += delta
	case d.valid > first:
		d.valid = first
	}
	return d.retokenize(first, last)
}

// retokenize recomputes lines first to last, whose text changed, and then
// keeps going down while the state a line is entered with differs from the
// one it was last tokenized with. Lines past the valid prefix are left for
// ensure.
func (d *Document) retokenize(first, last int) Dirty {
	dirty := Dirty{From: first, To: last}
	if first >= d.valid {
		return dirty
	}
	st := d.exitBefore(first)
	i := first
	for ; i < d.valid; i++ {
		if i > last && d.lines[i].cache.enter == st {
			break
		}
		st = d.tokenize(i, st)
	}
	dirty.To = max(last, i-1)
	return dirty
}
