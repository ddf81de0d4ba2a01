// Package session ties a document to its lexer, bracket matcher,
// auto-closer and theme. A host feeds it keys, edits and cursor moves and
// redraws what the returned Effects describe.
package session

import (
	"go.uber.org/zap"

	"github.com/chenen3/codepad/internal/autoclose"
	"github.com/chenen3/codepad/internal/bracket"
	"github.com/chenen3/codepad/internal/document"
	"github.com/chenen3/codepad/internal/lexer"
	"github.com/chenen3/codepad/internal/theme"
)

type Options struct {
	Grammar   string
	Registry  lexer.Registry // defaults to lexer.NewRegistry()
	AutoClose autoclose.Config
	Bracket   bracket.Config
	Theme     string
	Logger    *zap.Logger // defaults to a no-op logger
}

func DefaultOptions() Options {
	return Options{
		Grammar:   "javascript",
		AutoClose: autoclose.DefaultConfig(),
		Bracket:   bracket.DefaultConfig(),
		Theme:     "light",
	}
}

// Effects is what an event did. Dirty holds the lines whose text or
// tokens changed, Selections the selections to show afterwards and
// Highlight the bracket decorations at those selections.
type Effects struct {
	Handled    bool
	Dirty      document.Dirty
	Selections []autoclose.Selection
	Highlight  bracket.Highlight
}

type Session struct {
	doc     *document.Document
	closer  *autoclose.Closer
	matcher *bracket.Matcher
	theme   theme.Theme
	log     *zap.Logger

	words        *node
	wordsVersion uint64
	wordsLines   int
}

// New opens text under opts. Every error it returns is a configuration
// error: an unknown grammar or theme, or an invalid pair.
func New(text string, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = lexer.NewRegistry()
	}
	lx, err := reg.Lookup(opts.Grammar)
	if err != nil {
		return nil, err
	}
	closer, err := autoclose.New(opts.AutoClose)
	if err != nil {
		return nil, err
	}
	matcher, err := bracket.NewMatcher(opts.Bracket)
	if err != nil {
		return nil, err
	}
	th, err := theme.Lookup(opts.Theme)
	if err != nil {
		return nil, err
	}

	s := &Session{
		doc:     document.New(lx, text),
		closer:  closer,
		matcher: matcher,
		theme:   th,
		log:     log,
	}
	log.Debug("session opened",
		zap.String("grammar", lx.Name()),
		zap.String("theme", th.Name),
		zap.Int("lines", s.doc.NumLines()),
		zap.Strings("pairs", opts.AutoClose.Pairs),
	)
	return s, nil
}

func (s *Session) Document() *document.Document { return s.doc }
func (s *Session) Theme() theme.Theme           { return s.theme }
func (s *Session) Text() string                 { return s.doc.Text() }

// Key offers k to the auto-closer. A declined key leaves the document
// untouched and the host performs its default behavior.
func (s *Session) Key(sels []autoclose.Selection, k autoclose.Key) Effects {
	res := s.closer.Handle(s.doc, sels, k)
	if !res.Handled {
		return Effects{Dirty: document.Dirty{From: 0, To: -1}, Selections: sels}
	}
	dirty := autoclose.Apply(s.doc, res)
	s.log.Debug("key handled",
		zap.Int("changes", len(res.Changes)),
		zap.Int("dirtyFrom", dirty.From),
		zap.Int("dirtyTo", dirty.To),
	)
	return Effects{
		Handled:    true,
		Dirty:      dirty,
		Selections: res.Selections,
		Highlight:  s.matcher.Highlight(s.doc, heads(res.Selections)),
	}
}

// Edit applies a plain change and leaves the cursor at its end.
func (s *Session) Edit(c document.Change) Effects {
	c.From, c.To = s.doc.Clamp(c.From), s.doc.Clamp(c.To)
	if c.To.Less(c.From) {
		c.From, c.To = c.To, c.From
	}
	end := c.End()
	dirty := s.doc.Apply(c)
	if !dirty.Empty() {
		s.log.Debug("retokenized", zap.Int("from", dirty.From), zap.Int("to", dirty.To))
	}
	sel := []autoclose.Selection{autoclose.Cursor(end)}
	return Effects{
		Handled:    true,
		Dirty:      dirty,
		Selections: sel,
		Highlight:  s.matcher.Highlight(s.doc, []document.Pos{end}),
	}
}

// Cursor reports the bracket decorations for cursors at positions.
func (s *Session) Cursor(positions []document.Pos) Effects {
	sels := make([]autoclose.Selection, len(positions))
	for i, p := range positions {
		sels[i] = autoclose.Cursor(p)
	}
	return Effects{
		Dirty:      document.Dirty{From: 0, To: -1},
		Selections: sels,
		Highlight:  s.matcher.Highlight(s.doc, positions),
	}
}

// Reconfigure swaps the bracket matcher settings. Cached tokens are kept.
func (s *Session) Reconfigure(cfg bracket.Config) error {
	if err := s.matcher.Reconfigure(cfg); err != nil {
		return err
	}
	s.log.Info("bracket matcher reconfigured",
		zap.String("pairs", cfg.Pairs),
		zap.Int("maxScanLines", cfg.MaxScanLines),
		zap.Int("maxLineLength", cfg.MaxLineLength),
	)
	return nil
}

func heads(sels []autoclose.Selection) []document.Pos {
	ps := make([]document.Pos, len(sels))
	for i, sel := range sels {
		ps[i] = sel.Head
	}
	return ps
}
