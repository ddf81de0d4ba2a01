package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/chenen3/codepad/internal/lexer"
	"github.com/chenen3/codepad/internal/session"
)

var (
	screen tcell.Screen
	logger = zap.NewNop()
)

// codepad is the editor window: a title bar, the editor and a status
// line that prompts take over.
type codepad struct {
	*App
	sess     *session.Session
	filename string
	title    *titleBar
	editor   *editor
	status   *statusView
}

func newCodepad(sess *session.Session, filename string) *codepad {
	c := &codepad{App: NewApp(), sess: sess, filename: filename}
	c.title = newTitleBar(c)
	c.editor = newEditor(sess)
	c.status = &statusView{View: newStatusBar(c)}
	c.editor.onChange = func() {
		c.title.Draw()
		if _, ok := c.status.View.(*statusBar); ok {
			c.status.Draw()
		}
	}
	c.SetBody(VStack(c.title, c.editor, c.status))

	c.Handle(tcell.KeyCtrlS, func(*tcell.EventKey) {
		if c.filename == "" {
			c.prompt(newSaveBar(c, false))
			return
		}
		if err := c.save(c.filename); err != nil {
			logger.Error("save", zap.String("file", c.filename), zap.Error(err))
		}
	})
	c.Handle(tcell.KeyCtrlQ, func(*tcell.EventKey) {
		if bar, ok := c.status.View.(*saveBar); ok && bar.quit {
			// pressed twice, discard the changes
			c.Close()
			return
		}
		if c.editor.Dirty() {
			c.prompt(newSaveBar(c, true))
			return
		}
		c.Close()
	})
	c.Handle(tcell.KeyCtrlF, func(*tcell.EventKey) { c.prompt(newFindBar(c)) })
	c.Handle(tcell.KeyCtrlG, func(*tcell.EventKey) { c.prompt(newGotoBar(c)) })
	return c
}

// prompt replaces the status line with v and focuses it.
func (c *codepad) prompt(v View) {
	c.status.Set(v)
	v.Draw()
	c.Focus(v)
}

func (c *codepad) resetStatus() {
	c.prompt(newStatusBar(c))
	c.editor.Draw()
}

func (c *codepad) save(filename string) error {
	if err := writeFile(filename, c.editor); err != nil {
		return err
	}
	c.filename = filename
	logger.Info("saved", zap.String("file", filename))
	c.title.Draw()
	return nil
}

// langOf guesses the grammar from the file extension.
func langOf(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".rs":
		return "rust"
	case ".ts", ".tsx", ".mts":
		return "typescript"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	}
	return ""
}

func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	var (
		lang       = flag.String("lang", "", "grammar: "+strings.Join(lexer.NewRegistry().Names(), ", ")+" (default from the file extension, else javascript)")
		themeName  = flag.String("theme", "", "color theme: light or dark")
		configPath = flag.String("config", "", "JSON config file (default $XDG_CONFIG_HOME/codepad/config.json)")
		catMode    = flag.Bool("cat", false, "print the file highlighted and exit")
		lexMode    = flag.Bool("lex", false, "read lines from the terminal and print their tokens")
		logPath    = flag.String("log", filepath.Join(os.TempDir(), "codepad.log"), "log file")
	)
	flag.Parse()

	l, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger = l
	defer logger.Sync()

	if err := run(*lang, *themeName, *configPath, *catMode, *lexMode, flag.Arg(0)); err != nil {
		logger.Error("exit", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(lang, themeName, configPath string, catMode, lexMode bool, filename string) error {
	missingOK := false
	if configPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			configPath, missingOK = filepath.Join(dir, "codepad", "config.json"), true
		}
	}
	cfg, err := loadConfig(configPath, missingOK)
	if err != nil {
		return err
	}
	opts := cfg.options()
	opts.Logger = logger
	if guess := langOf(filename); guess != "" && cfg.Lang == "" {
		opts.Grammar = guess
	}
	if lang != "" {
		opts.Grammar = lang
	}
	if themeName != "" {
		opts.Theme = themeName
	}

	var text string
	if filename != "" {
		b, err := os.ReadFile(filename)
		if err != nil && !(os.IsNotExist(err) && !catMode) {
			return err
		}
		text = string(b)
	}
	sess, err := session.New(text, opts)
	if err != nil {
		return err
	}

	switch {
	case lexMode:
		th := sess.Theme()
		return runREPL(sess.Document().Lexer(), &th)
	case catMode:
		return printHighlighted(os.Stdout, sess, term.IsTerminal(int(os.Stdout.Fd())))
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.SetStyle(sess.Theme().Default())
	s.EnableMouse()
	s.EnablePaste()
	s.SetCursorStyle(tcell.CursorStyleDefault)
	screen = s

	c := newCodepad(sess, filename)
	width, height := screen.Size()
	c.body.SetPos(0, 0, width, height)
	c.Focus(c.editor)
	c.Run()
	return nil
}
