package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/chenen3/codepad/internal/lexer"
	"github.com/chenen3/codepad/internal/theme"
)

const historyFile = ".codepad_history"

// historyPath is where the REPL keeps its history, in the home directory.
func historyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyFile), nil
}

// lexLine renders the tokens of one line as kind:text pairs. The state
// the next line starts in is returned with it.
func lexLine(lx lexer.Lexer, th *theme.Theme, line string, index int, st lexer.State) (string, lexer.State) {
	rs := []rune(line)
	tokens, next := lexer.Tokenize(lx, rs, index, st)
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		s := t.Kind.String() + ":" + string(rs[t.Start:t.End])
		if th != nil {
			s = th.ANSI(t.Kind).Render(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), next
}

// runREPL reads lines and prints their tokens. The lexer state carries
// over from one line to the next, so a comment or string left open keeps
// going, and the prompt says so.
func runREPL(lx lexer.Lexer, th *theme.Theme) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, err := historyPath(); err != nil {
		logger.Warn("history disabled", zap.Error(err))
	} else {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Printf("%s tokenizer, :reset clears the state, :quit exits\n", lx.Name())
	var st lexer.State
	for index := 0; ; index++ {
		prompt := "> "
		if st.Mode != lexer.Base {
			prompt = st.Mode.String() + "... "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		ln.AppendHistory(line)

		switch strings.TrimSpace(line) {
		case ":quit":
			return nil
		case ":reset":
			st, index = lexer.State{}, -1
			continue
		}
		out, next := lexLine(lx, th, line, index, st)
		logger.Debug("lex", zap.Int("line", index), zap.Stringer("enter", st), zap.Stringer("exit", next))
		fmt.Println(out)
		st = next
	}
}
