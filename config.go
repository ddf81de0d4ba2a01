package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chenen3/codepad/internal/autoclose"
	"github.com/chenen3/codepad/internal/bracket"
	"github.com/chenen3/codepad/internal/session"
)

// config is the optional JSON file given by -config. It is decoded over
// the defaults, so a field left out keeps its default and a field given
// as empty turns the feature off.
type config struct {
	Theme     string           `json:"theme"`
	Lang      string           `json:"lang"`
	AutoClose autoclose.Config `json:"autoClose"`
	Brackets  bracket.Config   `json:"brackets"`
}

func defaultConfig() *config {
	return &config{
		AutoClose: autoclose.DefaultConfig(),
		Brackets:  bracket.DefaultConfig(),
	}
}

// loadConfig reads the file at path. A missing file is not an error when
// missingOK is set.
func loadConfig(path string, missingOK bool) (*config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if missingOK && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// options merges c over the session defaults.
func (c *config) options() session.Options {
	opts := session.DefaultOptions()
	if c.Theme != "" {
		opts.Theme = c.Theme
	}
	if c.Lang != "" {
		opts.Grammar = c.Lang
	}
	opts.AutoClose = c.AutoClose
	opts.Bracket = c.Brackets
	return opts
}
