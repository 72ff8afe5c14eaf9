// Package config loads the user configuration file: default options plus
// commands (typically typedefs) replayed into a fresh session at startup.
package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"

	cdecl "github.com/appsworld/go-cdecl"
	"github.com/appsworld/go-cdecl/gibberish"
	"github.com/appsworld/go-cdecl/types"
)

// Config mirrors the YAML configuration file.
type Config struct {
	Language   string   `yaml:"language"`    // dialect name, e.g. "c++17"
	EastConst  *bool    `yaml:"east-const"`  // default true
	AltTokens  bool     `yaml:"alt-tokens"`
	Graphs     string   `yaml:"graphs"` // "none", "di", or "tri"
	Semicolon  *bool    `yaml:"semicolon"`  // default true
	Using      bool     `yaml:"using"`      // print typedefs as using declarations
	Predefined *bool    `yaml:"predefined"` // seed predefined typedefs; default true
	Commands   []string `yaml:"commands"`   // replayed at startup
}

// Load reads the configuration at path. A missing file is not an error; it
// yields an empty config.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}
	return cfg, nil
}

// Options converts the file's settings into session options.
func (c *Config) Options() (cdecl.Options, error) {
	opts := cdecl.DefaultOptions()
	if c.Language != "" {
		lang := types.FindLang(c.Language)
		if lang == types.LangNone {
			return opts, fmt.Errorf("%q: unknown language", c.Language)
		}
		opts.Lang = lang
	}
	if c.EastConst != nil {
		opts.EastConst = *c.EastConst
	}
	opts.AltTokens = c.AltTokens
	switch c.Graphs {
	case "", "none":
	case "di":
		opts.Graph = gibberish.GraphDi
	case "tri":
		opts.Graph = gibberish.GraphTri
	default:
		return opts, fmt.Errorf("%q: unknown graphs setting", c.Graphs)
	}
	if c.Semicolon != nil {
		opts.Semicolon = *c.Semicolon
	}
	opts.UsingDecls = c.Using
	if c.Predefined != nil {
		opts.Predefined = *c.Predefined
	}
	return opts, nil
}

// Apply replays the config's commands into a session.
func (c *Config) Apply(s *cdecl.Session) error {
	for _, cmd := range c.Commands {
		if err := s.Execute(cmd); err != nil {
			return fmt.Errorf("config command %q: %v", cmd, err)
		}
	}
	return nil
}
