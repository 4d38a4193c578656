package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig mirrors the j2py.toml project file.
type FileConfig struct {
	Strict      bool            `toml:"strict"`
	IndentWidth int             `toml:"indent_width"`
	PostProcess *bool           `toml:"post_process"`
	EntryCall   *bool           `toml:"entry_call"`
	Warnings    map[string]bool `toml:"warnings"`
}

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = "j2py.toml"

// LoadFile reads a TOML project file and applies it on top of cfg. A missing
// file at the default path is not an error.
func LoadFile(path string, cfg *Config) error {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFileName {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	cfg.SetFeature(FeatStrict, fc.Strict)
	if fc.IndentWidth > 0 {
		cfg.IndentWidth = fc.IndentWidth
	}
	if fc.PostProcess != nil {
		cfg.SetFeature(FeatPostProcess, *fc.PostProcess)
	}
	if fc.EntryCall != nil {
		cfg.SetFeature(FeatEntryCall, *fc.EntryCall)
	}
	for name, enabled := range fc.Warnings {
		wt, ok := cfg.WarningMap[name]
		if !ok {
			return fmt.Errorf("%s: unknown warning %q", path, name)
		}
		cfg.SetWarning(wt, enabled)
	}
	return nil
}
