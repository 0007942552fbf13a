// Package config provides the configuration for jot.
//
// Settings are applied in layers, later layers overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← JOT_EDITOR, TMPDIR, JOT_LOG_LEVEL
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/jot/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file is TOML:
//
//	editing_mode = "vi"
//
//	[editor]
//	program = "vim -n"
//
//	[[bind]]
//	keys = "C-x C-k"
//	command = "kill-whole-line"
//	scope = "insert"
//
//	[[unbind]]
//	keys = "C-d"
//	scope = "global"
//
// # Basic Usage
//
//	cfg, err := config.Load(config.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	cfg.Log.Level = *logLevel
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
