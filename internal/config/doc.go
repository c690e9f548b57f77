// Package config provides the startup configuration of loupe.
//
// Configuration is resolved once, before any window exists, from layers
// with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (LOUPE_*)   │
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is a flat map produced by the loader sub-package. The maps
// are merged, decoded into a typed Config, and validated. Any failure is a
// configuration error: an *Error matching ErrInvalid with errors.Is.
//
// # Settings
//
//	x_size         initial window width, 16..640
//	y_size         initial window height, 16..640
//	refresh        timer interval in milliseconds, 1..500
//	zoom           initial zoom level, 1..4
//	transform      pixel transform name ("original" or "invert")
//	mobile         window follows the pointer
//	source         image file to magnify; empty selects a synthetic desktop
//	screen_width   synthetic desktop width
//	screen_height  synthetic desktop height
//	watch          reload the source image when it changes
//	log_level      debug, info, warn or error
//	log_file       log destination; empty discards logs
//
// When no file is named explicitly, $XDG_CONFIG_HOME/loupe/config.toml
// (or config.yaml) is used if present.
package config
