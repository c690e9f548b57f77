package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if len(opts.overrides) != 0 {
		t.Errorf("overrides = %v, want none", opts.overrides)
	}
	if opts.configPath != "" || opts.showVersion || opts.dumpConfig {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		key  string
		want any
	}{
		{"short x", []string{"-x", "200"}, "x_size", 200},
		{"long x", []string{"-x_size", "220"}, "x_size", 220},
		{"short y", []string{"-y", "90"}, "y_size", 90},
		{"refresh", []string{"-r", "50"}, "refresh", 50},
		{"zoom", []string{"-zoom", "3"}, "zoom", 3},
		{"transform", []string{"-t", "invert"}, "transform", "invert"},
		{"mobile", []string{"-m"}, "mobile", true},
		{"watch off", []string{"-watch=false"}, "watch", false},
		{"source", []string{"-source", "shot.png"}, "source", "shot.png"},
		{"screen width", []string{"-screen-width", "1920"}, "screen_width", 1920},
		{"log file", []string{"-log-file", ""}, "log_file", ""},
		{"log level", []string{"-log-level", "debug"}, "log_level", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			got, ok := opts.overrides[tt.key]
			if !ok {
				t.Fatalf("override %q missing in %v", tt.key, opts.overrides)
			}
			if got != tt.want {
				t.Errorf("override %q = %v (%T), want %v (%T)", tt.key, got, got, tt.want, tt.want)
			}
			if len(opts.overrides) != 1 {
				t.Errorf("overrides = %v, want only %q", opts.overrides, tt.key)
			}
		})
	}
}

func TestParseFlags_Options(t *testing.T) {
	opts, err := parseFlags([]string{"-c", "loupe.toml", "-v", "-dump-config"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.configPath != "loupe.toml" {
		t.Errorf("configPath = %q", opts.configPath)
	}
	if !opts.showVersion || !opts.dumpConfig {
		t.Errorf("showVersion = %v, dumpConfig = %v", opts.showVersion, opts.dumpConfig)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"bad int", []string{"-x", "wide"}},
		{"positional", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args, &bytes.Buffer{}); err == nil {
				t.Errorf("parseFlags(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "Usage: loupe") {
		t.Errorf("usage not printed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "level 1 already magnifies 1.33x") {
		t.Errorf("zoom flag does not explain the level factor:\n%s", out.String())
	}
}

func TestRun_Version(t *testing.T) {
	if code := run([]string{"-version"}); code != exitOK {
		t.Errorf("run(-version) = %d, want %d", code, exitOK)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if code := run([]string{"-x", "wide"}); code != exitConfig {
		t.Errorf("run(-x wide) = %d, want %d", code, exitConfig)
	}
}

func TestRun_ConfigError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if code := run([]string{"-zoom", "9"}); code != exitConfig {
		t.Errorf("run(-zoom 9) = %d, want %d", code, exitConfig)
	}
	if code := run([]string{"-c", "/does/not/exist.toml"}); code != exitConfig {
		t.Errorf("run(missing config) = %d, want %d", code, exitConfig)
	}
}
