package config

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/loupe/internal/config/loader"
	"github.com/dshills/loupe/internal/transform"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LOUPE_"

// Limits of the numeric settings.
const (
	MinSize         = 16
	MaxSize         = 640
	MinRefresh      = 1
	MaxRefresh      = 500
	MinZoom         = 1
	MaxZoom         = 4
	MinScreenLength = 128
	MaxScreenLength = 16384
)

// Config is the resolved startup configuration.
type Config struct {
	XSize        int
	YSize        int
	Refresh      int // milliseconds
	Zoom         int
	Transform    string
	Mobile       bool
	Source       string
	ScreenWidth  int
	ScreenHeight int
	Watch        bool
	LogLevel     string
	LogFile      string

	// File is the config file that was read, empty if none.
	File string
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		XSize:        100,
		YSize:        100,
		Refresh:      200,
		Zoom:         1,
		Transform:    "original",
		ScreenWidth:  1280,
		ScreenHeight: 800,
		Watch:        true,
		LogLevel:     "info",
		LogFile:      filepath.Join(os.TempDir(), "loupe.log"),
	}
}

// RefreshInterval returns the timer interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh) * time.Millisecond
}

// HalfExtent returns half the initial window size.
func (c *Config) HalfExtent() image.Point {
	return image.Pt(c.XSize/2, c.YSize/2)
}

// Screen returns the synthetic desktop size.
func (c *Config) Screen() image.Point {
	return image.Pt(c.ScreenWidth, c.ScreenHeight)
}

// Option configures Load.
type Option func(*options)

type options struct {
	path      string
	userDir   string
	fs        loader.FileSystem
	envPrefix string
	environ   func() []string
	overrides map[string]any
	registry  *transform.Registry
}

// WithFile names the config file explicitly. A missing file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithUserConfigDir sets the directory searched when no file is named.
// An empty dir disables the search.
func WithUserConfigDir(dir string) Option {
	return func(o *options) {
		o.userDir = dir
	}
}

// WithFS sets the file system config files are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEnviron replaces the process environment as the source of the
// environment layer.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithOverrides sets the highest-priority layer, normally parsed flags.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		o.overrides = values
	}
}

// WithRegistry sets the registry transform names are checked against.
func WithRegistry(r *transform.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// Load resolves the configuration from defaults, the config file, the
// environment and overrides, then validates it.
func Load(opts ...Option) (*Config, error) {
	o := options{
		userDir:   defaultUserConfigDir(),
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		registry:  transform.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := Default().toMap()

	file, fileValues, err := o.loadFile()
	if err != nil {
		return nil, err
	}
	if err := checkKeys(fileValues); err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, fileValues)

	if o.envPrefix != "" {
		env := loader.NewEnvLoader(o.envPrefix)
		if o.environ != nil {
			env = loader.NewEnvLoaderFunc(o.envPrefix, o.environ)
		}
		envValues, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, knownOnly(envValues))
	}

	if err := checkKeys(o.overrides); err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, o.overrides)

	cfg := &Config{File: file}
	if err := cfg.decode(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(o.registry); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads the named file or, failing that, the first config file
// present in the user config dir.
func (o *options) loadFile() (string, map[string]any, error) {
	if o.path != "" {
		values, err := readConfigFile(o.fs, o.path)
		if err != nil {
			return "", nil, err
		}
		if values == nil {
			return "", nil, &Error{Field: "config", Value: o.path, Reason: "file not found", Err: ErrFileNotFound}
		}
		return o.path, values, nil
	}

	if o.userDir == "" {
		return "", nil, nil
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(o.userDir, name)
		values, err := readConfigFile(o.fs, path)
		if err != nil {
			return "", nil, err
		}
		if values != nil {
			return path, values, nil
		}
	}
	return "", nil, nil
}

func readConfigFile(fsys loader.FileSystem, path string) (map[string]any, error) {
	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return nil, &Error{Field: "config", Value: path, Reason: "unsupported file type", Err: err}
	}
	values, err := l.Load()
	if err != nil {
		var pe *loader.ParseError
		if errors.As(err, &pe) {
			return nil, &Error{Field: "config", Value: path, Reason: pe.Error(), Err: err}
		}
		return nil, &Error{Field: "config", Value: path, Reason: "read failed", Err: err}
	}
	return values, nil
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loupe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "loupe")
}

// setting binds a key to a Config field.
type setting struct {
	key string
	get func(c *Config) any
	set func(c *Config, v any) error
}

func intSetting(key string, field func(c *Config) *int) setting {
	return setting{
		key: key,
		get: func(c *Config) any { return int64(*field(c)) },
		set: func(c *Config, v any) error {
			n, ok := toInt(v)
			if !ok {
				return typeError(key, v, "int")
			}
			*field(c) = n
			return nil
		},
	}
}

func boolSetting(key string, field func(c *Config) *bool) setting {
	return setting{
		key: key,
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			switch b := v.(type) {
			case bool:
				*field(c) = b
				return nil
			case int64:
				if b == 0 || b == 1 {
					*field(c) = b == 1
					return nil
				}
			}
			return typeError(key, v, "bool")
		},
	}
}

func stringSetting(key string, field func(c *Config) *string) setting {
	return setting{
		key: key,
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			switch s := v.(type) {
			case string:
				*field(c) = s
			case int64, float64, bool:
				*field(c) = fmt.Sprint(s)
			default:
				return typeError(key, v, "string")
			}
			return nil
		},
	}
}

// settings lists every recognized key in display order.
var settings = []setting{
	intSetting("x_size", func(c *Config) *int { return &c.XSize }),
	intSetting("y_size", func(c *Config) *int { return &c.YSize }),
	intSetting("refresh", func(c *Config) *int { return &c.Refresh }),
	intSetting("zoom", func(c *Config) *int { return &c.Zoom }),
	stringSetting("transform", func(c *Config) *string { return &c.Transform }),
	boolSetting("mobile", func(c *Config) *bool { return &c.Mobile }),
	stringSetting("source", func(c *Config) *string { return &c.Source }),
	intSetting("screen_width", func(c *Config) *int { return &c.ScreenWidth }),
	intSetting("screen_height", func(c *Config) *int { return &c.ScreenHeight }),
	boolSetting("watch", func(c *Config) *bool { return &c.Watch }),
	stringSetting("log_level", func(c *Config) *string { return &c.LogLevel }),
	stringSetting("log_file", func(c *Config) *string { return &c.LogFile }),
}

func lookupSetting(key string) (setting, bool) {
	for _, s := range settings {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// Keys returns the recognized setting keys in display order.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

func checkKeys(values map[string]any) error {
	for key := range values {
		if _, ok := lookupSetting(key); !ok {
			return &Error{Field: key, Reason: "unknown setting"}
		}
	}
	return nil
}

func knownOnly(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, v := range values {
		if _, ok := lookupSetting(key); ok {
			out[key] = v
		}
	}
	return out
}

func (c *Config) toMap() map[string]any {
	m := make(map[string]any, len(settings))
	for _, s := range settings {
		m[s.key] = s.get(c)
	}
	return m
}

func (c *Config) decode(values map[string]any) error {
	for _, s := range settings {
		v, ok := values[s.key]
		if !ok {
			continue
		}
		if err := s.set(c, v); err != nil {
			return err
		}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Validate checks every setting against its permitted range. The transform
// name must be registered in r; a nil r skips that check.
func (c *Config) Validate(r *transform.Registry) error {
	var errs []error
	checkRange := func(field string, value, lo, hi int) {
		if value < lo || value > hi {
			errs = append(errs, &Error{
				Field:  field,
				Value:  value,
				Reason: fmt.Sprintf("must be between %d and %d", lo, hi),
			})
		}
	}

	checkRange("x_size", c.XSize, MinSize, MaxSize)
	checkRange("y_size", c.YSize, MinSize, MaxSize)
	checkRange("refresh", c.Refresh, MinRefresh, MaxRefresh)
	checkRange("zoom", c.Zoom, MinZoom, MaxZoom)
	checkRange("screen_width", c.ScreenWidth, MinScreenLength, MaxScreenLength)
	checkRange("screen_height", c.ScreenHeight, MinScreenLength, MaxScreenLength)

	if r != nil {
		if _, err := r.Lookup(c.Transform); err != nil {
			errs = append(errs, &Error{
				Field:  "transform",
				Value:  c.Transform,
				Reason: fmt.Sprintf("must be one of %s", strings.Join(r.Names(), ", ")),
				Err:    err,
			})
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &Error{
			Field:  "log_level",
			Value:  c.LogLevel,
			Reason: "must be debug, info, warn or error",
		})
	}

	return errors.Join(errs...)
}

// Dump returns one "key = value" line per setting, in display order.
func (c *Config) Dump() []string {
	lines := make([]string, 0, len(settings))
	for _, s := range settings {
		v := s.get(c)
		if str, ok := v.(string); ok {
			v = fmt.Sprintf("%q", str)
		}
		lines = append(lines, fmt.Sprintf("%-13s = %v", s.key, v))
	}
	return lines
}
