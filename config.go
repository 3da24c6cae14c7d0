package mazewalk

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable LoadConfig reads.
const EnvPrefix = "MAZEWALK_"

// Config is the host-level configuration. Keys are the lower-cased variable
// names without EnvPrefix, e.g. MAZEWALK_FADE_WINDOW=5s sets FadeWindow.
type Config struct {
	MinCols     int `schema:"min_cols"`
	MaxCols     int `schema:"max_cols"`
	MinRows     int `schema:"min_rows"`
	MaxRows     int `schema:"max_rows"`
	MinCellSize int `schema:"min_cell_size"`
	MaxCellSize int `schema:"max_cell_size"`

	FadeWindow      time.Duration `schema:"fade_window"`
	TransitionDelay time.Duration `schema:"transition_delay"`
	FlashDuration   time.Duration `schema:"flash_duration"`

	SwipeThreshold    float64       `schema:"swipe_threshold"`
	KeyRepeatDelay    time.Duration `schema:"key_repeat_delay"`
	KeyRepeatInterval time.Duration `schema:"key_repeat_interval"`

	// Destinations is comma separated in the environment.
	Destinations []string `schema:"-"`

	WindowWidth  int  `schema:"window_width"`
	WindowHeight int  `schema:"window_height"`
	Dark         bool `schema:"dark"`
	Sound        bool `schema:"sound"`
	ShowFPS      bool `schema:"show_fps"`
	Debug        bool `schema:"debug"`

	LogLevel    string `schema:"log_level"`
	LogFile     string `schema:"log_file"`
	MetricsAddr string `schema:"metrics_addr"`

	// Seed makes generation deterministic when non-zero.
	Seed uint64 `schema:"seed"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	lc := DefaultLayoutConfig()
	return Config{
		MinCols:           lc.MinCols,
		MaxCols:           lc.MaxCols,
		MinRows:           lc.MinRows,
		MaxRows:           lc.MaxRows,
		MinCellSize:       lc.MinCellSize,
		MaxCellSize:       lc.MaxCellSize,
		FadeWindow:        DefaultFadeWindow,
		TransitionDelay:   DefaultTransitionDelay,
		FlashDuration:     DefaultFlashDuration,
		SwipeThreshold:    DefaultSwipeThreshold,
		KeyRepeatDelay:    500 * time.Millisecond,
		KeyRepeatInterval: 80 * time.Millisecond,
		Destinations:      append([]string(nil), DefaultDestinations...),
		WindowWidth:       960,
		WindowHeight:      640,
		LogLevel:          "info",
		LogFile:           "mazewalk.log",
	}
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Duration(0), func(s string) reflect.Value {
		v, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(v)
	})
	return d
}

// LoadConfig reads the given .env files (".env" when none are given) into
// the process environment and decodes the MAZEWALK_* variables over
// DefaultConfig. Missing files are skipped.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return DecodeConfig(os.Environ())
}

// DecodeConfig decodes KEY=value pairs, in os.Environ form, over
// DefaultConfig. Pairs without EnvPrefix are ignored.
func DecodeConfig(environ []string) (Config, error) {
	src := make(map[string][]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
		src[key] = []string{v}
	}

	cfg := DefaultConfig()
	// Lists are comma separated rather than repeated keys.
	if v, ok := src["destinations"]; ok {
		cfg.Destinations = splitList(v[0])
		delete(src, "destinations")
	}
	if err := decoder.Decode(&cfg, src); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.MinCols < 1 || c.MinRows < 1:
		return fmt.Errorf("config: grid minimum must be at least 1, got %dx%d", c.MinCols, c.MinRows)
	case c.MinCols > c.MaxCols:
		return fmt.Errorf("config: min_cols %d exceeds max_cols %d", c.MinCols, c.MaxCols)
	case c.MinRows > c.MaxRows:
		return fmt.Errorf("config: min_rows %d exceeds max_rows %d", c.MinRows, c.MaxRows)
	case c.MinCellSize < 1 || c.MinCellSize > c.MaxCellSize:
		return fmt.Errorf("config: invalid cell size range [%d, %d]", c.MinCellSize, c.MaxCellSize)
	case c.SwipeThreshold < 0:
		return fmt.Errorf("config: negative swipe_threshold %v", c.SwipeThreshold)
	case len(c.Destinations) == 0:
		return errors.New("config: no destinations")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level, Info when it does not parse.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	if c.Debug && lvl < logrus.DebugLevel {
		return logrus.DebugLevel
	}
	return lvl
}

// Layout returns the grid bounds as a LayoutConfig.
func (c Config) Layout() LayoutConfig {
	return LayoutConfig{
		MinCols:     c.MinCols,
		MaxCols:     c.MaxCols,
		MinRows:     c.MinRows,
		MaxRows:     c.MaxRows,
		MinCellSize: c.MinCellSize,
		MaxCellSize: c.MaxCellSize,
		CellDivisor: DefaultLayoutConfig().CellDivisor,
	}
}

// Options builds engine options. Navigator, Logger and Metrics are left for
// the host to fill in.
func (c Config) Options() Options {
	opts := Options{
		Layout:          c.Layout(),
		FadeWindow:      c.FadeWindow,
		TransitionDelay: c.TransitionDelay,
		FlashDuration:   c.FlashDuration,
		Destinations:    c.Destinations,
	}
	// An explicit 0s means no wait; a zero Options field would mean default.
	if c.TransitionDelay <= 0 {
		opts.TransitionDelay = -1
	}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	}
	return opts
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"cols":                fmt.Sprintf("%d-%d", c.MinCols, c.MaxCols),
		"rows":                fmt.Sprintf("%d-%d", c.MinRows, c.MaxRows),
		"cell_size":           fmt.Sprintf("%d-%d", c.MinCellSize, c.MaxCellSize),
		"fade_window":         c.FadeWindow.String(),
		"transition_delay":    c.TransitionDelay.String(),
		"flash_duration":      c.FlashDuration.String(),
		"swipe_threshold":     c.SwipeThreshold,
		"key_repeat_delay":    c.KeyRepeatDelay.String(),
		"key_repeat_interval": c.KeyRepeatInterval.String(),
		"destinations":        strings.Join(c.Destinations, ","),
		"dark":                c.Dark,
		"sound":               c.Sound,
		"log_level":           c.LogLevel,
		"metrics_addr":        c.MetricsAddr,
		"seed":                c.Seed,
	}
}
