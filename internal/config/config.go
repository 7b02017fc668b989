package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rileylov/gosheet/internal/drawer"
)

// Config holds application configuration.
type Config struct {
	Drawer   DrawerConfig
	Terminal TerminalConfig
	Log      LogConfig
	Tuning   TuningConfig
}

// DrawerConfig holds the panel's behaviour flags.
type DrawerConfig struct {
	Side         string
	Size         string
	ExpandMode   bool `mapstructure:"expand_mode"`
	MinimizeMode bool `mapstructure:"minimize_mode"`
	SwipeToClose bool `mapstructure:"swipe_to_close"`
	Dismissible  bool
	BottomOffset int `mapstructure:"bottom_offset"`
}

// TerminalConfig maps terminal cells onto the engine's pixel units.
type TerminalConfig struct {
	CellWidthPx  float64 `mapstructure:"cell_width_px"`
	CellHeightPx float64 `mapstructure:"cell_height_px"`
}

// LogConfig holds zap settings. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// TuningConfig overrides the gesture thresholds.
type TuningConfig struct {
	MovementDeadzone      float64 `mapstructure:"movement_deadzone"`
	InteractiveDeadzone   float64 `mapstructure:"interactive_deadzone"`
	CloseThreshold        float64 `mapstructure:"close_threshold"`
	VelocityThreshold     float64 `mapstructure:"velocity_threshold"`
	SwipeMinDistance      float64 `mapstructure:"swipe_min_distance"`
	VelocityWindow        int     `mapstructure:"velocity_window"`
	HeaderExtent          float64 `mapstructure:"header_extent"`
	FullMargin            float64 `mapstructure:"full_margin"`
	MinimizeThreshold     float64 `mapstructure:"minimize_threshold"`
	SkipMinimizeVelocity  float64 `mapstructure:"skip_minimize_velocity"`
	SkipMinimizeDistance  float64 `mapstructure:"skip_minimize_distance"`
	HorizontalDominance   float64 `mapstructure:"horizontal_dominance"`
	VerticalDominance     float64 `mapstructure:"vertical_dominance"`
	ShrinkFloor           float64 `mapstructure:"shrink_floor"`
	OverflowSlack         float64 `mapstructure:"overflow_slack"`
	MinimizeProgress      float64 `mapstructure:"minimize_progress"`
	ExpandThreshold       float64 `mapstructure:"expand_threshold"`
	SwipeCloseDistance    float64 `mapstructure:"swipe_close_distance"`
	RestoreThreshold      float64 `mapstructure:"restore_threshold"`
	ExpandedCloseDistance float64 `mapstructure:"expanded_close_distance"`
	ExpandedDockDistance  float64 `mapstructure:"expanded_dock_distance"`
}

func setDefaults(v *viper.Viper) {
	t := drawer.DefaultTuning()

	v.SetDefault("drawer.side", "bottom")
	v.SetDefault("drawer.size", "m")
	v.SetDefault("drawer.expand_mode", true)
	v.SetDefault("drawer.minimize_mode", true)
	v.SetDefault("drawer.swipe_to_close", true)
	v.SetDefault("drawer.dismissible", true)
	v.SetDefault("drawer.bottom_offset", 0)
	v.SetDefault("terminal.cell_width_px", 8.0)
	v.SetDefault("terminal.cell_height_px", 16.0)
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("tuning.movement_deadzone", t.MovementDeadzone)
	v.SetDefault("tuning.interactive_deadzone", t.InteractiveDeadzone)
	v.SetDefault("tuning.close_threshold", t.CloseThreshold)
	v.SetDefault("tuning.velocity_threshold", t.VelocityThreshold)
	v.SetDefault("tuning.swipe_min_distance", t.SwipeMinDistance)
	v.SetDefault("tuning.velocity_window", t.VelocityWindow)
	v.SetDefault("tuning.header_extent", t.HeaderExtent)
	v.SetDefault("tuning.full_margin", t.FullMargin)
	v.SetDefault("tuning.minimize_threshold", t.MinimizeThreshold)
	v.SetDefault("tuning.skip_minimize_velocity", t.SkipMinimizeVelocity)
	v.SetDefault("tuning.skip_minimize_distance", t.SkipMinimizeDistance)
	v.SetDefault("tuning.horizontal_dominance", t.HorizontalDominance)
	v.SetDefault("tuning.vertical_dominance", t.VerticalDominance)
	v.SetDefault("tuning.shrink_floor", t.ShrinkFloor)
	v.SetDefault("tuning.overflow_slack", t.OverflowSlack)
	v.SetDefault("tuning.minimize_progress", t.MinimizeProgress)
	v.SetDefault("tuning.expand_threshold", t.ExpandThreshold)
	v.SetDefault("tuning.swipe_close_distance", t.SwipeCloseDistance)
	v.SetDefault("tuning.restore_threshold", t.RestoreThreshold)
	v.SetDefault("tuning.expanded_close_distance", t.ExpandedCloseDistance)
	v.SetDefault("tuning.expanded_dock_distance", t.ExpandedDockDistance)
}

// New returns a viper instance with defaults, the config file location and
// env overrides (prefix GOSHEET_) wired up. The file is not read yet.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	cfgPath := os.Getenv("GOSHEET_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gosheet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GOSHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env.
func Load() (Config, *viper.Viper, error) {
	v := New()
	// a missing file is fine, defaults apply
	_ = v.ReadInConfig()
	c, err := Decode(v)
	if err != nil {
		return Config{}, nil, err
	}
	return c, v, nil
}

// Decode unmarshals and validates the current viper state.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := c.PanelOptions(); err != nil {
		return Config{}, err
	}
	if c.Terminal.CellWidthPx <= 0 || c.Terminal.CellHeightPx <= 0 {
		return Config{}, fmt.Errorf("terminal cell size must be positive, got %vx%v",
			c.Terminal.CellWidthPx, c.Terminal.CellHeightPx)
	}
	return c, nil
}

// Watch re-decodes on every config file change and hands valid results to fn.
// fn runs on viper's watcher goroutine.
func Watch(v *viper.Viper, log *zap.Logger, fn func(Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		c, err := Decode(v)
		if err != nil {
			log.Warn("config reload rejected", zap.String("file", e.Name), zap.Error(err))
			return
		}
		log.Info("config reloaded", zap.String("file", e.Name))
		fn(c)
	})
	v.WatchConfig()
}

// PanelOptions converts the drawer section into engine options.
func (c Config) PanelOptions() (drawer.Options, error) {
	side, err := drawer.ParseSide(c.Drawer.Side)
	if err != nil {
		return drawer.Options{}, fmt.Errorf("drawer.side: %w", err)
	}
	size, err := drawer.ParseSizeClass(c.Drawer.Size)
	if err != nil {
		return drawer.Options{}, fmt.Errorf("drawer.size: %w", err)
	}
	return drawer.Options{
		Side:         side,
		Size:         size,
		ExpandMode:   c.Drawer.ExpandMode,
		MinimizeMode: c.Drawer.MinimizeMode,
		SwipeToClose: c.Drawer.SwipeToClose,
		Dismissible:  c.Drawer.Dismissible,
		Tuning:       c.Tuning.apply(drawer.DefaultTuning()),
	}, nil
}

// apply overlays positive values onto base.
func (tc TuningConfig) apply(base drawer.Tuning) drawer.Tuning {
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&base.MovementDeadzone, tc.MovementDeadzone)
	set(&base.InteractiveDeadzone, tc.InteractiveDeadzone)
	set(&base.CloseThreshold, tc.CloseThreshold)
	set(&base.VelocityThreshold, tc.VelocityThreshold)
	set(&base.SwipeMinDistance, tc.SwipeMinDistance)
	set(&base.HeaderExtent, tc.HeaderExtent)
	set(&base.FullMargin, tc.FullMargin)
	set(&base.MinimizeThreshold, tc.MinimizeThreshold)
	set(&base.SkipMinimizeVelocity, tc.SkipMinimizeVelocity)
	set(&base.SkipMinimizeDistance, tc.SkipMinimizeDistance)
	set(&base.HorizontalDominance, tc.HorizontalDominance)
	set(&base.VerticalDominance, tc.VerticalDominance)
	set(&base.ShrinkFloor, tc.ShrinkFloor)
	set(&base.OverflowSlack, tc.OverflowSlack)
	set(&base.MinimizeProgress, tc.MinimizeProgress)
	set(&base.ExpandThreshold, tc.ExpandThreshold)
	set(&base.SwipeCloseDistance, tc.SwipeCloseDistance)
	set(&base.RestoreThreshold, tc.RestoreThreshold)
	set(&base.ExpandedCloseDistance, tc.ExpandedCloseDistance)
	set(&base.ExpandedDockDistance, tc.ExpandedDockDistance)
	if tc.VelocityWindow > 0 {
		base.VelocityWindow = tc.VelocityWindow
	}
	return base
}

// NewLogger builds a JSON file logger, or a no-op logger when no path is set.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	if c.Path == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{c.Path}
	zc.ErrorOutputPaths = []string{c.Path}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
