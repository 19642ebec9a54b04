package canvasview

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultDragThreshold = 10.0 // pixels from the down point before a pan starts
	DefaultThreshold     = 1.0  // pan flush granularity in pixels
	DefaultZoomValue     = 0.9  // zoom base; one wheel notch multiplies or divides by it
	DefaultTransition    = 0.12 // seconds of eased transform transition for mouse input
)

// DefaultZoomRange is the default exponent pair applied to ZoomValue.
var DefaultZoomRange = [2]float64{-5, 10}

// Config holds the constructor-time constants of a Controller.
//
// The scale is clamped to [ZoomValue^ZoomRange[1], ZoomValue^ZoomRange[0]].
// With ZoomValue below 1 the smaller exponent yields the larger scale, so
// ZoomRange[0] must stay below ZoomRange[1].
type Config struct {
	DragThreshold float64    `yaml:"dragThreshold"`
	Threshold     float64    `yaml:"threshold"`
	ZoomValue     float64    `yaml:"zoomValue"`
	ZoomRange     [2]float64 `yaml:"zoomRange"`
	// Transition is the duration in seconds of the eased transform update
	// for mouse and wheel input. Zero snaps. Touch input always snaps.
	Transition float32 `yaml:"transition"`
	// PinchPan lets the pinch anchor follow the live midpoint of the two
	// fingers instead of staying at the midpoint where the pinch began.
	PinchPan bool `yaml:"pinchPan"`

	// TransitionEase is the easing curve for Transition. Nil uses ease.OutQuint.
	TransitionEase ease.TweenFunc `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DragThreshold: DefaultDragThreshold,
		Threshold:     DefaultThreshold,
		ZoomValue:     DefaultZoomValue,
		ZoomRange:     DefaultZoomRange,
		Transition:    DefaultTransition,
	}
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("canvasview config: %s %s", e.Field, e.Reason)
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	switch {
	case !finite(c.DragThreshold) || c.DragThreshold <= 0:
		return &ConfigError{Field: "dragThreshold", Reason: "must be greater than zero"}
	case !finite(c.Threshold) || c.Threshold <= 0:
		return &ConfigError{Field: "threshold", Reason: "must be greater than zero"}
	case !finite(c.ZoomValue) || c.ZoomValue <= 0 || c.ZoomValue >= 1:
		return &ConfigError{Field: "zoomValue", Reason: "must be in (0, 1)"}
	case !finite(c.ZoomRange[0]) || !finite(c.ZoomRange[1]) || c.ZoomRange[0] >= c.ZoomRange[1]:
		return &ConfigError{Field: "zoomRange", Reason: "must be an increasing exponent pair"}
	case c.Transition < 0:
		return &ConfigError{Field: "transition", Reason: "must not be negative"}
	}
	lo, hi := c.ScaleBounds()
	if hi-lo < 0.01 {
		return &ConfigError{Field: "zoomRange", Reason: "spans less than one scale step (0.01)"}
	}
	return nil
}

// ScaleBounds returns the inclusive scale range [min, max].
func (c Config) ScaleBounds() (lo, hi float64) {
	return math.Pow(c.ZoomValue, c.ZoomRange[1]), math.Pow(c.ZoomValue, c.ZoomRange[0])
}

// normalized returns a copy where every invalid field is replaced by its
// default, logging each replacement.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if !finite(c.DragThreshold) || c.DragThreshold <= 0 {
		Logger().Warn("canvasview: invalid dragThreshold, using default", "value", c.DragThreshold)
		c.DragThreshold = d.DragThreshold
	}
	if !finite(c.Threshold) || c.Threshold <= 0 {
		Logger().Warn("canvasview: invalid threshold, using default", "value", c.Threshold)
		c.Threshold = d.Threshold
	}
	if !finite(c.ZoomValue) || c.ZoomValue <= 0 || c.ZoomValue >= 1 {
		Logger().Warn("canvasview: invalid zoomValue, using default", "value", c.ZoomValue)
		c.ZoomValue = d.ZoomValue
	}
	if c.Transition < 0 {
		c.Transition = 0
	}
	if c.TransitionEase == nil {
		c.TransitionEase = ease.OutQuint
	}
	if err := c.Validate(); err != nil {
		Logger().Warn("canvasview: invalid zoomRange, using default", "value", c.ZoomRange, "err", err)
		c.ZoomRange = d.ZoomRange
	}
	return c
}

// LoadConfig parses YAML into a Config. Fields absent from the document keep
// their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file. A missing file yields the defaults.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
