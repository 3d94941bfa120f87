package easel

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for environment overrides read by LoadConfig.
const EnvPrefix = "EASEL"

// Config holds the rendering tunables. A Config is carried by value inside
// the driver environment; there is no process-wide instance.
type Config struct {
	// PerfLimitSizeTotal is the pixel-area budget of a single object cache.
	PerfLimitSizeTotal float64 `toml:"perf_limit_size_total" envconfig:"PERF_LIMIT_SIZE_TOTAL"`
	// MaxCacheSideLimit caps either side of an object cache, in pixels.
	MaxCacheSideLimit float64 `toml:"max_cache_side_limit" envconfig:"MAX_CACHE_SIDE_LIMIT"`
	// MinCacheSideLimit is the floor for either side of a limited cache.
	MinCacheSideLimit float64 `toml:"min_cache_side_limit" envconfig:"MIN_CACHE_SIDE_LIMIT"`
	// CacheShrinkRatio is the fraction of the current cache size below which
	// the cache surface is reallocated smaller.
	CacheShrinkRatio float64 `toml:"cache_shrink_ratio" envconfig:"CACHE_SHRINK_RATIO"`
	// CacheGrowMargin is added to a growing cache surface.
	CacheGrowMargin float64 `toml:"cache_grow_margin" envconfig:"CACHE_GROW_MARGIN"`
	// AliasingLimit pads object caches on every side.
	AliasingLimit float64 `toml:"aliasing_limit" envconfig:"ALIASING_LIMIT"`
	// NumFractionDigits is the precision of serialized numbers.
	NumFractionDigits int `toml:"num_fraction_digits" envconfig:"NUM_FRACTION_DIGITS"`
	// CachesBoundsOfCurve enables memoization of curve bounds.
	CachesBoundsOfCurve bool `toml:"caches_bounds_of_curve" envconfig:"CACHES_BOUNDS_OF_CURVE"`
	// BoundsOfCurveCacheSize bounds the curve-bounds memo.
	BoundsOfCurveCacheSize int `toml:"bounds_of_curve_cache_size" envconfig:"BOUNDS_OF_CURVE_CACHE_SIZE"`
	// DevicePixelRatio is the retina scaling applied by drivers that enable it.
	DevicePixelRatio float64 `toml:"device_pixel_ratio" envconfig:"DEVICE_PIXEL_RATIO"`
	// BrowserShadowBlurConstant scales shadow blur radii.
	BrowserShadowBlurConstant float64 `toml:"browser_shadow_blur_constant" envconfig:"BROWSER_SHADOW_BLUR_CONSTANT"`
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		PerfLimitSizeTotal:        2097152,
		MaxCacheSideLimit:         4096,
		MinCacheSideLimit:         256,
		CacheShrinkRatio:          0.9,
		CacheGrowMargin:           0.1,
		AliasingLimit:             2,
		NumFractionDigits:         4,
		CachesBoundsOfCurve:       false,
		BoundsOfCurveCacheSize:    4096,
		DevicePixelRatio:          1,
		BrowserShadowBlurConstant: 1,
	}
}

// LoadConfig returns DefaultConfig overlaid with the TOML file at path
// (skipped when path is empty or the file does not exist) and then with
// EASEL_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("easel: reading config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("easel: reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	Logger().Debug("config loaded", "path", path, "perfLimit", cfg.PerfLimitSizeTotal)
	return cfg, nil
}

// Validate reports tunables that would break cache sizing.
func (c Config) Validate() error {
	switch {
	case c.PerfLimitSizeTotal <= 0:
		return fmt.Errorf("easel: perf_limit_size_total must be positive, got %v", c.PerfLimitSizeTotal)
	case c.MinCacheSideLimit <= 0 || c.MaxCacheSideLimit < c.MinCacheSideLimit:
		return fmt.Errorf("easel: cache side limits [%v, %v] are invalid", c.MinCacheSideLimit, c.MaxCacheSideLimit)
	case c.CacheShrinkRatio <= 0 || c.CacheShrinkRatio > 1:
		return fmt.Errorf("easel: cache_shrink_ratio must be in (0, 1], got %v", c.CacheShrinkRatio)
	case c.CacheGrowMargin < 0:
		return fmt.Errorf("easel: cache_grow_margin must not be negative, got %v", c.CacheGrowMargin)
	case c.DevicePixelRatio <= 0:
		return fmt.Errorf("easel: device_pixel_ratio must be positive, got %v", c.DevicePixelRatio)
	}
	return nil
}

// WriteTOML encodes c in the format LoadConfig reads.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
