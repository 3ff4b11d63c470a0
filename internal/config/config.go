package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	StaticDir      string        `envconfig:"STATIC_DIR" default:"./web"`
	SessionSecret  string        `envconfig:"SESSION_SECRET" default:"dev-secret-change-in-production"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	TickInterval   time.Duration `envconfig:"TICK_INTERVAL" default:"16ms"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`

	// Read from ENGINE_* variables.
	Engine Engine
}

// Engine holds the tunables of one artboard view.
type Engine struct {
	ArtboardWidth  int           `envconfig:"ARTBOARD_WIDTH" default:"400"`
	ArtboardHeight int           `envconfig:"ARTBOARD_HEIGHT" default:"400"`
	ZoomMin        float64       `envconfig:"ZOOM_MIN" default:"0.25"`
	ZoomMax        float64       `envconfig:"ZOOM_MAX" default:"5"`
	PinchEpsilon   float64       `envconfig:"PINCH_EPSILON" default:"3"`
	ThrottleWindow time.Duration `envconfig:"THROTTLE_WINDOW" default:"10ms"`
	StrokeColor    string        `envconfig:"STROKE_COLOR" default:"lightblue"`
	StrokeWidth    float64       `envconfig:"STROKE_WIDTH" default:"10"`
	StrictMapping  bool          `envconfig:"STRICT_MAPPING" default:"false"`
	Rotation       bool          `envconfig:"ROTATION" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEngine reads only the engine tunables, without the ENGINE_ prefix.
// The wasm build uses it since it has no server settings.
func LoadEngine() (Engine, error) {
	var e Engine
	if err := envconfig.Process("", &e); err != nil {
		return Engine{}, err
	}
	return e, nil
}

// DefaultEngine mirrors the default tags above.
func DefaultEngine() Engine {
	return Engine{
		ArtboardWidth:  400,
		ArtboardHeight: 400,
		ZoomMin:        0.25,
		ZoomMax:        5,
		PinchEpsilon:   3,
		ThrottleWindow: 10 * time.Millisecond,
		StrokeColor:    "lightblue",
		StrokeWidth:    10,
		Rotation:       true,
	}
}

func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
