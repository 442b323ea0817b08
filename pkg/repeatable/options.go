package repeatable

import (
	"strings"

	"go.uber.org/zap"
)

// Markers names the classes that identify field-list parts in the markup.
type Markers struct {
	Container string `json:"container" yaml:"container" koanf:"container"`
	Row       string `json:"row" yaml:"row" koanf:"row"`
	Add       string `json:"add" yaml:"add" koanf:"add"`
	Remove    string `json:"remove" yaml:"remove" koanf:"remove"`
}

// DefaultMarkers returns the class names emitted by the widget package.
func DefaultMarkers() Markers {
	return Markers{
		Container: "field-list",
		Row:       "field-list-row",
		Add:       "field-list-add",
		Remove:    "field-list-remove",
	}
}

// Resolve fills blank entries from DefaultMarkers.
func (m Markers) Resolve() Markers {
	defaults := DefaultMarkers()
	if m.Container = strings.TrimSpace(m.Container); m.Container == "" {
		m.Container = defaults.Container
	}
	if m.Row = strings.TrimSpace(m.Row); m.Row == "" {
		m.Row = defaults.Row
	}
	if m.Add = strings.TrimSpace(m.Add); m.Add == "" {
		m.Add = defaults.Add
	}
	if m.Remove = strings.TrimSpace(m.Remove); m.Remove == "" {
		m.Remove = defaults.Remove
	}
	return m
}

type Option func(*config)

type config struct {
	markers        Markers
	logger         *zap.Logger
	controlReindex bool
}

func newConfig(options []Option) config {
	cfg := config{
		markers: DefaultMarkers(),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.markers = cfg.markers.Resolve()
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// WithMarkers overrides the class names used to find containers, rows and
// affordances. Blank entries keep their defaults.
func WithMarkers(markers Markers) Option {
	return func(cfg *config) {
		cfg.markers = markers
	}
}

// WithLogger attaches a logger. Operations log at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithControlReindex makes Remove rewrite the control names of surviving rows
// as well as their ids. By default only row ids are renumbered and control
// names keep the index they were rendered or cloned with.
func WithControlReindex(enabled bool) Option {
	return func(cfg *config) {
		cfg.controlReindex = enabled
	}
}
