package pddl

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options controls the preprocessing pipeline. The zero value is the
// default configuration: clean constant handling, no table dump, no-op
// logger. The YAML-visible fields let a driver persist the compatibility
// switches alongside its other configuration.
type Options struct {
	// LegacyConstantBreak reproduces the reference encoder's handling of a
	// unary inertia literal whose argument is a constant: the whole split
	// chain of the operator is abandoned instead of skipping the literal.
	LegacyConstantBreak bool `yaml:"legacy_constant_break"`

	// DumpTables logs every non-zero predicate-table counter after the
	// tables are built.
	DumpTables bool `yaml:"dump_tables"`

	logger *zap.Logger
}

// Option mutates the pipeline options.
type Option func(*Options)

// WithLogger routes pipeline logging through the given logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithLegacyConstantBreak enables bug-compatible handling of constant
// arguments in unary inertia literals.
func WithLegacyConstantBreak() Option {
	return func(o *Options) { o.LegacyConstantBreak = true }
}

// WithTableDump enables the predicate-table debug dump.
func WithTableDump() Option {
	return func(o *Options) { o.DumpTables = true }
}

// WithOptions applies a previously decoded Options value, preserving any
// logger already configured.
func WithOptions(options Options) Option {
	return func(o *Options) {
		logger := o.logger
		*o = options
		if o.logger == nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// OptionsFromYAML decodes pipeline options from YAML.
func OptionsFromYAML(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("pddl: decode options: %w", err)
	}
	return o, nil
}

// ToYAML encodes the options to YAML.
func (o Options) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("pddl: encode options: %w", err)
	}
	return data, nil
}
