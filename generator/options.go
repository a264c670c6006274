package generator

import (
	"context"
	"slices"
	"strings"

	"github.com/erraggy/restdoc/assembler"
	"github.com/erraggy/restdoc/binder"
	"github.com/erraggy/restdoc/internal/options"
	"github.com/erraggy/restdoc/oaserrors"
	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/synthesizer"
)

// Default document metadata.
const (
	DefaultTitle   = "REST API"
	DefaultVersion = "1.0"
)

// DefaultConcurrency bounds the number of operations bound in parallel.
const DefaultConcurrency = 8

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	model    *sourcemodel.Model

	logger      sourcemodel.Logger
	concurrency int

	implicitPaths bool
	duplicates    binder.DuplicatePolicy
	flatten       bool
	schemaNaming  synthesizer.SchemaNamingStrategy
	genericNaming synthesizer.GenericNamingStrategy
	allSchemas    bool
	collisions    assembler.CollisionStrategy

	title       string
	version     string
	description string
	security    bool
	strictMode  bool
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		logger:        sourcemodel.NopLogger{},
		concurrency:   DefaultConcurrency,
		duplicates:    binder.DuplicateExclude,
		schemaNaming:  synthesizer.SchemaNamingSimple,
		genericNaming: synthesizer.GenericNamingUnderscore,
		collisions:    assembler.StrategyAcceptLeft,
		title:         DefaultTitle,
		version:       DefaultVersion,
		security:      true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireSingleSource("input",
		"must specify an input source (use WithFilePath, WithBytes or WithModel)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.data != nil, cfg.model != nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load returns the validated Source Model named by the input option.
func (cfg *generateConfig) load(ctx context.Context) (*sourcemodel.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case cfg.filePath != nil:
		return sourcemodel.LoadFile(*cfg.filePath)
	case cfg.data != nil:
		return sourcemodel.Parse(cfg.data, "<input>")
	default:
		if err := cfg.model.Validate(); err != nil {
			return nil, err
		}
		return cfg.model, nil
	}
}

// WithFilePath specifies a Source Model file as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies an in-memory YAML or JSON Source Model document as
// the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.data = data
		return nil
	}
}

// WithModel specifies an already-built Source Model as the input source.
// The model is validated before use.
func WithModel(m *sourcemodel.Model) Option {
	return func(cfg *generateConfig) error {
		if m == nil {
			return &oaserrors.ConfigError{Option: "model", Message: "model is nil"}
		}
		cfg.model = m
		return nil
	}
}

// WithLogger sets the logger passed to every stage.
func WithLogger(l sourcemodel.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = sourcemodel.OrNop(l)
		return nil
	}
}

// WithConcurrency bounds parallel binding and schema warming.
// Default: DefaultConcurrency
func WithConcurrency(n int) Option {
	return func(cfg *generateConfig) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithImplicitPaths mounts verb methods without a path marker at their
// lower-cased name minus the verb prefix.
func WithImplicitPaths(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.implicitPaths = enabled
		return nil
	}
}

// WithDuplicatePolicy sets how duplicate path parameter names are handled.
// Default: binder.DuplicateExclude
func WithDuplicatePolicy(p binder.DuplicatePolicy) Option {
	return func(cfg *generateConfig) error {
		if !slices.Contains(binder.ValidDuplicatePolicies(), string(p)) {
			return &oaserrors.ConfigError{
				Option:  "duplicate-policy",
				Value:   p,
				Message: "must be one of " + strings.Join(binder.ValidDuplicatePolicies(), ", "),
			}
		}
		cfg.duplicates = p
		return nil
	}
}

// WithFlattenInheritance copies supertype properties into each schema
// instead of referencing the supertype schema.
func WithFlattenInheritance(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.flatten = enabled
		return nil
	}
}

// WithSchemaNaming sets the schema naming strategy by name.
// Default: "simple"
func WithSchemaNaming(name string) Option {
	return func(cfg *generateConfig) error {
		s, err := synthesizer.ParseSchemaNaming(name)
		if err != nil {
			return err
		}
		cfg.schemaNaming = s
		return nil
	}
}

// WithGenericNaming sets the generic instance naming strategy by name.
// Default: "underscore"
func WithGenericNaming(name string) Option {
	return func(cfg *generateConfig) error {
		s, err := synthesizer.ParseGenericNaming(name)
		if err != nil {
			return err
		}
		cfg.genericNaming = s
		return nil
	}
}

// WithAllSchemas emits a schema for every non-generic data class in the
// model, not only the reachable ones.
func WithAllSchemas(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.allSchemas = enabled
		return nil
	}
}

// WithCollisionStrategy sets the path collision strategy by name.
// Default: "accept-left"
func WithCollisionStrategy(name string) Option {
	return func(cfg *generateConfig) error {
		name = strings.TrimSpace(name)
		if name == "" {
			cfg.collisions = assembler.StrategyAcceptLeft
			return nil
		}
		if !assembler.IsValidStrategy(name) {
			return &oaserrors.ConfigError{
				Option:  "collision-strategy",
				Value:   name,
				Message: "must be one of " + strings.Join(assembler.ValidStrategies(), ", "),
			}
		}
		cfg.collisions = assembler.CollisionStrategy(name)
		return nil
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(cfg *generateConfig) error {
		cfg.title = title
		return nil
	}
}

// WithVersion sets the document version.
func WithVersion(version string) Option {
	return func(cfg *generateConfig) error {
		cfg.version = version
		return nil
	}
}

// WithDescription sets the document description.
func WithDescription(description string) Option {
	return func(cfg *generateConfig) error {
		cfg.description = description
		return nil
	}
}

// WithSecurity enables the global bearer security scheme.
// Default: true
func WithSecurity(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.security = enabled
		return nil
	}
}

// WithStrictMode makes generation fail when any error-severity diagnostic
// was raised. The result is still returned.
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}
