package config

import (
	"github.com/hashicorp/go-hclog"
	"github.com/karsanda/barong/packages/storage"
)

// Resolver locates and merges project configuration. It holds no state
// between calls; every resolution builds fresh values.
type Resolver struct {
	store    storage.Store
	logger   hclog.Logger
	defaults map[string]any
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l hclog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDefaults replaces the library defaults merged into every base config.
func WithDefaults(defaults map[string]any) Option {
	return func(r *Resolver) {
		r.defaults = defaults
	}
}

// NewResolver creates a resolver reading through store.
func NewResolver(store storage.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		logger:   hclog.NewNullLogger(),
		defaults: DefaultValues(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates the files for selector under cwd and merges them.
func (r *Resolver) Resolve(cwd, selector string) (*BaseConfig, ConfigFileSet, error) {
	files, err := r.ConfigFiles(cwd, selector)
	if err != nil {
		return nil, ConfigFileSet{}, err
	}

	cfg, err := r.ReadConfig(cwd, files)
	if err != nil {
		return nil, files, err
	}

	return cfg, files, nil
}
