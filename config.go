// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package vmcore

// config holds the resolved configuration for a VM started via Start.
type config struct {
	substrate Substrate
	loader    ModuleLoader
	logger    Logger
}

// Option configures a VM at Start, in the same functional-options
// shape as the teacher's LoopOption.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithSubstrate overrides the default OS-backed Substrate. Tests use
// this to inject a fake substrate with deterministic, synchronous-ish
// completion timing.
func WithSubstrate(s Substrate) Option {
	return optionFunc(func(c *config) { c.substrate = s })
}

// WithModuleLoader overrides the default in-memory ModuleLoader.
func WithModuleLoader(l ModuleLoader) Option {
	return optionFunc(func(c *config) { c.loader = l })
}

// WithLogger overrides the package default no-op Logger.
func WithLogger(l Logger) Option {
	return optionFunc(func(c *config) { c.logger = l })
}

func resolveOptions(opts []Option) *config {
	c := &config{
		substrate: NewOSSubstrate(),
		loader:    NewInMemoryModuleLoader(),
		logger:    noopLogger{},
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.apply(c)
	}
	return c
}
