package internal

import "github.com/halvard/mnemo/internal/toolgen"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	backend toolgen.Backend
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithBackend overrides the AnkiConnect backend, mainly for tests.
func WithBackend(b toolgen.Backend) Option {
	return func(a *application) {
		a.backend = b
	}
}
