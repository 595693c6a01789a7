// Package settings exposes configuration objects addressed by dotted
// names, with dotted-path access into their trees.
//
// All mutation is in-memory until Save; Set and Clear return the object
// so callers can chain Set(...).Set(...).Save(...). Failures inside a
// chain stick to the object and surface on the next call with an error
// result, so a chain never loses its first error.
package settings

import (
	"log/slog"

	"coffer/internal/confname"
	"coffer/internal/faults"
	"coffer/internal/logging"
	"coffer/internal/storage"
)

// Factory constructs the Object implementation the service hands out.
type Factory func(name string, store *storage.Manager, logger *slog.Logger) Object

// Service opens configuration objects over a storage manager.
type Service struct {
	store   *storage.Manager
	logger  *slog.Logger
	factory Factory
}

// Option adjusts service construction.
type Option func(*Service)

// WithFactory swaps the Object implementation. The default factory
// builds the standard lazily-loaded object.
func WithFactory(factory Factory) Option {
	return func(s *Service) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// NewService wires the configuration-object entry point. A nil logger
// disables logging.
func NewService(store *storage.Manager, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		store:   store,
		logger:  logging.NewComponentLogger(logger, "settings"),
		factory: newObject,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Open returns the configuration object stored under name. The name is
// validated here once; every object the service hands out addresses a
// well-formed record.
func (s *Service) Open(name string) (Object, error) {
	if err := confname.Validate(name); err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "settings", "open", "", err)
	}
	return s.factory(name, s.store, s.logger), nil
}
