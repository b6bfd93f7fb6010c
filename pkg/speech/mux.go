package speech

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// DefaultMux is the registry used by New, Handle and Names.
var DefaultMux = NewMux()

// Handle registers a factory for the given engine name with the default mux.
func Handle(name string, factory Factory) error {
	return DefaultMux.Handle(name, factory)
}

// HandleFunc registers a FactoryFunc for the given engine name with the
// default mux.
func HandleFunc(name string, f FactoryFunc) error {
	return DefaultMux.Handle(name, f)
}

// New creates the engine named by cfg.Engine using the default mux.
func New(cfg Config, logger *slog.Logger) (Engine, error) {
	return DefaultMux.New(cfg, logger)
}

// Names returns the engine names registered with the default mux.
func Names() []string {
	return DefaultMux.Names()
}

// Factory creates engines.
type Factory interface {
	NewEngine(cfg Config, logger *slog.Logger) (Engine, error)
}

// FactoryFunc is an adapter to allow the use of ordinary functions as
// Factories.
type FactoryFunc func(cfg Config, logger *slog.Logger) (Engine, error)

// NewEngine calls the underlying function.
func (f FactoryFunc) NewEngine(cfg Config, logger *slog.Logger) (Engine, error) {
	return f(cfg, logger)
}

// Mux maps engine names to factories.
type Mux struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewMux creates an empty Mux.
func NewMux() *Mux {
	return &Mux{factories: make(map[string]Factory)}
}

// Handle registers factory under name. Registering a name twice is an error.
func (m *Mux) Handle(name string, factory Factory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("speech: invalid registration for %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.factories[name]; ok {
		return fmt.Errorf("speech: engine %q already registered", name)
	}
	m.factories[name] = factory
	return nil
}

// New creates the engine named by cfg.Engine.
func (m *Mux) New(cfg Config, logger *slog.Logger) (Engine, error) {
	m.mu.RLock()
	factory, ok := m.factories[cfg.Engine]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, cfg.Engine, m.Names())
	}
	logger = loggerOrDefault(logger)
	eng, err := factory.NewEngine(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("speech: create %s engine: %w", cfg.Engine, err)
	}
	return eng, nil
}

// Names returns the registered engine names in sorted order.
func (m *Mux) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func mustHandle(name string, f FactoryFunc) {
	if err := HandleFunc(name, f); err != nil {
		panic(err)
	}
}
