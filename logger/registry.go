package logger

import (
	"sort"
	"sync"
)

// registry holds per-component loggers so stages built far from main can
// share the CLI's configured output.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. Unknown names fall back to the global logger
// tagged with the requested component.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterComponents registers a component logger for each name, derived from
// the current global logger. Call it after Init.
func RegisterComponents(names ...string) {
	base := GetGlobalLogger()
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}

// Registered returns the sorted names of all registered loggers.
func Registered() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.loggers))
	for name := range registry.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetRegistry() {
	registry.mu.Lock()
	registry.loggers = make(map[string]*Logger)
	registry.mu.Unlock()
}
