// Package registry provides a global registry for solver factories.
// Solvers register themselves in init() functions, allowing the CLI and the
// terminal UI to discover and instantiate them without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
)

// Options is what every factory receives.
type Options struct {
	// Logger receives solver decisions. Nil discards them.
	Logger *log.Logger
	// Seed drives any randomness the solver uses.
	Seed int64
}

// SolverInfo contains metadata about a registered solver.
type SolverInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a solver.
type Factory func(opts Options) arena.Solver

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a solver factory to the registry.
// Typically called from a solver's init() function.
// Panics if a solver with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: solver %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered solvers, sorted by ID.
func List() []SolverInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SolverInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SolverInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// IDs returns the registered solver IDs, sorted.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// Title returns the display name of a solver, or its ID when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

// Create instantiates a new solver by its ID.
// Returns an error if the solver ID is not registered.
func Create(id string, opts Options) (arena.Solver, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown solver %q", id)
	}

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return f(opts), nil
}

// Exists checks if a solver with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Next returns the ID registered after id in List order, wrapping around.
// The terminal UI uses it to cycle through solvers.
func Next(id string) string {
	ids := IDs()
	if len(ids) == 0 {
		return id
	}
	for i, v := range ids {
		if v == id {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}
