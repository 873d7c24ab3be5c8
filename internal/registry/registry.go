// Package registry provides a global registry for level factories.
// Levels register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Game is the interface every playable level implements.
// Levels contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "run1").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Morning").
	Title() string

	// Reset initializes or resets the level.
	// Called once at start and again when retrying after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current state (score, lives, game over, paused).
	State() core.GameState
}

// Pointer is implemented by games driven by touches in view coordinates.
// The platform uses it to turn mouse clicks and keys into touches.
type Pointer interface {
	// CellTouch converts a screen cell to a touch. ok is false outside the view.
	CellTouch(col, row int) (t core.Touch, ok bool)

	// ControlTouch returns a touch that presses the given control.
	ControlTouch(c core.Control) core.Touch
}

// Summarizer is implemented by games that can describe the current run in
// one line. The platform logs it when a run ends.
type Summarizer interface {
	Summary() string
}

// GameInfo contains metadata about a registered level.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a level.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Panics if a level with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered levels, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new level by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
