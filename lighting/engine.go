package lighting

import "slices"

// Engine is an ordered collection of lights. Each kind keeps insertion
// order; removal is by index and shifts later entries down. The engine puts
// no cap on counts; programs decide how many they sample.
type Engine struct {
	global    GlobalLight
	hasGlobal bool

	directional []DirectionalLight
	positional  []PositionalLight
	spot        []SpotLight
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) SetGlobal(l GlobalLight) {
	e.global = l
	e.hasGlobal = true
}

// ClearGlobal removes the global light.
func (e *Engine) ClearGlobal() {
	e.global = GlobalLight{}
	e.hasGlobal = false
}

// Global returns the global light and whether one is set.
func (e *Engine) Global() (GlobalLight, bool) {
	return e.global, e.hasGlobal
}

// AddDirectional appends l and returns its index.
func (e *Engine) AddDirectional(l DirectionalLight) int {
	e.directional = append(e.directional, l)
	return len(e.directional) - 1
}

func (e *Engine) RemoveDirectional(i int) {
	e.directional = slices.Delete(e.directional, i, i+1)
}

// Directional returns a pointer to the i-th directional light for in-place edits.
// The pointer is invalidated by Add or Remove on the same kind.
func (e *Engine) Directional(i int) *DirectionalLight { return &e.directional[i] }

// Directionals returns the directional lights in insertion order. The slice
// aliases engine storage and must not be appended to.
func (e *Engine) Directionals() []DirectionalLight { return e.directional }

func (e *Engine) NumDirectional() int { return len(e.directional) }

func (e *Engine) AddPositional(l PositionalLight) int {
	e.positional = append(e.positional, l)
	return len(e.positional) - 1
}

func (e *Engine) RemovePositional(i int) {
	e.positional = slices.Delete(e.positional, i, i+1)
}

func (e *Engine) Positional(i int) *PositionalLight { return &e.positional[i] }

func (e *Engine) Positionals() []PositionalLight { return e.positional }

func (e *Engine) NumPositional() int { return len(e.positional) }

func (e *Engine) AddSpot(l SpotLight) int {
	e.spot = append(e.spot, l)
	return len(e.spot) - 1
}

func (e *Engine) RemoveSpot(i int) {
	e.spot = slices.Delete(e.spot, i, i+1)
}

func (e *Engine) Spot(i int) *SpotLight { return &e.spot[i] }

func (e *Engine) Spots() []SpotLight { return e.spot }

func (e *Engine) NumSpot() int { return len(e.spot) }

// Clear removes every light, including the global one.
func (e *Engine) Clear() {
	e.ClearGlobal()
	e.directional = nil
	e.positional = nil
	e.spot = nil
}
