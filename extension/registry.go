// registry.go implements the class and behavior catalogs and the extend
// callback tables.
//
// Separated from host.go to isolate shared state and its locking. A Registry
// is owned by the application root and passed to whatever constructs hosts;
// there is no package-level registry.
//
// Design: registration panics on duplicates, following database/sql.Register.
// Registration happens while the program wires itself up, so a duplicate
// name is a programmer mistake rather than a runtime condition. Behavior
// registration order is preserved so listings are deterministic.

package extension

import (
	"log/slog"
	"sync"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug records about soft-skipped
// behaviors and static method discovery.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDiscoverHook installs a function called each time the static method
// table of a host class is built. Tests use it to count discoveries.
func WithDiscoverHook(fn func(class string)) Option {
	return func(r *Registry) { r.onDiscover = fn }
}

// Registry holds host classes, behavior classes, extend callbacks and the
// static method cache. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	classes   map[string]*Class
	behaviors map[string]BehaviorClass
	order     []string // behavior registration order

	hostCallbacks     map[string][]func(*Host)
	behaviorCallbacks map[string][]func(Behavior)

	static map[string]map[string]string // host class -> method -> behavior

	logger     *slog.Logger
	onDiscover func(class string)
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes:           make(map[string]*Class),
		behaviors:         make(map[string]BehaviorClass),
		hostCallbacks:     make(map[string][]func(*Host)),
		behaviorCallbacks: make(map[string][]func(Behavior)),
		static:            make(map[string]map[string]string),
		logger:            slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterClass adds a host class. The class name is normalised in place.
// It panics on a nil class, an empty name or a duplicate name.
func (r *Registry) RegisterClass(c *Class) {
	if c == nil {
		panic("extension: nil class")
	}
	name := NormalizeName(c.Name)
	if name == "" {
		panic("extension: class registered without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[name]; exists {
		panic("extension: class already registered: " + name)
	}
	c.Name = name
	r.classes[name] = c
}

// Class returns a registered host class, or nil.
func (r *Registry) Class(name string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[NormalizeName(name)]
}

// RegisterBehavior adds a behavior class. It panics on an empty name, a nil
// constructor or a duplicate name.
func (r *Registry) RegisterBehavior(bc BehaviorClass) {
	name, _ := splitSoft(NormalizeName(bc.Name))
	if name == "" {
		panic("extension: behavior registered without a name")
	}
	if bc.New == nil {
		panic("extension: behavior " + name + " has no constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.behaviors[name]; exists {
		panic("extension: behavior already registered: " + name)
	}
	bc.Name = name
	if bc.Parent != "" {
		bc.Parent, _ = splitSoft(NormalizeName(bc.Parent))
	}
	r.behaviors[name] = bc
	r.order = append(r.order, name)
}

// Behavior returns a registered behavior class. A soft marker on name is ignored.
func (r *Registry) Behavior(name string) (BehaviorClass, bool) {
	name, _ = splitSoft(NormalizeName(name))

	r.mu.RLock()
	defer r.mu.RUnlock()
	bc, ok := r.behaviors[name]
	return bc, ok
}

// Behaviors returns all behavior classes in registration order.
func (r *Registry) Behaviors() []BehaviorClass {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]BehaviorClass, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.behaviors[name])
	}
	return out
}

// BehaviorNames returns the names of all behavior classes in registration order.
func (r *Registry) BehaviorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Extend registers fn to run against every host constructed afterwards whose
// class, or one of whose ancestors, is named class. Hosts that already exist
// are not affected.
func (r *Registry) Extend(class string, fn func(*Host)) {
	if fn == nil {
		return
	}
	class = NormalizeName(class)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.hostCallbacks[class] = append(r.hostCallbacks[class], fn)
}

// ExtendBehavior registers fn to run against every behavior instance of the
// named class, or of a class whose parent chain includes it, attached afterwards.
func (r *Registry) ExtendBehavior(name string, fn func(Behavior)) {
	if fn == nil {
		return
	}
	name, _ = splitSoft(NormalizeName(name))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.behaviorCallbacks[name] = append(r.behaviorCallbacks[name], fn)
}

// Clear drops every extend callback and the static method cache. Class and
// behavior catalogs are kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hostCallbacks = make(map[string][]func(*Host))
	r.behaviorCallbacks = make(map[string][]func(Behavior))
	r.static = make(map[string]map[string]string)
}

// hostCallbacksFor snapshots the callbacks that apply to a new host of class
// c, class first then ancestors. The snapshot lets callbacks use the registry.
func (r *Registry) hostCallbacksFor(c *Class) []func(*Host) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []func(*Host)
	for _, k := range c.lineage() {
		out = append(out, r.hostCallbacks[NormalizeName(k.Name)]...)
	}
	return out
}

// behaviorCallbacksFor snapshots the callbacks for a behavior class and its
// parents. A parent cycle is cut at the first repeated name.
func (r *Registry) behaviorCallbacksFor(name string) []func(Behavior) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []func(Behavior)
	seen := make(map[string]bool)
	for n := name; n != "" && !seen[n]; {
		seen[n] = true
		out = append(out, r.behaviorCallbacks[n]...)
		n = r.behaviors[n].Parent
	}
	return out
}
