// Package extension lets a host object borrow methods and properties from
// behavior objects attached to it at construction time.
//
// A host class declares an ordered implement list of behavior class names.
// Every new host gets exactly one instance of each listed behavior, and the
// host answers Get, Set, Call and static calls by dispatching through a
// per-instance capability registry instead of inheritance:
//
//	reg := extension.NewRegistry()
//	reg.RegisterBehavior(extension.BehaviorClass{
//		Name: "Acme.Sluggable",
//		New:  func(h *extension.Host) (any, error) { return &Sluggable{}, nil },
//	})
//	reg.RegisterClass(&extension.Class{Name: "Acme.Post", Implement: []string{"Acme.Sluggable"}})
//
//	post, err := reg.New("Acme.Post", nil)
//	slug, err := post.Call("slugify", "Hello World")
//
// Process-wide state (extend callbacks, the static method cache) lives in a
// Registry owned by the application rather than in package globals, so tests
// build a fresh Registry or call Registry.Clear.
package extension

// Method is a callable exported by a behavior or attached to a host at runtime.
type Method func(args ...any) (any, error)

// NativeMethod is a method declared directly on a host class. It receives
// the host it was called on.
type NativeMethod func(h *Host, args ...any) (any, error)

// StaticMethod is a class-level method offered by a behavior class.
type StaticMethod func(call StaticCall, args ...any) (any, error)

// StaticCall describes the class a static method was invoked through.
type StaticCall struct {
	// CalledClass is the host class that received the call, not the
	// behavior class that implements it.
	CalledClass string
	Registry    *Registry
}

// Behavior is implemented by every object attached to a host.
//
// The unexported method can only be satisfied by embedding Base, which
// carries the hidden-method and property bookkeeping the host relies on.
type Behavior interface {
	// Methods returns the methods this behavior offers to its host, keyed by
	// the name callers use with Host.Call.
	Methods() map[string]Method
	IsHiddenMethod(name string) bool
	Property(name string) (any, bool)
	SetProperty(name string, value any) bool
	base() *Base
}

// Base must be embedded by every behavior.
type Base struct {
	host        *Host
	name        string
	hidden      map[string]bool
	props       map[string]any
	propOrder   []string
	hiddenProps map[string]bool
}

func (b *Base) base() *Base { return b }

func (b *Base) bind(h *Host, name string) {
	b.host = h
	b.name = name
}

// Host returns the host this behavior is attached to, or nil before attachment.
func (b *Base) Host() *Host { return b.host }

// BehaviorName returns the normalised class name the behavior was attached under.
func (b *Base) BehaviorName() string { return b.name }

// Methods returns no methods. Behaviors override it to export methods.
func (b *Base) Methods() map[string]Method { return nil }

// HideMethod keeps the named methods out of the host's method registry.
func (b *Base) HideMethod(names ...string) {
	if b.hidden == nil {
		b.hidden = make(map[string]bool, len(names))
	}
	for _, n := range names {
		b.hidden[n] = true
	}
}

// IsHiddenMethod reports whether name was hidden with HideMethod.
func (b *Base) IsHiddenMethod(name string) bool {
	return b.hidden[name]
}

// DeclareProperty exposes a property to the host with an initial value.
// Declaring an existing property resets its value.
func (b *Base) DeclareProperty(name string, value any) {
	if b.props == nil {
		b.props = make(map[string]any)
	}
	if _, ok := b.props[name]; !ok {
		b.propOrder = append(b.propOrder, name)
	}
	b.props[name] = value
}

// HideProperty keeps a declared property from being read or written through
// the host. The behavior itself still sees it.
func (b *Base) HideProperty(name string) {
	if b.hiddenProps == nil {
		b.hiddenProps = make(map[string]bool)
	}
	b.hiddenProps[name] = true
}

// Property returns the value of a declared, visible property.
func (b *Base) Property(name string) (any, bool) {
	if b.hiddenProps[name] {
		return nil, false
	}
	v, ok := b.props[name]
	return v, ok
}

// SetProperty assigns a declared, visible property. It reports false when
// the behavior does not expose name.
func (b *Base) SetProperty(name string, value any) bool {
	if b.hiddenProps[name] {
		return false
	}
	if _, ok := b.props[name]; !ok {
		return false
	}
	b.props[name] = value
	return true
}

// PropertyNames returns the visible declared properties in declaration order.
func (b *Base) PropertyNames() []string {
	names := make([]string, 0, len(b.propOrder))
	for _, n := range b.propOrder {
		if !b.hiddenProps[n] {
			names = append(names, n)
		}
	}
	return names
}
