// host.go implements host construction and behavior attachment.
//
// Dispatch (Get, Set, Call) lives in dispatch.go and runtime injection in
// dynamic.go; this file owns the per-instance tables they read.

package extension

import (
	"fmt"
	"reflect"
	"sort"
)

// Host is the per-instance state of an object extended with behaviors.
// A Host is not safe for concurrent mutation.
type Host struct {
	reg   *Registry
	class *Class
	owner any

	implement   []string
	constructed bool

	// attached behaviors in attachment order
	names     []string
	behaviors map[string]Behavior

	methods        map[string]boundMethod
	dynamicMethods map[string]Callable

	props        map[string]any
	dynamicProps []string
}

// boundMethod is a behavior method recorded in the host's method registry.
type boundMethod struct {
	behavior string
	fn       Method
}

// New constructs a host of a registered class. owner is the object the host
// acts for; it may implement PropertyGetter, PropertySetter or MethodCaller
// to receive lookups nothing else answers.
func (r *Registry) New(className string, owner any) (*Host, error) {
	c := r.Class(className)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, NormalizeName(className))
	}
	return r.NewHost(c, owner)
}

// NewHost constructs a host of class c, which need not be registered.
//
// Construction runs the extend callbacks of c and its ancestors first, in
// registration order, then attaches every entry of the implement list.
// Callbacks may add entries with Host.Implement.
func (r *Registry) NewHost(c *Class, owner any) (*Host, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil class", ErrUnknownClass)
	}

	h := &Host{
		reg:            r,
		class:          c,
		owner:          owner,
		behaviors:      make(map[string]Behavior),
		methods:        make(map[string]boundMethod),
		dynamicMethods: make(map[string]Callable),
		props:          c.propertyDefaults(),
	}
	h.implement = append(h.implement, c.DefaultImplement()...)

	for _, fn := range r.hostCallbacksFor(c) {
		fn(h)
	}

	for _, use := range h.implement {
		if err := h.ExtendClassWith(use); err != nil {
			return nil, err
		}
	}
	h.constructed = true
	return h, nil
}

// Implement adds behaviors to the host. Inside an extend callback the names
// are queued on the implement list; after construction they are attached
// immediately.
func (h *Host) Implement(names ...string) error {
	if !h.constructed {
		h.implement = append(h.implement, names...)
		return nil
	}
	for _, n := range names {
		if err := h.ExtendClassWith(n); err != nil {
			return err
		}
		h.implement = append(h.implement, n)
	}
	return nil
}

// ImplementList returns the implement list the host was built from,
// including entries added by extend callbacks.
func (h *Host) ImplementList() []string {
	out := make([]string, len(h.implement))
	copy(out, h.implement)
	return out
}

// ExtendClassWith attaches one instance of the named behavior class.
//
// The name may use dot notation. A leading "@" makes the call a no-op when
// the behavior is not registered. Attaching a behavior that is already
// attached returns AlreadyExtendedError.
func (h *Host) ExtendClassWith(name string) error {
	name, soft := splitSoft(NormalizeName(name))
	if name == "" {
		return nil
	}
	if _, ok := h.behaviors[name]; ok {
		return AlreadyExtendedError{Class: h.ClassName(), Behavior: name}
	}

	bc, ok := h.reg.Behavior(name)
	if !ok {
		if soft {
			h.reg.logger.Debug("soft behavior skipped", "class", h.ClassName(), "behavior", name)
			return nil
		}
		return UnknownBehaviorError{Class: h.ClassName(), Behavior: name}
	}

	v, err := bc.New(h)
	if err != nil {
		return fmt.Errorf("class %s: construct behavior %s: %w", h.ClassName(), name, err)
	}
	b, ok := v.(Behavior)
	if !ok || isNilPointer(v) || b.base() == nil {
		return ContractError{Behavior: name, Type: fmt.Sprintf("%T", v)}
	}

	b.base().bind(h, name)
	h.behaviors[name] = b
	h.names = append(h.names, name)
	h.extractMethods(name, b)

	for _, fn := range h.reg.behaviorCallbacksFor(name) {
		fn(b)
	}
	return nil
}

// extractMethods records the behavior's visible methods. A method name that
// an earlier behavior already provides keeps its first owner.
func (h *Host) extractMethods(name string, b Behavior) {
	for method, fn := range b.Methods() {
		if fn == nil || b.IsHiddenMethod(method) {
			continue
		}
		if prev, taken := h.methods[method]; taken {
			h.reg.logger.Debug("behavior method shadowed",
				"class", h.ClassName(), "method", method,
				"owner", prev.behavior, "shadowed", name)
			continue
		}
		h.methods[method] = boundMethod{behavior: name, fn: fn}
	}
}

func isNilPointer(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Registry returns the registry the host was built by.
func (h *Host) Registry() *Registry { return h.reg }

// Class returns the host's class.
func (h *Host) Class() *Class { return h.class }

// ClassName returns the normalised name of the host's class.
func (h *Host) ClassName() string { return NormalizeName(h.class.Name) }

// Owner returns the object the host acts for.
func (h *Host) Owner() any { return h.owner }

// IsClassExtendedWith reports whether the named behavior is attached.
func (h *Host) IsClassExtendedWith(name string) bool {
	_, ok := h.ClassExtension(name)
	return ok
}

// ClassExtension returns the attached instance of the named behavior.
func (h *Host) ClassExtension(name string) (Behavior, bool) {
	name, _ = splitSoft(NormalizeName(name))
	b, ok := h.behaviors[name]
	return b, ok
}

// AsExtension returns the attached behavior whose last name segment is
// short, checking in attachment order. A full name also matches.
func (h *Host) AsExtension(short string) (Behavior, bool) {
	if b, ok := h.ClassExtension(short); ok {
		return b, true
	}
	for _, n := range h.names {
		if shortName(n) == short {
			return h.behaviors[n], true
		}
	}
	return nil, false
}

// Behaviors returns the attached behaviors in attachment order.
func (h *Host) Behaviors() []Behavior {
	out := make([]Behavior, 0, len(h.names))
	for _, n := range h.names {
		out = append(out, h.behaviors[n])
	}
	return out
}

// BehaviorNames returns the attached behavior names in attachment order.
func (h *Host) BehaviorNames() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// MethodOwner returns the behavior that answers name through the method
// registry. Native and dynamic methods are not reported.
func (h *Host) MethodOwner(name string) (string, bool) {
	m, ok := h.methods[name]
	return m.behavior, ok
}

// MethodExists reports whether Call would find name without falling back
// to the owner.
func (h *Host) MethodExists(name string) bool {
	if _, ok := h.class.Method(name); ok {
		return true
	}
	if _, ok := h.methods[name]; ok {
		return true
	}
	_, ok := h.dynamicMethods[name]
	return ok
}

// ClassMethods returns every method name callable on the host, sorted.
func (h *Host) ClassMethods() []string {
	set := make(map[string]bool)
	for _, k := range h.class.lineage() {
		for n := range k.Methods {
			set[n] = true
		}
	}
	for n := range h.methods {
		set[n] = true
	}
	for n := range h.dynamicMethods {
		set[n] = true
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
