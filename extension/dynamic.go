// dynamic.go implements runtime injection of properties and methods into a
// single host instance, outside its declared behaviors.

package extension

import (
	"fmt"
	"sort"
)

// Callable is a method attached with AddDynamicMethod: a Method, a MethodRef
// or a BehaviorMethod.
type Callable interface {
	invoke(h *Host, args []any) (any, error)
}

func (m Method) invoke(_ *Host, args []any) (any, error) {
	return m(args...)
}

// MethodRef names a method on another object. Target is a *Host, whose Call
// is used, or a Behavior, whose exported methods are used.
type MethodRef struct {
	Target any
	Name   string
}

func (r MethodRef) invoke(_ *Host, args []any) (any, error) {
	switch t := r.Target.(type) {
	case *Host:
		return t.Call(r.Name, args...)
	case Behavior:
		if isNilPointer(t) || t.base() == nil {
			return nil, ContractError{Type: fmt.Sprintf("%T", t)}
		}
		if !t.IsHiddenMethod(r.Name) {
			if m := t.Methods()[r.Name]; m != nil {
				return m(args...)
			}
		}
		return nil, UndefinedMethodError{Class: t.base().BehaviorName(), Method: r.Name}
	default:
		return nil, UndefinedMethodError{Class: fmt.Sprintf("%T", r.Target), Method: r.Name}
	}
}

// BehaviorMethod names a method of a behavior attached to the same host.
type BehaviorMethod struct {
	Behavior string
	Name     string
}

func (r BehaviorMethod) invoke(h *Host, args []any) (any, error) {
	b, ok := h.ClassExtension(r.Behavior)
	if !ok {
		return nil, UnknownBehaviorError{Class: h.ClassName(), Behavior: r.Behavior}
	}
	return MethodRef{Target: b, Name: r.Name}.invoke(h, args)
}

// AddDynamicMethod attaches fn under name on this host only. Dynamic methods
// are consulted after native and behavior methods, so they never shadow
// either; adding the same name again replaces the earlier dynamic method.
//
// A BehaviorMethod is resolved against the attached behaviors immediately
// and fails with UnknownBehaviorError when the behavior is not attached.
func (h *Host) AddDynamicMethod(name string, fn Callable) error {
	if name == "" {
		return fmt.Errorf("class %s: dynamic method needs a name", h.ClassName())
	}
	switch c := fn.(type) {
	case nil:
		return fmt.Errorf("class %s: dynamic method %s is nil", h.ClassName(), name)
	case Method:
		if c == nil {
			return fmt.Errorf("class %s: dynamic method %s is nil", h.ClassName(), name)
		}
	case BehaviorMethod:
		b, ok := h.ClassExtension(c.Behavior)
		if !ok {
			return UnknownBehaviorError{Class: h.ClassName(), Behavior: c.Behavior}
		}
		fn = MethodRef{Target: b, Name: c.Name}
	}
	h.dynamicMethods[name] = fn
	return nil
}

// DynamicMethods returns the names of dynamically added methods, sorted.
func (h *Host) DynamicMethods() []string {
	out := make([]string, 0, len(h.dynamicMethods))
	for n := range h.dynamicMethods {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// AddDynamicProperty adds a property to this host only, bypassing the guard
// that stops Set from creating names. A property that is already dynamic is
// left alone, and a declared property keeps its current value.
func (h *Host) AddDynamicProperty(name string, value any) {
	for _, n := range h.dynamicProps {
		if n == name {
			return
		}
	}
	if _, declared := h.props[name]; !declared {
		h.props[name] = value
	}
	h.dynamicProps = append(h.dynamicProps, name)
}

// DynamicProperties returns the dynamically added properties and their
// current values.
func (h *Host) DynamicProperties() map[string]any {
	out := make(map[string]any, len(h.dynamicProps))
	for _, n := range h.dynamicProps {
		out[n] = h.props[n]
	}
	return out
}
