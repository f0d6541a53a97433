// dispatch.go resolves property reads, property writes and method calls
// against the host, its behaviors and the owner's fallbacks.
//
// Resolution order for calls: native class methods, then the behavior
// method registry, then dynamic methods, then the owner's MethodCaller.
// Properties: host properties (declared or dynamic), then behaviors in
// attachment order, then the owner's PropertyGetter or PropertySetter.

package extension

// PropertyGetter is implemented by owners that answer property reads the
// host and its behaviors cannot.
type PropertyGetter interface {
	FallbackGet(name string) (any, bool)
}

// PropertySetter is implemented by owners that accept property writes. It
// reports whether the write was taken.
type PropertySetter interface {
	FallbackSet(name string, value any) bool
}

// MethodCaller is implemented by owners that answer calls the host cannot.
// handled is false when the owner does not know the method either.
type MethodCaller interface {
	FallbackCall(name string, args ...any) (result any, handled bool, err error)
}

// Get returns the named property, or nil when nothing exposes it.
func (h *Host) Get(name string) any {
	v, _ := h.Lookup(name)
	return v
}

// Lookup returns the named property and whether anything exposes it.
func (h *Host) Lookup(name string) (any, bool) {
	if v, ok := h.props[name]; ok {
		return v, true
	}
	for _, n := range h.names {
		if v, ok := h.behaviors[n].Property(name); ok {
			return v, true
		}
	}
	if g, ok := h.owner.(PropertyGetter); ok {
		return g.FallbackGet(name)
	}
	return nil, false
}

// Set assigns the named property. Host properties are assigned directly.
// Otherwise the value is written to every behavior that exposes name, and
// offered to the owner's PropertySetter. Names nothing exposes are not
// created; use AddDynamicProperty for that. Set reports whether anything
// was written.
func (h *Host) Set(name string, value any) bool {
	if _, ok := h.props[name]; ok {
		h.props[name] = value
		return true
	}

	written := false
	for _, n := range h.names {
		if h.behaviors[n].SetProperty(name, value) {
			written = true
		}
	}
	if s, ok := h.owner.(PropertySetter); ok && s.FallbackSet(name, value) {
		written = true
	}
	return written
}

// PropertyExists reports whether the host or one of its behaviors exposes name.
func (h *Host) PropertyExists(name string) bool {
	if _, ok := h.props[name]; ok {
		return true
	}
	for _, n := range h.names {
		if _, ok := h.behaviors[n].Property(name); ok {
			return true
		}
	}
	return false
}

// Call invokes the named method. It returns UndefinedMethodError when no
// dispatch path knows the method.
func (h *Host) Call(name string, args ...any) (any, error) {
	if m, ok := h.class.Method(name); ok {
		return m(h, args...)
	}
	if m, ok := h.methods[name]; ok {
		return m.fn(args...)
	}
	if c, ok := h.dynamicMethods[name]; ok {
		return c.invoke(h, args)
	}
	if mc, ok := h.owner.(MethodCaller); ok {
		if v, handled, err := mc.FallbackCall(name, args...); handled {
			return v, err
		}
	}
	return nil, UndefinedMethodError{Class: h.ClassName(), Method: name}
}
