// class.go defines host and behavior class descriptors and the helpers that
// normalise class names and implement declarations.

package extension

import (
	"strings"
)

// Class describes a host class.
type Class struct {
	// Name identifies the class in the registry and in error messages.
	Name string

	// Parent is consulted for extend callbacks, native methods and, when
	// Implement is nil, the default implement list.
	Parent *Class

	// Implement lists the behavior classes every instance is extended with.
	// A leading "@" marks a soft entry, skipped when the behavior is unknown.
	Implement []string

	Methods    map[string]NativeMethod
	Properties map[string]any
}

// DefaultImplement returns the implement list instances start with. A class
// that leaves Implement nil inherits the nearest ancestor's declaration.
func (c *Class) DefaultImplement() []string {
	for _, k := range c.lineage() {
		if k.Implement != nil {
			return k.Implement
		}
	}
	return nil
}

// lineage returns the class followed by its ancestors. A class name seen
// twice ends the walk, which also cuts parent cycles.
func (c *Class) lineage() []*Class {
	seen := make(map[string]bool)
	var out []*Class
	for k := c; k != nil; k = k.Parent {
		name := NormalizeName(k.Name)
		if seen[name] {
			break
		}
		seen[name] = true
		out = append(out, k)
	}
	return out
}

// Method finds a native method declared on the class or an ancestor.
func (c *Class) Method(name string) (NativeMethod, bool) {
	for _, k := range c.lineage() {
		if m, ok := k.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// propertyDefaults merges declared properties, children overriding parents.
func (c *Class) propertyDefaults() map[string]any {
	chain := c.lineage()
	props := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Properties {
			props[k] = v
		}
	}
	return props
}

// BehaviorClass describes a behavior that hosts can be extended with.
type BehaviorClass struct {
	Name string

	// Parent names another registered behavior class whose extend
	// callbacks also apply to instances of this one.
	Parent string

	// New constructs one behavior instance for the given host. The result
	// must embed Base.
	New func(h *Host) (any, error)

	// Static holds class-level methods reachable through Registry.CallStatic
	// on any host class that implements this behavior.
	Static map[string]StaticMethod
}

// NormalizeName converts dot notation to namespace separators and strips
// surrounding whitespace and leading separators. A leading "@" is kept.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	soft := strings.HasPrefix(name, "@")
	if soft {
		name = strings.TrimSpace(name[1:])
	}
	name = strings.ReplaceAll(name, ".", `\`)
	name = strings.TrimLeft(name, `\`)
	if soft {
		return "@" + name
	}
	return name
}

// splitSoft removes the soft marker from a normalised name.
func splitSoft(name string) (string, bool) {
	if strings.HasPrefix(name, "@") {
		return name[1:], true
	}
	return name, false
}

// shortName returns the last namespace segment of a normalised name.
func shortName(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ParseImplement interprets an implement declaration read from loosely typed
// input such as a decoded manifest. Strings are split on commas; lists must
// hold only strings. Empty entries are dropped.
func ParseImplement(class string, v any) ([]string, error) {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		raw = make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, InvalidImplementError{Class: class, Value: v}
			}
			raw = append(raw, s)
		}
	default:
		return nil, InvalidImplementError{Class: class, Value: v}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
