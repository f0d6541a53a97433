// static.go implements class-level dispatch to behavior static methods.
//
// The first static call through a host class builds a table of every static
// method its default implement list offers; later calls read the table.
// Discovery uses the class declaration, not any instance, so behaviors added
// by extend callbacks or Host.Implement never contribute static methods.

package extension

import "fmt"

// CallStatic invokes a behavior static method through the named host class.
// The method receives a StaticCall whose CalledClass is that host class.
func (r *Registry) CallStatic(className, method string, args ...any) (any, error) {
	c := r.Class(className)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, NormalizeName(className))
	}
	return r.callStatic(c, method, args)
}

// CallStatic invokes a behavior static method through the host's class.
func (h *Host) CallStatic(method string, args ...any) (any, error) {
	return h.reg.callStatic(h.class, method, args)
}

func (r *Registry) callStatic(c *Class, method string, args []any) (any, error) {
	class := NormalizeName(c.Name)

	table, err := r.staticTable(c)
	if err != nil {
		return nil, err
	}
	if owner, ok := table[method]; ok {
		if bc, ok := r.Behavior(owner); ok {
			if fn := bc.Static[method]; fn != nil {
				return fn(StaticCall{CalledClass: class, Registry: r}, args...)
			}
		}
	}
	return nil, UndefinedMethodError{Class: class, Method: method, Static: true}
}

// staticTable returns the cached method table for c, building it on first use.
func (r *Registry) staticTable(c *Class) (map[string]string, error) {
	class := NormalizeName(c.Name)

	r.mu.RLock()
	table, ok := r.static[class]
	r.mu.RUnlock()
	if ok {
		return table, nil
	}

	table = make(map[string]string)
	for _, use := range c.DefaultImplement() {
		name, soft := splitSoft(NormalizeName(use))
		if name == "" {
			continue
		}
		bc, ok := r.Behavior(name)
		if !ok {
			if soft {
				continue
			}
			return nil, UnknownBehaviorError{Class: class, Behavior: name}
		}
		for m, fn := range bc.Static {
			if fn == nil {
				continue
			}
			if _, taken := table[m]; !taken {
				table[m] = name
			}
		}
	}

	r.mu.Lock()
	if existing, ok := r.static[class]; ok {
		// Another goroutine finished discovery first.
		r.mu.Unlock()
		return existing, nil
	}
	r.static[class] = table
	r.mu.Unlock()

	r.logger.Debug("static methods discovered", "class", class, "count", len(table))
	if r.onDiscover != nil {
		r.onDiscover(class)
	}
	return table, nil
}
