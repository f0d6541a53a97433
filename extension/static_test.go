package extension

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticBehavior(name string, methods map[string]StaticMethod) BehaviorClass {
	bc := behaviorClass(name, nil, nil)
	bc.Static = methods
	return bc
}

func calledClass(call StaticCall, _ ...any) (any, error) {
	return call.CalledClass, nil
}

func TestCallStatic(t *testing.T) {
	t.Run("called class is the host class", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Finder"}})

		got, err := reg.CallStatic("Acme.Post", "whoAmI")
		require.NoError(t, err)
		assert.Equal(t, `Acme\Post`, got)
	})

	t.Run("arguments reach the method", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Math", map[string]StaticMethod{
			"sum": func(_ StaticCall, args ...any) (any, error) {
				total := 0
				for _, a := range args {
					total += a.(int)
				}
				return total, nil
			},
		}))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Math"}})

		got, err := reg.CallStatic("Acme.Post", "sum", 1, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, 6, got)
	})

	t.Run("discovery runs once per class", func(t *testing.T) {
		var discovered []string
		reg := NewRegistry(WithDiscoverHook(func(class string) { discovered = append(discovered, class) }))
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Finder"}})
		reg.RegisterClass(&Class{Name: "Acme.Page", Implement: []string{"Acme.Finder"}})

		for range 3 {
			_, err := reg.CallStatic("Acme.Post", "whoAmI")
			require.NoError(t, err)
		}
		_, err := reg.CallStatic("Acme.Page", "whoAmI")
		require.NoError(t, err)

		assert.Equal(t, []string{`Acme\Post`, `Acme\Page`}, discovered)
	})

	t.Run("subclass inherits the implement list", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		model := &Class{Name: "Acme.Model", Implement: []string{"Acme.Finder"}}
		reg.RegisterClass(model)
		reg.RegisterClass(&Class{Name: "Acme.Post", Parent: model})

		got, err := reg.CallStatic("Acme.Post", "whoAmI")
		require.NoError(t, err)
		assert.Equal(t, `Acme\Post`, got)
	})

	t.Run("first behavior wins", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.A", map[string]StaticMethod{
			"pick": func(StaticCall, ...any) (any, error) { return "a", nil },
		}))
		reg.RegisterBehavior(staticBehavior("Acme.B", map[string]StaticMethod{
			"pick": func(StaticCall, ...any) (any, error) { return "b", nil },
		}))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.A", "Acme.B"}})

		got, err := reg.CallStatic("Acme.Post", "pick")
		require.NoError(t, err)
		assert.Equal(t, "a", got)
	})

	t.Run("undefined static method", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Finder", nil))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Finder"}})

		_, err := reg.CallStatic("Acme.Post", "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUndefinedMethod)
		assert.EqualError(t, err, `call to undefined static method Acme\Post::nope()`)
	})

	t.Run("unknown class", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.CallStatic("Acme.Missing", "x")
		assert.ErrorIs(t, err, ErrUnknownClass)
	})

	t.Run("soft unknown behavior is skipped, hard is an error", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		reg.RegisterClass(&Class{Name: "Acme.Soft", Implement: []string{"@Acme.Missing", "Acme.Finder"}})
		reg.RegisterClass(&Class{Name: "Acme.Hard", Implement: []string{"Acme.Missing"}})

		_, err := reg.CallStatic("Acme.Soft", "whoAmI")
		assert.NoError(t, err)

		_, err = reg.CallStatic("Acme.Hard", "whoAmI")
		assert.ErrorIs(t, err, ErrUnknownBehavior)
	})

	t.Run("runtime implements do not add static methods", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		reg.RegisterClass(&Class{Name: "Acme.Post"})
		reg.Extend("Acme.Post", func(h *Host) { _ = h.Implement("Acme.Finder") })

		h, err := reg.New("Acme.Post", nil)
		require.NoError(t, err)
		require.True(t, h.IsClassExtendedWith("Acme.Finder"))

		_, err = h.CallStatic("whoAmI")
		assert.ErrorIs(t, err, ErrUndefinedMethod)
	})

	t.Run("clear resets the discovery cache", func(t *testing.T) {
		n := 0
		reg := NewRegistry(WithDiscoverHook(func(string) { n++ }))
		reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
		reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Finder"}})

		_, err := reg.CallStatic("Acme.Post", "whoAmI")
		require.NoError(t, err)
		reg.Clear()
		_, err = reg.CallStatic("Acme.Post", "whoAmI")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestCallStatic_Concurrent(t *testing.T) {
	var mu sync.Mutex
	n := 0
	reg := NewRegistry(WithDiscoverHook(func(string) {
		mu.Lock()
		n++
		mu.Unlock()
	}))
	reg.RegisterBehavior(staticBehavior("Acme.Finder", map[string]StaticMethod{"whoAmI": calledClass}))
	reg.RegisterClass(&Class{Name: "Acme.Post", Implement: []string{"Acme.Finder"}})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := reg.CallStatic("Acme.Post", "whoAmI")
			assert.NoError(t, err)
			assert.Equal(t, `Acme\Post`, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, n)
}
