// methods.go implements "rain methods" for inspecting the application host.
//
// The rain CLI is an extension host whose behaviors export methods. This
// command lists what the host answers and dispatches calls through it, so
// one behavior's method can be exercised without knowing which behavior
// owns it.

package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

// Method describes one method callable on the application host.
type Method struct {
	Name  string `json:"name"`
	Owner string `json:"owner"` // behavior name, "native" or "dynamic"
}

func newMethodsCmd(b *Behavior) *cobra.Command {
	c := &cobra.Command{
		Use:   "methods",
		Short: "List or call methods of the rain application",
		Long: `List the methods the rain application answers and the behavior providing each.

  rain methods                          # list methods
  rain methods call parseSections "..." # call a method with string arguments
  rain methods static guideTopics       # call a static method
  rain methods get theme.datasource     # read a property`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			methods := listMethods(b.Host())
			log.Event("core:methods", "list").Author(cmd.Author()).Detail("count", len(methods)).Write(nil)
			if cmd.JSON() {
				return cmd.PrintJSON(methods)
			}
			for _, m := range methods {
				fmt.Fprintf(cmd.Out(), "%-20s %s\n", m.Name, m.Owner)
			}
			return nil
		},
	}

	c.AddCommand(&cobra.Command{
		Use:   "call <method> [args...]",
		Short: "Call a method on the application host",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := b.Host().Call(args[0], stringArgs(args[1:])...)
			log.Event("core:methods", "call").Author(cmd.Author()).Detail("method", args[0]).Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return printValue(v)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "static <method> [args...]",
		Short: "Call a static method through the application class",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := b.Host().CallStatic(args[0], stringArgs(args[1:])...)
			log.Event("core:methods", "static").Author(cmd.Author()).Detail("method", args[0]).Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			return printValue(v)
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "get <property>",
		Short: "Read a property of the application host",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, ok := b.Host().Lookup(args[0])
			if !ok {
				return cmd.PrintJSONError(fmt.Errorf("property %q is not defined", args[0]))
			}
			return printValue(v)
		},
	})
	return c
}

// listMethods reports every method name with the part of the host that
// answers it, matching the order Call resolves them in.
func listMethods(h *extension.Host) []Method {
	dynamic := make(map[string]bool)
	for _, n := range h.DynamicMethods() {
		dynamic[n] = true
	}

	var out []Method
	for _, name := range h.ClassMethods() {
		owner := "dynamic"
		if _, ok := h.Class().Method(name); ok {
			owner = "native"
		} else if b, ok := h.MethodOwner(name); ok {
			owner = b
		} else if !dynamic[name] {
			continue
		}
		out = append(out, Method{Name: name, Owner: owner})
	}
	return out
}

func stringArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

// printValue writes a method result. Strings print as-is, string lists one
// per line, anything else as indented JSON.
func printValue(v any) error {
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"result": v})
	}
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		fmt.Fprintln(cmd.Out(), strings.TrimRight(t, "\n"))
	case []string:
		for _, s := range t {
			fmt.Fprintln(cmd.Out(), s)
		}
	case fmt.Stringer:
		fmt.Fprintln(cmd.Out(), t.String())
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Fprintln(cmd.Out(), string(data))
	}
	return nil
}
