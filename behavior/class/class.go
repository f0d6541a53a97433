// Package class provides the class behavior for inspecting host class
// manifests: which behaviors each class implements and whether every host
// can actually be built from them.
// Registers commands: class (check, ls).
package class

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/spf13/cobra"
)

// Name is the behavior class name.
const Name = "Rain.Behavior.Class"

func init() {
	cmd.RegisterBehavior(extension.BehaviorClass{
		Name: Name,
		New: func(_ *extension.Host) (any, error) {
			return &Behavior{}, nil
		},
	})
}

// Behavior implements the class behavior.
type Behavior struct {
	extension.Base
}

// Compile-time interface compliance.
var (
	_ extension.Behavior    = (*Behavior)(nil)
	_ behavior.Commander    = (*Behavior)(nil)
	_ behavior.Storeless    = (*Behavior)(nil)
	_ behavior.ToolProvider = (*Behavior)(nil)
)

// Commands returns the class command tree.
func (b *Behavior) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "class",
		Short: "Inspect host class manifests",
		Long: `Inspect manifests declaring host classes and the behaviors they implement.

A manifest is YAML or TOML (by file extension):

  classes:
    - name: Acme.Blog.Post
      parent: Acme.Model
      implement: [Rain.Behavior.Section, "@Acme.Behavior.Translatable"]

A leading "@" marks a soft behavior, skipped when it is not registered.`,
	}
	c.AddCommand(b.newCheckCmd(), b.newLsCmd())
	return []*cobra.Command{c}
}

// NoThemeCommands returns "class": manifests are read from disk.
func (b *Behavior) NoThemeCommands() []string {
	return []string{"class"}
}

// Methods exports manifest checking to the application host.
//
//	checkManifest(path string) []Report
func (b *Behavior) Methods() map[string]extension.Method {
	return map[string]extension.Method{
		"checkManifest": func(args ...any) (any, error) {
			if len(args) == 0 {
				return nil, errors.New("checkManifest: missing path argument")
			}
			p, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("checkManifest: path must be a string, got %T", args[0])
			}
			m, err := extension.LoadManifest(p)
			if err != nil {
				return nil, err
			}
			return Check(m, b.Host().Registry())
		},
	}
}

// Report describes one manifest class after building a host from it.
type Report struct {
	Class     string   `json:"class"`
	Parent    string   `json:"parent,omitempty"`
	Implement []string `json:"implement"`
	Attached  []string `json:"attached,omitempty"`
	Methods   []string `json:"methods,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// OK reports whether a host of the class could be built.
func (r Report) OK() bool { return r.Error == "" }

// Check registers the manifest's classes in a scratch registry holding the
// behaviors of known, then builds one host per class. known itself is not
// modified. A manifest whose classes cannot be registered at all (unknown
// parent, cycle) returns an error.
func Check(m *extension.Manifest, known *extension.Registry) ([]Report, error) {
	scratch := extension.NewRegistry()
	if known != nil {
		for _, bc := range known.Behaviors() {
			scratch.RegisterBehavior(bc)
		}
	}
	classes, err := m.Register(scratch)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(classes))
	for _, c := range classes {
		r := Report{Class: extension.NormalizeName(c.Name), Implement: c.DefaultImplement()}
		if c.Parent != nil {
			r.Parent = extension.NormalizeName(c.Parent.Name)
		}
		if r.Implement == nil {
			r.Implement = []string{}
		}
		h, err := scratch.NewHost(c, nil)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Attached = h.BehaviorNames()
			r.Methods = h.ClassMethods()
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// manifestFormat returns the format LoadManifest would pick for p.
func manifestFormat(p string) string {
	if strings.EqualFold(filepath.Ext(p), ".toml") {
		return "toml"
	}
	return "yaml"
}
