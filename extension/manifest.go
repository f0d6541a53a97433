// manifest.go loads host class declarations from YAML or TOML files.
//
// A manifest lets an application declare which behaviors its classes
// implement without recompiling:
//
//	classes:
//	  - name: Acme.Model
//	    implement: Acme.Behavior.Timestamps
//	  - name: Acme.Blog.Post
//	    parent: Acme.Model
//	    implement: [Acme.Behavior.Sluggable, "@Acme.Behavior.Translatable"]
//
// implement may be a comma-separated string or a list; anything else is
// rejected with InvalidImplementError naming the class.

package extension

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrManifest is wrapped by every manifest loading and registration error.
var ErrManifest = errors.New("invalid class manifest")

// Manifest is a decoded set of class declarations.
type Manifest struct {
	Classes []ClassSpec
}

// ClassSpec is one class declaration in a manifest.
type ClassSpec struct {
	Name       string
	Parent     string
	Implement  []string
	Properties map[string]any
}

type rawManifest struct {
	Classes []rawClass `yaml:"classes" toml:"classes"`
}

type rawClass struct {
	Name       string         `yaml:"name" toml:"name"`
	Parent     string         `yaml:"parent" toml:"parent"`
	Implement  any            `yaml:"implement" toml:"implement"`
	Properties map[string]any `yaml:"properties" toml:"properties"`
}

// LoadManifest reads a manifest file. Files ending in .toml are decoded as
// TOML, everything else as YAML.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	m, err := ParseManifest(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes manifest data in the given format ("yaml" or "toml").
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var raw rawManifest
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrManifest, format)
	}

	m := &Manifest{Classes: make([]ClassSpec, 0, len(raw.Classes))}
	seen := make(map[string]bool)
	for i, rc := range raw.Classes {
		name := NormalizeName(rc.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: class %d has no name", ErrManifest, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: class %s declared twice", ErrManifest, name)
		}
		seen[name] = true

		impl, err := ParseImplement(name, rc.Implement)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
		m.Classes = append(m.Classes, ClassSpec{
			Name:       name,
			Parent:     NormalizeName(rc.Parent),
			Implement:  impl,
			Properties: rc.Properties,
		})
	}
	return m, nil
}

// Register adds the manifest's classes to reg. Parents may be declared in
// any order, or already be registered. Nothing is registered when any
// class fails to resolve.
func (m *Manifest) Register(reg *Registry) ([]*Class, error) {
	built := make(map[string]*Class, len(m.Classes))
	out := make([]*Class, 0, len(m.Classes))
	for _, spec := range m.Classes {
		if reg.Class(spec.Name) != nil {
			return nil, fmt.Errorf("%w: class %s already registered", ErrManifest, spec.Name)
		}
		c := &Class{Name: spec.Name, Implement: spec.Implement, Properties: spec.Properties}
		built[spec.Name] = c
		out = append(out, c)
	}

	for _, spec := range m.Classes {
		if spec.Parent == "" {
			continue
		}
		parent, ok := built[spec.Parent]
		if !ok {
			parent = reg.Class(spec.Parent)
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: class %s: %w: parent %s", ErrManifest, spec.Name, ErrUnknownClass, spec.Parent)
		}
		built[spec.Name].Parent = parent
	}

	for _, c := range out {
		if err := checkCycle(c); err != nil {
			return nil, err
		}
	}
	for _, c := range out {
		reg.RegisterClass(c)
	}
	return out, nil
}

func checkCycle(c *Class) error {
	seen := map[*Class]bool{}
	for k := c; k != nil; k = k.Parent {
		if seen[k] {
			return fmt.Errorf("%w: class %s has a parent cycle", ErrManifest, c.Name)
		}
		seen[k] = true
	}
	return nil
}
