// Package section provides the section behavior: parsing, rendering and
// locating the settings, code and markup sections of compound templates.
// It registers commands: parse, render, offsets.
package section

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/config"
	"github.com/spf13/cobra"
)

// Name is the behavior class name.
const Name = "Rain.Behavior.Section"

func init() {
	cmd.RegisterBehavior(extension.BehaviorClass{
		Name: Name,
		New: func(_ *extension.Host) (any, error) {
			return New(), nil
		},
	})
}

// Behavior implements the section behavior.
type Behavior struct {
	extension.Base
}

// Compile-time interface compliance.
var (
	_ extension.Behavior    = (*Behavior)(nil)
	_ behavior.Commander    = (*Behavior)(nil)
	_ behavior.Storeless    = (*Behavior)(nil)
	_ behavior.ToolProvider = (*Behavior)(nil)
	_ behavior.EventHandler = (*Behavior)(nil)
)

// New returns a section behavior. The bareCode property starts from the
// halcyon.bare_code setting so storeless commands honour it too.
func New() *Behavior {
	b := &Behavior{}
	bare := false
	if cfg, err := config.Load(); err == nil {
		bare = cfg.BareCode()
	}
	b.DeclareProperty("bareCode", bare)
	return b
}

// BareCode reports whether rendered code sections omit PHP tags.
func (b *Behavior) BareCode() bool {
	v, _ := b.Property("bareCode")
	bare, _ := v.(bool)
	return bare
}

// Commands returns the section commands.
func (b *Behavior) Commands() []*cobra.Command {
	return []*cobra.Command{
		newParseCmd(),
		newRenderCmd(b),
		newOffsetsCmd(),
	}
}

// NoThemeCommands returns every section command: they read files or stdin,
// never the theme.
func (b *Behavior) NoThemeCommands() []string {
	return []string{"parse", "render", "offsets"}
}

// Methods exports the parser to the application host.
//
//	parseSections(content string) halcyon.Sections
//	renderSections(sections halcyon.Sections | JSON string) string
//	sectionOffsets(content string) halcyon.Offsets
//	sectionCount(content string) int
func (b *Behavior) Methods() map[string]extension.Method {
	return map[string]extension.Method{
		"parseSections": func(args ...any) (any, error) {
			content, err := stringArg("parseSections", args)
			if err != nil {
				return nil, err
			}
			return halcyon.Parse(content), nil
		},
		"renderSections": func(args ...any) (any, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("renderSections: missing sections argument")
			}
			var s halcyon.Sections
			switch t := args[0].(type) {
			case halcyon.Sections:
				s = t
			case *halcyon.Sections:
				if t == nil {
					return nil, fmt.Errorf("renderSections: nil sections")
				}
				s = *t
			case string:
				var err error
				if s, err = decodeSections([]byte(t)); err != nil {
					return nil, fmt.Errorf("renderSections: %w", err)
				}
			default:
				return nil, fmt.Errorf("renderSections: unsupported argument %T", t)
			}
			return halcyon.Render(s, halcyon.RenderOptions{BareCode: b.BareCode()}), nil
		},
		"sectionOffsets": func(args ...any) (any, error) {
			content, err := stringArg("sectionOffsets", args)
			if err != nil {
				return nil, err
			}
			return halcyon.ParseOffset(content), nil
		},
		"sectionCount": func(args ...any) (any, error) {
			content, err := stringArg("sectionCount", args)
			if err != nil {
				return nil, err
			}
			return halcyon.SectionCount(content), nil
		},
	}
}

func stringArg(method string, args []any) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%s: missing content argument", method)
	}
	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: content must be a string, got %T", method, args[0])
	}
	return s, nil
}

// decodeSections reads sections as printed by "rain parse -o json" or as a
// bare sections object.
func decodeSections(data []byte) (halcyon.Sections, error) {
	var envelope struct {
		Sections *halcyon.Sections `json:"sections"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return halcyon.Sections{}, fmt.Errorf("decode sections: %w", err)
	}
	if envelope.Sections != nil {
		return *envelope.Sections, nil
	}
	var s halcyon.Sections
	if err := json.Unmarshal(data, &s); err != nil {
		return halcyon.Sections{}, fmt.Errorf("decode sections: %w", err)
	}
	return s, nil
}

// readInput returns the named file, or stdin when the name is empty or "-".
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "-", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "-", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", args[0], err
	}
	return string(data), args[0], nil
}
