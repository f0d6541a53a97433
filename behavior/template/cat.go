// cat.go implements the "rain cat" command for reading templates.
//
// Design: Cat prints the stored content unchanged. --section prints one
// section of a compound template. Markdown content templates are rendered
// with glamour on a terminal; pipe/redirect gets the raw file.

package template

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Document is the JSON form of a template.
type Document struct {
	Path     string            `json:"path"`
	Content  string            `json:"content"`
	Sections *halcyon.Sections `json:"sections,omitempty"`
	MTime    time.Time         `json:"mtime"`
	Source   string            `json:"source"`
}

func toDocument(t *halcyon.Template) Document {
	d := Document{Path: t.Path(), Content: t.Content, MTime: t.MTime, Source: t.Source}
	if t.Compound {
		s := t.Sections
		d.Sections = &s
	}
	return d
}

func (b *Behavior) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <path>",
		Short: "Read a template",
		Long: `Output the contents of a template.

  rain cat pages/home.htm
  rain cat pages/home --section settings
  rain cat content/intro.md --raw`,
		Args: cobra.ExactArgs(1),
		RunE: b.runCat,
	}
	c.Flags().String(behavior.FlagSection, "", "Print one section: settings, code or markup")
	c.Flags().Bool(behavior.FlagRaw, false, "Output markdown without rendering")
	return c
}

func (b *Behavior) runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	section, _ := c.Flags().GetString(behavior.FlagSection)
	raw, _ := c.Flags().GetBool(behavior.FlagRaw)
	p := args[0]

	t, err := b.svc.Get(ctx, p)
	l := log.Event("template:cat", "read").Author(cmd.Author()).Path(p).Datasource(b.svc.Kind())
	if t != nil {
		l.Resolved(t.Path()).Detail("source", t.Source)
	}
	l.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", p, err))
	}

	if section != "" {
		if !t.Compound {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %s templates have no sections", p, t.Dir))
		}
		text, err := pick(t.Sections, section)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"path": t.Path(), "section": section, "content": text})
		}
		if text != "" {
			fmt.Fprintln(cmd.Out(), text)
		}
		return nil
	}

	if cmd.JSON() {
		return cmd.PrintJSON(toDocument(t))
	}

	if !raw && t.Ext == "md" && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(t.Content, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	fmt.Fprint(cmd.Out(), t.Content)
	return nil
}

func pick(s halcyon.Sections, name string) (string, error) {
	switch name {
	case "settings":
		return s.Settings.Render(), nil
	case "code":
		return s.Code, nil
	case "markup":
		return s.Markup, nil
	default:
		return "", fmt.Errorf("unknown section %q (valid: settings, code, markup)", name)
	}
}
