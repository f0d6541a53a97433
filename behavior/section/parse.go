// parse.go implements "rain parse" and "rain offsets".

package section

import (
	"fmt"
	"os"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

// Result is the JSON form of a parsed template.
type Result struct {
	Path     string           `json:"path"`
	Sections halcyon.Sections `json:"sections"`
	Offsets  halcyon.Offsets  `json:"offsets"`
	Count    int              `json:"count"`
	Invalid  string           `json:"settings_error,omitempty"`
}

func newParseCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "parse [file]",
		Short: "Split a template into settings, code and markup",
		Long: `Split a compound template into its settings, code and markup sections.

Reads the file, or stdin when no file (or "-") is given.

  rain parse pages/home.htm
  rain parse pages/home.htm --section settings
  cat home.htm | rain parse -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			section, _ := c.Flags().GetString(behavior.FlagSection)

			content, p, err := readInput(args)
			l := log.Event("section:parse", "parse").Author(cmd.Author()).Path(p)
			if err != nil {
				l.Write(err)
				return cmd.PrintJSONError(err)
			}

			r := parse(p, content)
			l.Detail("sections", r.Count).Write(nil)
			warnExtra(r)

			if section != "" {
				text, err := pick(r.Sections, section)
				if err != nil {
					return cmd.PrintJSONError(err)
				}
				if cmd.JSON() {
					return cmd.PrintJSON(map[string]string{"path": p, "section": section, "content": text})
				}
				if text != "" {
					fmt.Fprintln(cmd.Out(), text)
				}
				return nil
			}

			if cmd.JSON() {
				return cmd.PrintJSON(r)
			}
			printSections(r)
			return nil
		},
	}
	c.Flags().String(behavior.FlagSection, "", "Print one section: settings, code or markup")
	_ = c.RegisterFlagCompletionFunc(behavior.FlagSection, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"settings", "code", "markup"}, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func parse(p, content string) Result {
	s := halcyon.Parse(content)
	r := Result{
		Path:     p,
		Sections: s,
		Offsets:  halcyon.ParseOffset(content),
		Count:    halcyon.SectionCount(content),
	}
	if s.Settings.Err != nil {
		r.Invalid = s.Settings.Err.Error()
	}
	return r
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

// warnExtra reports problems that parsing silently tolerates.
func warnExtra(r Result) {
	if r.Count > 3 {
		fmt.Fprintf(os.Stderr, "warning: %s has %d sections, content after the third is ignored\n", r.Path, r.Count)
	}
	if r.Invalid != "" {
		fmt.Fprintf(os.Stderr, "warning: %s: invalid settings: %s\n", r.Path, r.Invalid)
	}
}

func printSections(r Result) {
	out := cmd.Out()
	header := func(name string, line int) {
		fmt.Fprintf(out, "--- %s (line %d)\n", name, line)
	}
	if r.Offsets.Settings > 0 {
		header("settings", r.Offsets.Settings)
		if settings := r.Sections.Settings.Render(); settings != "" {
			fmt.Fprintln(out, settings)
		}
	}
	if r.Offsets.Code > 0 {
		header("code", r.Offsets.Code)
		if r.Sections.Code != "" {
			fmt.Fprintln(out, r.Sections.Code)
		}
	}
	header("markup", r.Offsets.Markup)
	if r.Sections.Markup != "" {
		fmt.Fprintln(out, r.Sections.Markup)
	}
}

func newOffsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offsets [file]",
		Short: "Print the line each template section starts on",
		Long: `Print the 1-based line on which each section's content starts.
A section the template does not have is reported as 0.

  rain offsets pages/home.htm`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			content, p, err := readInput(args)
			log.Event("section:offsets", "parse").Author(cmd.Author()).Path(p).Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			o := halcyon.ParseOffset(content)
			if cmd.JSON() {
				return cmd.PrintJSON(o)
			}
			fmt.Fprintf(cmd.Out(), "settings: %d\ncode: %d\nmarkup: %d\n", o.Settings, o.Code, o.Markup)
			return nil
		},
	}
}
