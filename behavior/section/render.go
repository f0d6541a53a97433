// render.go implements "rain render", the inverse of "rain parse".

package section

import (
	"fmt"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

func newRenderCmd(b *Behavior) *cobra.Command {
	c := &cobra.Command{
		Use:   "render [file]",
		Short: "Assemble template content from sections",
		Long: `Assemble template content from sections given as JSON, either the
output of "rain parse -o json" or an object with settings, code and markup.

With --template the input is a template, which is parsed and rendered back
in normalised form.

  rain parse -o json home.htm | rain render
  rain render --template home.htm --bare-code`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			fromTemplate, _ := c.Flags().GetBool("template")
			bare := b.BareCode()
			if c.Flags().Changed(behavior.FlagBareCode) {
				bare, _ = c.Flags().GetBool(behavior.FlagBareCode)
			}

			content, p, err := readInput(args)
			l := log.Event("section:render", "render").Author(cmd.Author()).Path(p).Detail("bare_code", bare)
			if err != nil {
				l.Write(err)
				return cmd.PrintJSONError(err)
			}

			var s halcyon.Sections
			if fromTemplate {
				s = halcyon.Parse(content)
			} else if s, err = decodeSections([]byte(content)); err != nil {
				l.Write(err)
				return cmd.PrintJSONError(err)
			}

			rendered := halcyon.Render(s, halcyon.RenderOptions{BareCode: bare})
			l.Write(nil)
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"content": rendered})
			}
			fmt.Fprintln(cmd.Out(), rendered)
			return nil
		},
	}
	c.Flags().Bool(behavior.FlagBareCode, false, "Write the code section without <?php ?> tags (default from halcyon.bare_code)")
	c.Flags().Bool("template", false, "Input is a template to normalise rather than JSON sections")
	return c
}
