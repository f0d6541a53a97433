// write.go implements the "rain write" command for creating/updating
// templates.
//
// Design: Write accepts content from multiple sources in priority order:
// 1. Direct argument (for short content)
// 2. File flag (for existing files)
// 3. Stdin (for piping)

package template

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

// writeResult contains the outcome of a write operation.
type writeResult struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
	Source  string `json:"source"`
}

func (b *Behavior) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Write a template",
		Long:  `Create or update a template. Content from argument, stdin, or -f flag.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  b.runWrite,
	}
	c.Flags().StringP(behavior.FlagFile, "f", "", "Read content from file")
	return c
}

func (b *Behavior) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	p := args[0]
	var content string

	file, _ := c.Flags().GetString(behavior.FlagFile)
	switch {
	case len(args) >= 2:
		content = args[1]
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read file %q: %w", file, err))
		}
		content = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		content = string(data)
	}

	t, created, err := b.svc.Put(ctx, p, content)
	l := log.Event("template:write", "write").Author(cmd.Author()).Path(p).Datasource(b.svc.Kind())
	if t != nil {
		l.Resolved(t.Path()).Detail("created", created)
	}
	l.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %q: %w", p, err))
	}

	cmd.Fire(behavior.TemplateWriteEvent{Path: t.Path(), Content: content, Created: created, Source: t.Source})

	if cmd.JSON() {
		return cmd.PrintJSON(writeResult{Path: t.Path(), Created: created, Source: t.Source})
	}
	verb := "Updated"
	if created {
		verb = "Created"
	}
	fmt.Fprintf(cmd.Out(), "%s %s\n", verb, t.Path())
	return nil
}
