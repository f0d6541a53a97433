// ls.go implements the "rain ls" command for listing templates.

package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/halcyon"
	"github.com/jpl-au/rain/internal/duration"
	"github.com/jpl-au/rain/internal/format"
	"github.com/jpl-au/rain/internal/log"
	"github.com/jpl-au/rain/internal/validate"
	"github.com/spf13/cobra"
)

// Entry is one listed template.
type Entry struct {
	Path   string    `json:"path"`
	Size   int64     `json:"size"`
	MTime  time.Time `json:"mtime"`
	Source string    `json:"source"`
}

func (b *Behavior) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [dir...]",
		Short: "List templates",
		Long: `List the templates in the given theme directories, or in all of them.

  rain ls                       # every template
  rain ls pages partials        # two directories
  rain ls pages --match 'blog*' # glob on the file name
  rain ls partials --match 'nav/**'
  rain ls --since 7d            # changed in the last week
  rain ls -l                    # size, modification time and datasource
  rain ls --tree                # directory tree`,
		RunE: b.runLs,
	}
	c.Flags().BoolP(behavior.FlagLong, "l", false, "Long format with size, time and datasource")
	c.Flags().StringSlice(behavior.FlagExt, nil, "Only these extensions")
	c.Flags().String(behavior.FlagMatch, "", "Glob applied to name.ext, ** spans subdirectories")
	c.Flags().String(behavior.FlagSince, "", "Only templates modified within a duration (12h, 7d, 4w, 3m)")
	c.Flags().Bool(behavior.FlagTree, false, "Print as a directory tree")
	c.MarkFlagsMutuallyExclusive(behavior.FlagLong, behavior.FlagTree)
	return c
}

func (b *Behavior) runLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	long, _ := c.Flags().GetBool(behavior.FlagLong)
	exts, _ := c.Flags().GetStringSlice(behavior.FlagExt)
	match, _ := c.Flags().GetString(behavior.FlagMatch)
	since, _ := c.Flags().GetString(behavior.FlagSince)
	tree, _ := c.Flags().GetBool(behavior.FlagTree)

	cutoff, err := duration.Cutoff(since, time.Now())
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = validate.Dirs
	}
	opts := halcyon.SelectOptions{Extensions: exts, FileMatch: match, SkipContent: true}

	var entries []Entry
	defer func() {
		log.Event("template:ls", "list").
			Author(cmd.Author()).
			Path(strings.Join(dirs, ",")).
			Datasource(b.svc.Kind()).
			Detail("count", len(entries)).
			Write(err)
	}()

	for _, dir := range dirs {
		var recs []halcyon.Record
		recs, err = b.svc.List(ctx, dir, opts)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("ls %s: %w", dir, err))
		}
		for _, r := range recs {
			if !cutoff.IsZero() && !r.MTime.After(cutoff) {
				continue
			}
			entries = append(entries, Entry{Path: r.Path(), Size: r.Size, MTime: r.MTime, Source: r.Source})
		}
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	rows := make([]format.Row, len(entries))
	for i, e := range entries {
		rows[i] = format.Row{Path: e.Path, Size: e.Size, MTime: e.MTime, Source: e.Source}
	}
	switch {
	case long:
		return format.Long(cmd.Out(), rows)
	case tree:
		return format.Tree(cmd.Out(), rows)
	default:
		return format.Paths(cmd.Out(), rows)
	}
}
