// sync.go implements the "rain sync" command for copying templates between
// datasource layers.
//
// Design: Sync copies templates that are missing from the destination or
// hold different content there. It never deletes. The typical use is
// seeding the database layer from the theme files (the default), or
// exporting database edits back to disk with --from db --to file.

package template

import (
	"fmt"
	"io"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/internal/log"
	"github.com/jpl-au/rain/internal/sync"
	"github.com/spf13/cobra"
)

func (b *Behavior) newSyncCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sync [dir...]",
		Short: "Copy templates between datasource layers",
		Long: `Copy templates that are missing or different from one datasource layer to
another. Nothing is deleted.

  rain sync                          # theme files into the database
  rain sync pages --dry-run          # preview, pages only
  rain sync --from db --to file      # write database edits back to disk`,
		RunE: b.runSync,
	}
	c.Flags().String(behavior.FlagFrom, "file", "Source layer: file or db")
	c.Flags().String(behavior.FlagTo, "db", "Destination layer: file or db")
	c.Flags().BoolP(behavior.FlagDryRun, "n", false, "Show what would be synced")
	return c
}

func (b *Behavior) runSync(c *cobra.Command, args []string) error {
	ctx := c.Context()
	from, _ := c.Flags().GetString(behavior.FlagFrom)
	to, _ := c.Flags().GetString(behavior.FlagTo)
	dryRun, _ := c.Flags().GetBool(behavior.FlagDryRun)

	var (
		result sync.Result
		err    error
	)
	l := log.Event("template:sync", "sync").Author(cmd.Author()).Datasource(b.svc.Kind()).
		Detail("from", from).Detail("to", to).Detail("dry_run", dryRun)
	defer func() {
		l.Detail("updated", result.Updated).Detail("added", result.Added).Write(err)
	}()

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err = b.svc.Sync(ctx, w, from, to, sync.Options{DryRun: dryRun, Dirs: args})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("sync: %w", err))
	}

	if !dryRun {
		cmd.Fire(behavior.SyncEvent{From: from, To: to, Updated: result.Updated, Added: result.Added})
	}

	if cmd.JSON() {
		return cmd.PrintJSON(struct {
			sync.Result
			DryRun bool `json:"dry_run"`
		}{result, dryRun})
	}
	if !dryRun && result.Updated+result.Added == 0 {
		fmt.Fprintln(cmd.Out(), "Nothing to sync")
	}
	return nil
}
