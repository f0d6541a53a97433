// check.go implements "rain class check" and "rain class ls".

package class

import (
	"fmt"
	"strings"

	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/internal/log"
	"github.com/spf13/cobra"
)

func (b *Behavior) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <manifest>",
		Short: "Build a host of every class in a manifest",
		Long: `Register the manifest's classes alongside the behaviors compiled into rain
and construct one host of each, reporting the behaviors attached and the
methods each host answers. Exits non-zero if any class fails.

  rain class check classes.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := args[0]
			var (
				reports []Report
				err     error
			)
			l := log.Event("class:check", "check").Author(cmd.Author()).Path(p).Detail("format", manifestFormat(p))
			defer func() { l.Write(err) }()

			m, err := extension.LoadManifest(p)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			reports, err = Check(m, b.Host().Registry())
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			failed := 0
			for _, r := range reports {
				if !r.OK() {
					failed++
				}
			}
			l.Detail("classes", len(reports)).Detail("failed", failed)

			if cmd.JSON() {
				if perr := cmd.PrintJSON(reports); perr != nil {
					return perr
				}
			} else {
				printReports(reports)
			}
			if failed > 0 {
				err = fmt.Errorf("%d of %d classes failed", failed, len(reports))
				return err
			}
			return nil
		},
	}
}

func printReports(reports []Report) {
	out := cmd.Out()
	for _, r := range reports {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s %s\n", status, r.Class)
		if r.Parent != "" {
			fmt.Fprintf(out, "  parent:    %s\n", r.Parent)
		}
		fmt.Fprintf(out, "  implement: %s\n", strings.Join(r.Implement, ", "))
		if !r.OK() {
			fmt.Fprintf(out, "  error:     %s\n", r.Error)
			continue
		}
		fmt.Fprintf(out, "  attached:  %s\n", strings.Join(r.Attached, ", "))
		if len(r.Methods) > 0 {
			fmt.Fprintf(out, "  methods:   %s\n", strings.Join(r.Methods, ", "))
		}
	}
}

// Listing is the JSON form of "rain class ls".
type Listing struct {
	Behaviors []string `json:"behaviors"`
	Classes   []Class  `json:"classes"`
}

// Class is one class in a listing.
type Class struct {
	Name      string   `json:"name"`
	Parent    string   `json:"parent,omitempty"`
	Implement []string `json:"implement"`
}

func (b *Behavior) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [manifest]",
		Short: "List registered behaviors and classes",
		Long: `List the behaviors compiled into rain and the application class. With a
manifest, list the manifest's classes instead of the application class.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg := b.Host().Registry()
			listing := Listing{Behaviors: reg.BehaviorNames()}

			if len(args) == 1 {
				m, err := extension.LoadManifest(args[0])
				log.Event("class:ls", "list").Author(cmd.Author()).Path(args[0]).Write(err)
				if err != nil {
					return cmd.PrintJSONError(err)
				}
				for _, spec := range m.Classes {
					impl := spec.Implement
					if impl == nil {
						impl = []string{}
					}
					listing.Classes = append(listing.Classes, Class{Name: spec.Name, Parent: spec.Parent, Implement: impl})
				}
			} else {
				h := b.Host()
				listing.Classes = []Class{{Name: h.ClassName(), Implement: h.ImplementList()}}
				log.Event("class:ls", "list").Author(cmd.Author()).Write(nil)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(listing)
			}
			out := cmd.Out()
			fmt.Fprintln(out, "Behaviors:")
			for _, n := range listing.Behaviors {
				fmt.Fprintf(out, "  %s\n", n)
			}
			fmt.Fprintln(out, "Classes:")
			for _, c := range listing.Classes {
				line := "  " + c.Name
				if c.Parent != "" {
					line += " extends " + c.Parent
				}
				if len(c.Implement) > 0 {
					line += " implements " + strings.Join(c.Implement, ", ")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
