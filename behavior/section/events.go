// events.go checks templates written through rain for sections that would
// be lost or misread.

package section

import (
	"strings"

	"github.com/jpl-au/rain/behavior"
	"github.com/jpl-au/rain/cmd"
	"github.com/jpl-au/rain/halcyon"
)

// HandleEvent warns when a written compound template has more than three
// sections or settings that are not valid INI. The write itself stands.
func (b *Behavior) HandleEvent(_ behavior.Context, evt behavior.Event) error {
	e, ok := evt.(behavior.TemplateWriteEvent)
	if !ok {
		return nil
	}
	dir, _, _ := strings.Cut(e.Path, "/")
	if !halcyon.IsCompound(dir) {
		return nil
	}

	logger := cmd.Logger()
	if n := halcyon.SectionCount(e.Content); n > 3 {
		logger.Warn("template has extra sections", "path", e.Path, "sections", n)
	}
	if s := halcyon.Parse(e.Content); s.Settings.Err != nil {
		logger.Warn("template settings are not valid", "path", e.Path, "error", s.Settings.Err)
	}
	return nil
}
