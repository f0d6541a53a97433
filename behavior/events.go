// events.go defines notifications sent to behaviors after template changes.
//
// Events are fire-and-forget: behaviors observe a change after the fact and
// cannot veto it.

package behavior

// EventType identifies the kind of event.
type EventType string

const (
	EventTemplateWrite  EventType = "template:write"
	EventTemplateDelete EventType = "template:delete"
	EventTemplateMove   EventType = "template:move"
	EventThemeSync      EventType = "theme:sync"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventPath() string
}

// TemplateWriteEvent is fired after a template is created or updated.
type TemplateWriteEvent struct {
	Path    string
	Content string
	Created bool
	Source  string // datasource that stored it
}

func (e TemplateWriteEvent) EventType() EventType { return EventTemplateWrite }
func (e TemplateWriteEvent) EventPath() string    { return e.Path }

// TemplateDeleteEvent is fired after a template is deleted.
type TemplateDeleteEvent struct {
	Path string
}

func (e TemplateDeleteEvent) EventType() EventType { return EventTemplateDelete }
func (e TemplateDeleteEvent) EventPath() string    { return e.Path }

// TemplateMoveEvent is fired after a template is renamed.
type TemplateMoveEvent struct {
	From string
	To   string
}

func (e TemplateMoveEvent) EventType() EventType { return EventTemplateMove }
func (e TemplateMoveEvent) EventPath() string    { return e.To }

// SyncEvent is fired after templates are copied between layers.
type SyncEvent struct {
	From    string
	To      string
	Updated int
	Added   int
}

func (e SyncEvent) EventType() EventType { return EventThemeSync }
func (e SyncEvent) EventPath() string    { return "" }

// EventHandler is implemented by behaviors that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
