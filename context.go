package machine

import "github.com/enetx/g"

// Context is a ready-made context for machines that do not need a dedicated
// type. Data is for long-lived values (e.g. user ID, settings).
// Meta is for ephemeral metadata (e.g. timestamps, counters).
// Both are safe for concurrent access.
type Context struct {
	Data *g.MapSafe[g.String, any]
	Meta *g.MapSafe[g.String, any]
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{
		Data: g.NewMapSafe[g.String, any](),
		Meta: g.NewMapSafe[g.String, any](),
	}
}
