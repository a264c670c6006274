package synthesizer

import (
	"context"
	"sync"

	"github.com/erraggy/restdoc/sourcemodel"
	"github.com/erraggy/restdoc/specdoc"
)

// entry is one memoized schema. name is fixed when the entry is created;
// def and err are written once by the owning goroutine before done closes.
type entry struct {
	name     string
	identity string
	class    *sourcemodel.Class
	args     []*sourcemodel.TypeExpr
	def      *specdoc.SchemaDefinition
	err      error
	done     chan struct{}
}

// wait blocks until the owner finished building the entry.
func (e *entry) wait(ctx context.Context) (*specdoc.SchemaDefinition, error) {
	select {
	case <-e.done:
		return e.def, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// finished reports whether the entry is complete without blocking.
func (e *entry) finished() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// schemaCache memoizes schema definitions by type identity. It prevents
// duplicate synthesis and handles circular references: an identity that is
// present, finished or still in progress, is answered with its name.
type schemaCache struct {
	mu         sync.Mutex
	byIdentity map[string]*entry // identity → entry
	byName     map[string]string // name → identity, for conflict checks
}

func newSchemaCache() *schemaCache {
	return &schemaCache{
		byIdentity: make(map[string]*entry),
		byName:     make(map[string]string),
	}
}

// claim returns the entry for identity. owner is true when the caller
// created it and must build it; name is only called in that case.
func (c *schemaCache) claim(identity string, class *sourcemodel.Class, args []*sourcemodel.TypeExpr, name func(taken func(string) bool) string) (e *entry, owner bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.byIdentity[identity]; ok {
		return e, false
	}
	e = &entry{
		identity: identity,
		class:    class,
		args:     args,
		name:     name(c.nameTakenLocked(identity)),
		done:     make(chan struct{}),
	}
	c.byIdentity[identity] = e
	c.byName[e.name] = identity
	return e, true
}

// reserve registers a name for identity ahead of synthesis so that
// later conflict checks see it.
func (c *schemaCache) reserve(name, identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[name] = identity
}

func (c *schemaCache) nameTakenLocked(identity string) func(string) bool {
	return func(name string) bool {
		owner, ok := c.byName[name]
		return ok && owner != identity
	}
}

// get returns the entry for identity, if any.
func (c *schemaCache) get(identity string) (*entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byIdentity[identity]
	return e, ok
}

// finish publishes the result of the owner's build.
func (e *entry) finish(def *specdoc.SchemaDefinition, err error) {
	e.def, e.err = def, err
	close(e.done)
}

// entries returns a snapshot of all entries.
func (c *schemaCache) entries() []*entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*entry, 0, len(c.byIdentity))
	for _, e := range c.byIdentity {
		out = append(out, e)
	}
	return out
}

// rename applies old → new schema names to every entry and to the
// references inside finished definitions. Callers must ensure no
// synthesis is in flight.
func (c *schemaCache) rename(names map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var moved []*entry
	for _, e := range c.byIdentity {
		if e.finished() && e.def != nil {
			e.def.RenameRefs(names)
		}
		if _, ok := names[e.name]; ok {
			delete(c.byName, e.name)
			moved = append(moved, e)
		}
	}
	for _, e := range moved {
		e.name = names[e.name]
		if e.def != nil {
			e.def.Name = e.name
		}
		c.byName[e.name] = e.identity
	}
}
