// Package theme holds the process-wide light/dark UI state. Consumers get an
// explicit *Context and subscribe to changes instead of reading a global flag.
package theme

import "sync"

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

type Context struct {
	mu      sync.RWMutex
	current Theme
	nextID  int
	subs    map[int]func(Theme)
}

func New(initial Theme) *Context {
	return &Context{
		current: initial,
		subs:    make(map[int]func(Theme)),
	}
}

func (c *Context) Current() Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set switches the theme and notifies subscribers. Setting the current theme
// again is a no-op. Subscribers run synchronously, outside the lock.
func (c *Context) Set(t Theme) {
	c.mu.Lock()
	if c.current == t {
		c.mu.Unlock()
		return
	}
	c.current = t
	subs := make([]func(Theme), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
}

// Subscribe registers fn for future changes and returns a cancel func.
func (c *Context) Subscribe(fn func(Theme)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
