package i18n

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupportedLanguage is returned when a selection is outside the
// supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Context holds one visitor's selected language and resolves keys against
// it. Every consumer that renders text reads through the same Context and
// may subscribe to selection changes.
type Context struct {
	table *Table

	mu          sync.RWMutex
	current     Code
	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(Code)
}

// NewContext returns a Context starting at initial, or at Base when initial
// is not supported.
func NewContext(table *Table, initial Code) *Context {
	if !initial.Valid() {
		initial = Base
	}
	return &Context{table: table, current: initial}
}

// Language returns the current selection.
func (c *Context) Language() Code {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetLanguage validates value and makes it the current selection, then
// notifies subscribers in subscription order. Rejected values leave the
// selection untouched. Re-selecting the current language notifies nobody.
func (c *Context) SetLanguage(value string) error {
	code, ok := Parse(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, value)
	}

	c.mu.Lock()
	if c.current == code {
		c.mu.Unlock()
		return nil
	}
	c.current = code
	notify := make([]func(Code), 0, len(c.subscribers))
	for _, sub := range c.subscribers {
		notify = append(notify, sub.fn)
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn(code)
	}
	return nil
}

// T resolves path in the current language.
func (c *Context) T(path string) string {
	return c.table.Resolve(c.Language(), path)
}

// Resolve resolves path in an explicit language.
func (c *Context) Resolve(code Code, path string) string {
	return c.table.Resolve(code, path)
}

// Table returns the translations backing c.
func (c *Context) Table() *Table {
	return c.table
}

// Subscribe registers fn for selection changes and returns a function that
// removes it.
func (c *Context) Subscribe(fn func(Code)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subscribers {
				if sub.id == id {
					c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}
