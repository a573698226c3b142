// Package fieldtree provides a navigable tree view over a flattened,
// path-ordered field list.
//
// The cursor is an index into the caller's slice. Moving never copies or
// reorders fields, and a Bookmark is just the saved index, so saving and
// restoring a position is free.
package fieldtree

import (
	"base-resolver/internal/schema"
)

// Bookmark is a saved cursor position.
type Bookmark int

// Cursor walks a field list as a tree.
type Cursor struct {
	fields []schema.Field
	pos    int
}

// New returns a cursor positioned at the root field.
// The cursor is invalid if fields is empty.
func New(fields []schema.Field) *Cursor {
	c := &Cursor{fields: fields}
	c.Reset()

	return c
}

// Reset moves the cursor back to the root field.
func (c *Cursor) Reset() {
	if len(c.fields) == 0 {
		c.pos = -1
		return
	}

	c.pos = 0
}

// Valid returns true if the cursor points at a field.
func (c *Cursor) Valid() bool {
	return c.pos >= 0 && c.pos < len(c.fields)
}

// Index returns the position of the current field in the underlying slice.
func (c *Cursor) Index() int {
	return c.pos
}

// Field returns the current field. It points into the caller's slice, so
// writes through it are visible to the owner of the list.
func (c *Cursor) Field() *schema.Field {
	if !c.Valid() {
		return nil
	}

	return &c.fields[c.pos]
}

// Path returns the full path of the current field.
func (c *Cursor) Path() string {
	if !c.Valid() {
		return ""
	}

	return c.fields[c.pos].Path
}

// Name returns the local name segment of the current field.
func (c *Cursor) Name() string {
	return schema.LocalName(c.Path())
}

// IsRoot returns true if the cursor is at a single-segment path.
func (c *Cursor) IsRoot() bool {
	return c.Valid() && schema.IsRoot(c.fields[c.pos].Path)
}

// HasChildren returns true if the field right after the current one is its child.
func (c *Cursor) HasChildren() bool {
	if !c.Valid() || c.pos+1 >= len(c.fields) {
		return false
	}

	return schema.IsChildOf(c.fields[c.pos+1].Path, c.fields[c.pos].Path)
}

// MoveToFirstChild moves to the first child of the current field.
// It returns false and leaves the cursor in place if there is none.
func (c *Cursor) MoveToFirstChild() bool {
	if !c.HasChildren() {
		return false
	}

	c.pos++

	return true
}

// MoveToNextSibling moves past the current field's subtree to its next sibling.
// It returns false and leaves the cursor in place if there is none.
func (c *Cursor) MoveToNextSibling() bool {
	if !c.Valid() {
		return false
	}

	parent := schema.ParentPath(c.fields[c.pos].Path)
	if parent == "" {
		return false
	}

	for j := c.pos + 1; j < len(c.fields); j++ {
		p := c.fields[j].Path
		if !schema.IsDescendantOf(p, parent) {
			return false
		}

		if schema.ParentPath(p) == parent {
			c.pos = j
			return true
		}
	}

	return false
}

// MoveToChild moves to the first child for which match returns true.
// It returns false and leaves the cursor in place if no child matches.
func (c *Cursor) MoveToChild(match func(name string) bool) bool {
	mark := c.Bookmark()
	if !c.MoveToFirstChild() {
		return false
	}

	for {
		if match(c.Name()) {
			return true
		}

		if !c.MoveToNextSibling() {
			c.Restore(mark)
			return false
		}
	}
}

// Bookmark saves the current position.
func (c *Cursor) Bookmark() Bookmark {
	return Bookmark(c.pos)
}

// Restore returns to a saved position.
func (c *Cursor) Restore(b Bookmark) {
	c.pos = int(b)
}

// Clone returns an independent cursor over the same fields at the same position.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{fields: c.fields, pos: c.pos}
}
