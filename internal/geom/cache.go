package geom

// lazy is a cache cell for values derived from a geometry's payload. Reads
// through get may fill it, so a value holding a lazy is not safe for
// concurrent use even when callers only read.
type lazy[T any] struct {
	valid bool
	v     T
}

func (c *lazy[T]) get(compute func() T) T {
	if !c.valid {
		c.v = compute()
		c.valid = true
	}
	return c.v
}

func (c *lazy[T]) reset() {
	var zero T
	c.v = zero
	c.valid = false
}

// owner is implemented by values that own child geometries. Children call
// invalidate on their owner whenever they change.
type owner interface {
	invalidate()
}

// node is embedded by every geometry. It links a child to its owner so a
// mutation anywhere in a tree drops the cached state of all ancestors.
type node struct {
	parent owner
}

func (n *node) owned() bool { return n.parent != nil }

func (n *node) setOwner(o owner) { n.parent = o }

func (n *node) notifyOwner() {
	if n.parent != nil {
		n.parent.invalidate()
	}
}
