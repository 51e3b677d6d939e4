package ui

// closers is a stack of cleanup functions that runs at most once.
type closers struct {
	fns  []func()
	done bool
}

func (c *closers) add(fn func()) {
	c.fns = append(c.fns, fn)
}

func (c *closers) run() {
	if c.done {
		return
	}
	c.done = true
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
	c.fns = nil
}
