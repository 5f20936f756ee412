package canvas2d

// drawState is the full saveable drawing state of a context: transform,
// paint, global alpha, composite operator, shadow parameters and clip mask.
type drawState struct {
	matrix      Matrix
	paint       Paint
	globalAlpha float64
	op          CompositeOp

	shadowColor   RGBA
	shadowBlur    float64
	shadowOffsetX float64
	shadowOffsetY float64

	// clip is the current clip mask, one alpha byte per pixel, or nil when
	// unclipped. The slice is shared between saved states; Clip replaces it
	// rather than mutating in place.
	clip []uint8
}

func defaultState() drawState {
	return drawState{
		matrix:      Identity(),
		paint:       defaultPaint(),
		globalAlpha: 1,
	}
}

// Save pushes the current drawing state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the most recently saved state. Restoring with an empty stack
// is a no-op.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Restorer remembers a stack depth so a scope can be unwound exactly once on
// every exit path, even when inner code saved more states or panicked before
// restoring them.
type Restorer struct {
	c     *Context
	depth int
	done  bool
}

// Scope saves the current state and returns a Restorer for it. Intended use:
//
//	scope := dc.Scope()
//	defer scope.Restore()
func (c *Context) Scope() *Restorer {
	depth := len(c.stack)
	c.Save()
	return &Restorer{c: c, depth: depth}
}

// Restore unwinds the context state stack back to the depth recorded by
// Scope. Restore is idempotent.
func (r *Restorer) Restore() {
	if r.done {
		return
	}
	r.done = true
	for len(r.c.stack) > r.depth {
		r.c.Restore()
	}
}
