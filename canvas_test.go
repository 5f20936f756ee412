package layers

import (
	"testing"

	"github.com/annolab/layers/canvas2d"
)

func TestLayerChanged(t *testing.T) {
	c := NewCanvas(100, 100)
	defer c.Close()

	l := &Layer{Type: "rectangle", X: 10, Y: 10, Width: 20, Height: 20, Fill: "#f00"}
	if !c.LayerChanged(l) {
		t.Error("unseen layer should count as changed")
	}

	c.Draw([]*Layer{l})
	if c.LayerChanged(l) {
		t.Error("unmodified layer reported changed after draw")
	}

	l.Fill = "#0f0"
	if !c.LayerChanged(l) {
		t.Error("modified layer not reported changed")
	}
}

func TestDrawAssignsIDs(t *testing.T) {
	c := NewCanvas(50, 50)
	defer c.Close()

	a := &Layer{Type: "circle", X: 10, Y: 10, Radius: 5}
	b := &Layer{Type: "circle", X: 30, Y: 30, Radius: 5}
	c.Draw([]*Layer{a, b})

	if a.ID == "" || b.ID == "" {
		t.Fatal("draw did not assign IDs")
	}
	if a.ID == b.ID {
		t.Error("distinct layers share an ID")
	}
}

func TestLayerHookSkipsInvisible(t *testing.T) {
	var seen []string
	c := NewCanvas(50, 50, WithLayerHook(func(l *Layer) {
		seen = append(seen, l.ID)
	}))
	defer c.Close()

	hidden := false
	list := []*Layer{
		{ID: "a", Type: "rectangle", X: 1, Y: 1, Width: 5, Height: 5},
		{ID: "b", Type: "rectangle", Visible: &hidden, X: 1, Y: 1, Width: 5, Height: 5},
		{ID: "c", Type: "rectangle", X: 10, Y: 10, Width: 5, Height: 5},
	}
	c.Draw(list)

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "c" {
		t.Errorf("hook saw %v, want [a c]", seen)
	}
}

func TestRenderLayersToContextSkipsInvisibleWithoutHook(t *testing.T) {
	var seen int
	c := NewCanvas(50, 50, WithLayerHook(func(*Layer) { seen++ }))
	defer c.Close()

	hidden := false
	target := canvas2d.NewContext(50, 50)
	err := c.RenderLayersToContext(target, []*Layer{
		{ID: "x", Type: "rectangle", Visible: &hidden, X: 1, Y: 1, Width: 10, Height: 10, Fill: "#f00"},
	}, Unit)
	if err != nil {
		t.Fatal(err)
	}
	if seen != 0 {
		t.Error("invisible layer invoked the per-layer hook")
	}
	if surfaceHasInk(target) {
		t.Error("invisible layer drew onto the export target")
	}
}

func TestRenderLayersToContextRestoresOnPanic(t *testing.T) {
	c := NewCanvas(50, 50, WithLayerHook(func(*Layer) {
		panic("hook exploded")
	}))
	defer c.Close()
	c.SetViewport(2, 7, 9)

	target := canvas2d.NewContext(50, 50)
	target.Translate(3, 3)
	before := target.GetTransform()

	err := c.RenderLayersToContext(target, []*Layer{
		{ID: "x", Type: "rectangle", X: 1, Y: 1, Width: 10, Height: 10},
	}, Unit)
	if err == nil {
		t.Fatal("expected an error from the panicking draw")
	}

	if target.GetTransform() != before {
		t.Error("target surface state not restored after panic")
	}
	zoom, panX, panY := c.Viewport()
	if zoom != 2 || panX != 7 || panY != 9 {
		t.Errorf("viewport not restored, got (%g, %g, %g)", zoom, panX, panY)
	}
}

func TestPoolReuse(t *testing.T) {
	pool := canvas2d.NewContextPool(5)
	first := pool.Get(64, 64)
	pool.Put(first)
	second := pool.Get(64, 64)
	if first != second {
		t.Error("pool did not reuse a matching context")
	}
	if pool.Len(64, 64) != 0 {
		t.Error("pooled context not removed on Get")
	}
}

func TestPoolCapacity(t *testing.T) {
	pool := canvas2d.NewContextPool(2)
	a, b, c := pool.Get(16, 16), pool.Get(16, 16), pool.Get(16, 16)
	pool.Put(a)
	pool.Put(b)
	pool.Put(c)
	if got := pool.Len(16, 16); got != 2 {
		t.Errorf("pool held %d contexts, capacity is 2", got)
	}
}

func TestViewportAppliesToDraw(t *testing.T) {
	c := NewCanvas(100, 100)
	defer c.Close()
	c.SetViewport(2, 0, 0)

	l := &Layer{Type: "rectangle", X: 10, Y: 10, Width: 10, Height: 10, Fill: "#f00"}
	c.Draw([]*Layer{l})

	// At zoom 2 the rectangle spans (20,20)-(40,40).
	if px := c.Context().Pixmap().GetPixel(30, 30); px.A == 0 {
		t.Error("zoomed rectangle missing at doubled coordinates")
	}
	if px := c.Context().Pixmap().GetPixel(15, 15); px.A != 0 {
		t.Error("zoomed rectangle drawn at unzoomed coordinates")
	}
}

func TestCanvasScale(t *testing.T) {
	c := NewCanvas(200, 100, WithBaseDimensions(100, 100))
	defer c.Close()
	s := c.Scale()
	if s.SX != 2 || s.SY != 1 || s.Avg != 1.5 {
		t.Errorf("Scale() = %+v, want {2 1 1.5}", s)
	}
}
