package layers

import (
	"testing"

	"github.com/annolab/layers/canvas2d"
)

func surfaceHasInk(dc *canvas2d.Context) bool {
	for _, b := range dc.Pixmap().Data() {
		if b != 0 {
			return true
		}
	}
	return false
}

func TestDrawUnknownTypeIsNoOp(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(50, 50)
	r.Draw(dc, &Layer{Type: "hologram", X: 10, Y: 10, Width: 20, Height: 20, Fill: "#f00"}, DrawOptions{})
	if surfaceHasInk(dc) {
		t.Error("unknown layer type drew pixels")
	}
}

func TestDrawInvisibleLayerIsNoOp(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(50, 50)
	hidden := false
	r.Draw(dc, &Layer{Type: "rectangle", Visible: &hidden, X: 5, Y: 5, Width: 20, Height: 20, Fill: "#f00"}, DrawOptions{})
	if surfaceHasInk(dc) {
		t.Error("invisible layer drew pixels")
	}
}

func TestTransparentFillSkipsFillPass(t *testing.T) {
	r := NewRenderer()
	for _, sentinel := range []string{"transparent", "none"} {
		dc := canvas2d.NewContext(50, 50)
		r.Draw(dc, &Layer{Type: "rectangle", X: 5, Y: 5, Width: 30, Height: 30, Fill: sentinel, Stroke: "transparent"}, DrawOptions{})
		if surfaceHasInk(dc) {
			t.Errorf("fill sentinel %q still drew pixels", sentinel)
		}
	}
}

func TestRectangleFillDraws(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(50, 50)
	r.Draw(dc, &Layer{Type: "rectangle", X: 10, Y: 10, Width: 20, Height: 20, Fill: "#ff0000"}, DrawOptions{})
	px := dc.Pixmap().GetPixel(20, 20)
	if px.A == 0 || px.R == 0 {
		t.Errorf("expected red ink at rectangle interior, got %+v", px)
	}
	if out := dc.Pixmap().GetPixel(2, 2); out.A != 0 {
		t.Errorf("expected no ink outside rectangle, got %+v", out)
	}
}

func TestDrawRestoresSurfaceState(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(80, 80)
	l := &Layer{
		Type: "rectangle", X: 10, Y: 10, Width: 30, Height: 30,
		Rotation: 45, Fill: "#00ff00", Shadow: true, ShadowBlur: 4,
		BlendMode: "multiply",
	}
	r.Draw(dc, l, DrawOptions{})

	if !dc.GetTransform().IsIdentity() {
		t.Error("transform leaked out of a layer draw")
	}
	if dc.ShadowColor().A != 0 {
		t.Error("shadow state leaked out of a layer draw")
	}
	if dc.CompositeOp() != canvas2d.CompositeSourceOver {
		t.Error("composite operator leaked out of a layer draw")
	}
}

func TestUnsupportedBlendKeepsOperator(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(20, 20)
	r.applyBlend(dc, &Layer{BlendMode: "color-dodge"})
	if dc.CompositeOp() != canvas2d.CompositeSourceOver {
		t.Error("unsupported blend name changed the composite operator")
	}
	r.applyBlend(dc, &Layer{BlendMode: "multiply"})
	if dc.CompositeOp() != canvas2d.CompositeMultiply {
		t.Error("supported blend name was not applied")
	}
}

func TestOpacityMultiplies(t *testing.T) {
	r := NewRenderer()

	full := canvas2d.NewContext(40, 40)
	r.Draw(full, &Layer{Type: "rectangle", X: 0, Y: 0, Width: 40, Height: 40, Fill: "#0000ff"}, DrawOptions{})

	faded := canvas2d.NewContext(40, 40)
	r.Draw(faded, &Layer{
		Type: "rectangle", X: 0, Y: 0, Width: 40, Height: 40, Fill: "#0000ff",
		Opacity: fp(0.5), FillOpacity: fp(0.5),
	}, DrawOptions{})

	fa := full.Pixmap().GetPixel(20, 20).A
	pa := faded.Pixmap().GetPixel(20, 20).A
	if pa <= 0.2*fa || pa >= 0.35*fa {
		t.Errorf("opacity 0.5*0.5 gave alpha ratio %g, want about 0.25", pa/fa)
	}
}

func TestCustomShapeParseFailureDrawsPlaceholder(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(60, 60)
	r.Draw(dc, &Layer{
		Type: "customShape", X: 10, Y: 10, Width: 40, Height: 40,
		PathData: "this is not a path",
	}, DrawOptions{})
	if !surfaceHasInk(dc) {
		t.Error("parse failure should draw a visible placeholder, not nothing")
	}
}

func TestCustomShapeDrawsParsedPath(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(100, 100)
	r.Draw(dc, &Layer{
		Type: "customShape", X: 10, Y: 10, Width: 80, Height: 80,
		PathData: "M 0 0 L 100 0 L 100 100 L 0 100 Z",
		ViewBox:  []float64{0, 0, 100, 100},
		Fill:     "#123456",
	}, DrawOptions{})
	if px := dc.Pixmap().GetPixel(50, 50); px.A == 0 {
		t.Error("custom shape interior not filled")
	}
}

func TestArrowDraws(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(100, 100)
	r.Draw(dc, &Layer{
		Type: "arrow", X1: fp(10), Y1: fp(50), X2: fp(90), Y2: fp(50),
		Stroke: "#000000", ArrowStyle: ArrowSingle,
	}, DrawOptions{})
	if px := dc.Pixmap().GetPixel(50, 50); px.A == 0 {
		t.Error("arrow shaft not drawn")
	}
	if px := dc.Pixmap().GetPixel(86, 50); px.A == 0 {
		t.Error("arrowhead not drawn near the end point")
	}
}

func TestHighlightMultiplies(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(40, 40)
	dc.ClearWithColor(canvas2d.White)
	r.Draw(dc, &Layer{Type: "highlight", X: 0, Y: 0, Width: 40, Height: 40}, DrawOptions{})
	px := dc.Pixmap().GetPixel(20, 20)
	if px.B >= 0.99 {
		t.Errorf("highlight should darken the blue channel via multiply, got %+v", px)
	}
}

func TestShadowSpreadZeroStillCastsShadow(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(100, 100)
	r.Draw(dc, &Layer{
		Type: "line", X1: fp(20), Y1: fp(20), X2: fp(60), Y2: fp(20),
		Stroke: "#ff0000", StrokeWidth: fp(2),
		Shadow: true, ShadowColor: "#000000", ShadowOffsetY: 15, ShadowSpread: 0,
	}, DrawOptions{})

	px := dc.Pixmap().GetPixel(40, 35)
	if px.A == 0 {
		t.Error("shadowSpread=0 skipped the shadow pass entirely")
	}
	if px.R > 0.3 {
		t.Errorf("expected dark shadow pixels at the offset, got %+v", px)
	}
}

func TestShadowSpreadGrowsShadow(t *testing.T) {
	r := NewRenderer()

	paint := func(spread float64) int {
		dc := canvas2d.NewContext(120, 120)
		r.Draw(dc, &Layer{
			Type: "rectangle", X: 40, Y: 40, Width: 30, Height: 30,
			Fill: "#ffffff", Shadow: true, ShadowColor: "#000000",
			ShadowOffsetX: 5, ShadowOffsetY: 5, ShadowSpread: spread,
		}, DrawOptions{})
		count := 0
		for _, b := range dc.Pixmap().Data() {
			if b != 0 {
				count++
			}
		}
		return count
	}

	if paint(6) <= paint(0) {
		t.Error("positive shadowSpread did not grow the painted area")
	}
}

func TestBlurBlendAppliesOpacityOnce(t *testing.T) {
	layer := func() *Layer {
		return &Layer{
			Type: "rectangle", X: 10, Y: 10, Width: 60, Height: 60,
			Fill: "#000000", Opacity: fp(0.5),
		}
	}

	plain := canvas2d.NewContext(80, 80)
	NewRenderer().Draw(plain, layer(), DrawOptions{})
	want := plain.Pixmap().GetPixel(40, 40).A

	blended := canvas2d.NewContext(80, 80)
	r := NewRenderer(WithContextPool(canvas2d.NewContextPool(2)))
	l := layer()
	l.Blend = "blur"
	r.Draw(blended, l, DrawOptions{})
	got := blended.Pixmap().GetPixel(40, 40).A

	// The probe pixel is deep inside the rectangle, so the blur leaves it
	// at the same coverage; opacity must not compound at composite time.
	if absDiff(got, want) > 0.05 {
		t.Errorf("blur-blend center alpha = %g, plain draw = %g", got, want)
	}
}
