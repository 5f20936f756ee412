package canvas2d

// LineCap specifies the shape of stroke endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of stroke joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule determines which areas count as inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// CompositeOp is a compositing operator applied when pixels are drawn.
// The names follow the canvas globalCompositeOperation vocabulary.
type CompositeOp int

const (
	// CompositeSourceOver draws new pixels over existing ones.
	CompositeSourceOver CompositeOp = iota
	// CompositeMultiply multiplies new and existing channels.
	CompositeMultiply
	// CompositeScreen inverts, multiplies, and inverts again.
	CompositeScreen
	// CompositeLighter adds channel values.
	CompositeLighter
	// CompositeDestinationOut erases existing pixels where new ones land.
	CompositeDestinationOut
)

// ParseCompositeOp resolves an operator name. ok is false for names the
// surface does not support, so callers can keep their previous operator.
func ParseCompositeOp(name string) (CompositeOp, bool) {
	switch name {
	case "", "source-over", "normal":
		return CompositeSourceOver, true
	case "multiply":
		return CompositeMultiply, true
	case "screen":
		return CompositeScreen, true
	case "lighter":
		return CompositeLighter, true
	case "destination-out":
		return CompositeDestinationOut, true
	}
	return CompositeSourceOver, false
}

// Paint holds the style applied by fill and stroke operations.
type Paint struct {
	FillColor   RGBA
	StrokeColor RGBA
	LineWidth   float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64
	FillRule    FillRule
	Dash        []float64
	DashOffset  float64
}

// defaultPaint returns the canvas default paint: black, hairline stroke,
// butt caps, miter joins.
func defaultPaint() Paint {
	return Paint{
		FillColor:   Black,
		StrokeColor: Black,
		LineWidth:   1,
		MiterLimit:  10,
	}
}
