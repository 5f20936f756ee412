package layers

import (
	"encoding/json"
	"math"
)

// Point is a single vertex of a polygon or freehand path. Points always
// travel as ordered sequences; the array order is the drawing order.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointData carries the polymorphic "points" field: polygon and path layers
// store an ordered vertex array, star layers store a point count. JSON
// accepts either form.
type PointData struct {
	// Vertices is the ordered vertex list, when the field held an array.
	Vertices []Point
	// Count is the star point count, when the field held a number.
	Count int
}

// UnmarshalJSON accepts either a vertex array or a numeric count.
func (p *PointData) UnmarshalJSON(data []byte) error {
	*p = PointData{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, &p.Vertices)
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	p.Count = int(n)
	return nil
}

// MarshalJSON writes back whichever form is populated. Vertices win so a
// round trip never turns an ordered array into a count.
func (p PointData) MarshalJSON() ([]byte, error) {
	if p.Vertices != nil {
		return json.Marshal(p.Vertices)
	}
	if p.Count != 0 {
		return json.Marshal(p.Count)
	}
	return []byte("null"), nil
}

// Layer is one annotation shape descriptor. Type selects the variant; the
// remaining fields are a union of every variant's geometry and style.
// Missing numeric fields default at render time — malformed layers degrade,
// they never fail a draw.
type Layer struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type"`
	Visible *bool  `json:"visible,omitempty"`

	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`

	Fill          string   `json:"fill,omitempty"`
	Stroke        string   `json:"stroke,omitempty"`
	StrokeWidth   *float64 `json:"strokeWidth,omitempty"`
	Opacity       *float64 `json:"opacity,omitempty"`
	FillOpacity   *float64 `json:"fillOpacity,omitempty"`
	StrokeOpacity *float64 `json:"strokeOpacity,omitempty"`

	Shadow        bool    `json:"shadow,omitempty"`
	ShadowColor   string  `json:"shadowColor,omitempty"`
	ShadowBlur    float64 `json:"shadowBlur,omitempty"`
	ShadowOffsetX float64 `json:"shadowOffsetX,omitempty"`
	ShadowOffsetY float64 `json:"shadowOffsetY,omitempty"`
	ShadowSpread  float64 `json:"shadowSpread,omitempty"`

	Dash       []float64 `json:"dash,omitempty"`
	DashOffset float64   `json:"dashOffset,omitempty"`

	Blend     string `json:"blend,omitempty"`
	BlendMode string `json:"blendMode,omitempty"`
	Glow      bool   `json:"glow,omitempty"`

	CornerRadius float64 `json:"cornerRadius,omitempty"`

	// Circle and ellipse radii. Ellipse also accepts legacy width/height.
	Radius  float64 `json:"radius,omitempty"`
	RadiusX float64 `json:"radiusX,omitempty"`
	RadiusY float64 `json:"radiusY,omitempty"`

	// Line, arrow and dimension endpoints. Pointers so the legacy
	// (x, y, width, height) fallback can detect omission.
	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`

	ArrowStyle    string  `json:"arrowStyle,omitempty"`
	ArrowHeadType string  `json:"arrowHeadType,omitempty"`
	HeadScale     float64 `json:"headScale,omitempty"`
	TailWidth     float64 `json:"tailWidth,omitempty"`

	Sides       int       `json:"sides,omitempty"`
	Points      PointData `json:"points,omitempty"`
	InnerRadius float64   `json:"innerRadius,omitempty"`
	OuterRadius float64   `json:"outerRadius,omitempty"`

	Text            string  `json:"text,omitempty"`
	TextColor       string  `json:"textColor,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	FontFamily      string  `json:"fontFamily,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
	TextStroke      string  `json:"textStroke,omitempty"`
	TextStrokeWidth float64 `json:"textStrokeWidth,omitempty"`

	Src string `json:"src,omitempty"`

	// Custom shape path data: a single SVG-style path string, a composite
	// list, or a raw svg fragment, authored in the ViewBox coordinate space.
	PathData string    `json:"path,omitempty"`
	Paths    []string  `json:"paths,omitempty"`
	SVG      string    `json:"svg,omitempty"`
	ViewBox  []float64 `json:"viewBox,omitempty"`

	// Marker label and callout/dimension anchor.
	Label   string   `json:"label,omitempty"`
	TargetX *float64 `json:"targetX,omitempty"`
	TargetY *float64 `json:"targetY,omitempty"`
}

// LayerType is the closed set of layer variants. Unrecognized type tags map
// to TypeUnknown, which renders nothing.
type LayerType int

const (
	TypeUnknown LayerType = iota
	TypeRectangle
	TypeCircle
	TypeEllipse
	TypeLine
	TypeArrow
	TypePolygon
	TypeStar
	TypePath
	TypeText
	TypeTextbox
	TypeHighlight
	TypeBlur
	TypeImage
	TypeCustomShape
	TypeMarker
	TypeDimension
	TypeCallout
)

var layerTypeNames = map[string]LayerType{
	"rectangle":   TypeRectangle,
	"circle":      TypeCircle,
	"ellipse":     TypeEllipse,
	"line":        TypeLine,
	"arrow":       TypeArrow,
	"polygon":     TypePolygon,
	"star":        TypeStar,
	"path":        TypePath,
	"text":        TypeText,
	"textbox":     TypeTextbox,
	"highlight":   TypeHighlight,
	"blur":        TypeBlur,
	"image":       TypeImage,
	"customShape": TypeCustomShape,
	"marker":      TypeMarker,
	"dimension":   TypeDimension,
	"callout":     TypeCallout,
}

// ParseLayerType resolves a type tag. Unknown tags yield TypeUnknown.
func ParseLayerType(s string) LayerType {
	if t, ok := layerTypeNames[s]; ok {
		return t
	}
	return TypeUnknown
}

// Kind returns the layer's resolved type.
func (l *Layer) Kind() LayerType {
	return ParseLayerType(l.Type)
}

// SupportsGlow reports whether the glow outline pass applies to this layer
// type. Text, highlight and blur layers never glow.
func (t LayerType) SupportsGlow() bool {
	switch t {
	case TypeRectangle, TypeCircle, TypeEllipse, TypePolygon, TypeStar,
		TypeLine, TypeArrow, TypePath:
		return true
	}
	return false
}

// SupportsBlurBlend reports whether the blur-blend compositing path applies.
// Arrows are exempt: their geometry is not a simple closed clip region.
func (t LayerType) SupportsBlurBlend() bool {
	switch t {
	case TypeRectangle, TypeCircle, TypeEllipse, TypePolygon, TypeStar,
		TypePath, TypeCustomShape:
		return true
	}
	return false
}

// IsVisible reports whether the layer should be drawn. Layers are visible
// unless explicitly hidden.
func (l *Layer) IsVisible() bool {
	return l.Visible == nil || *l.Visible
}

// BlendName returns the requested compositing operator name, preferring the
// blendMode field over the legacy blend field.
func (l *Layer) BlendName() string {
	if l.BlendMode != "" {
		return l.BlendMode
	}
	return l.Blend
}

// EffectiveOpacity returns the layer opacity multiplied by the given
// channel opacity (fill or stroke). Both factors default to 1 when omitted;
// NaN values fall back to 1 instead of poisoning the product.
func (l *Layer) EffectiveOpacity(channel *float64) float64 {
	return opacityValue(l.Opacity) * opacityValue(channel)
}

func opacityValue(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 1
	}
	if *v < 0 {
		return 0
	}
	if *v > 1 {
		return 1
	}
	return *v
}

// strokeWidthOrDefault returns the stroke width, defaulting to 1 when the
// field is omitted. An explicit 0 stays 0 and suppresses the stroke pass.
func (l *Layer) strokeWidthOrDefault() float64 {
	if l.StrokeWidth == nil {
		return 1
	}
	if math.IsNaN(*l.StrokeWidth) || *l.StrokeWidth < 0 {
		return 1
	}
	return *l.StrokeWidth
}

// isTransparent reports whether a color string is one of the sentinel
// values meaning "skip this paint channel entirely".
func isTransparent(color string) bool {
	return color == "transparent" || color == "none"
}

// lineEndpoints returns the layer's segment endpoints, falling back to the
// legacy (x, y, width, height) encoding when the explicit fields are absent.
func (l *Layer) lineEndpoints() (x1, y1, x2, y2 float64) {
	if l.X1 != nil && l.Y1 != nil && l.X2 != nil && l.Y2 != nil {
		return *l.X1, *l.Y1, *l.X2, *l.Y2
	}
	return l.X, l.Y, l.X + l.Width, l.Y + l.Height
}
