package layers

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontCache parses and caches font faces keyed by family and size, so
// repeated text layers do not re-rasterize glyph tables every frame.
// Families can be registered from TTF/OTF files or raw bytes; unknown
// families fall back to the embedded Go Regular font.
//
// All methods are safe for concurrent use.
type FontCache struct {
	mu       sync.RWMutex
	families map[string]*opentype.Font
	faces    map[faceKey]font.Face
	fallback *opentype.Font
}

type faceKey struct {
	family string
	size   float64
}

// builtin families available without registration.
var builtinFonts = map[string][]byte{
	"sans-serif": goregular.TTF,
	"serif":      goregular.TTF,
	"monospace":  gomono.TTF,
	"bold":       gobold.TTF,
}

// NewFontCache creates a cache preloaded with the embedded Go font
// families (sans-serif, serif, monospace, bold).
func NewFontCache() *FontCache {
	fc := &FontCache{
		families: make(map[string]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
	}
	for name, ttf := range builtinFonts {
		if f, err := opentype.Parse(ttf); err == nil {
			fc.families[name] = f
		}
	}
	fc.fallback = fc.families["sans-serif"]
	return fc
}

// Register parses font bytes and makes them available under the given
// family name, replacing any previous registration.
func (fc *FontCache) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.families[family] = f
	for key := range fc.faces {
		if key.family == family {
			delete(fc.faces, key)
		}
	}
	return nil
}

// RegisterFile loads a font file and registers it under the family name.
func (fc *FontCache) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font file: %w", err)
	}
	return fc.Register(family, data)
}

// Face returns a cached face for the family at the given point size.
// Unknown families log once per lookup at warn level and use the fallback;
// size is clamped to a sane minimum so degenerate layers still render.
func (fc *FontCache) Face(family string, size float64) font.Face {
	if size < 1 {
		size = 1
	}
	key := faceKey{family: family, size: size}

	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if face, ok := fc.faces[key]; ok {
		return face
	}

	src := fc.families[family]
	if src == nil {
		if family != "" {
			Logger().Warn("unknown font family, using fallback", "family", family)
		}
		src = fc.fallback
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		Logger().Warn("font face creation failed", "family", family, "size", size, "error", err)
		return nil
	}
	fc.faces[key] = face
	return face
}

// Families lists the registered family names.
func (fc *FontCache) Families() []string {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	names := make([]string, 0, len(fc.families))
	for name := range fc.families {
		names = append(names, name)
	}
	return names
}
