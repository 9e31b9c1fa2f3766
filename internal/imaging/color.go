package imaging

import (
	"fmt"
	"image"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#RRGGBB" format.
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorful converts the color to go-colorful's 0-1 component space.
func (c RGBColor) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ParseHexColor parses a 6-hex-digit color string into an RGBColor.
//
// The leading "#" is optional. Exactly six hexadecimal digits are required;
// 3-digit shorthand, 8-digit RGBA and every other format are rejected.
// There is no partial parsing: a malformed string yields an error and no
// color, and callers are expected to keep their previous color in that case.
//
// Parameters:
//   - s: Color string such as "#1A2B3C" or "1a2b3c".
//
// Returns:
//   - RGBColor: The parsed color.
//   - error: Non-nil if s is not exactly six hex digits (plus optional "#").
func ParseHexColor(s string) (RGBColor, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: expected 6 hex digits", s)
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return RGBColor{}, fmt.Errorf("invalid hex color %q: non-hex digit %q", s, r)
		}
	}

	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return RGBColor{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGBColor{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
	}, nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

// ColorDistance returns the Euclidean distance between two colors in
// 3D RGB space, sqrt(dR*dR + dG*dG + dB*dB), measured on the 0-255
// component scale. The range is [0, ~441.67] (black to white).
//
// The metric is symmetric and zero only for identical colors. It is the
// distance the color-replacement tolerance threshold is compared against.
func ColorDistance(a, b RGBColor) float64 {
	// go-colorful measures in 0-1 component space; rescale to 0-255.
	return a.colorful().DistanceRgb(b.colorful()) * 255.0
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// The sample is taken from whatever buffer is passed in; the editor samples
// its rendered preview buffer, so picked colors reflect filters and prior
// replacements as the user sees them, not the source image.
//
// Parameters:
//   - img: The buffer to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - RGBColor: The color at (x, y). Alpha is discarded.
//   - error: Non-nil if coordinates are outside the buffer bounds.
func SampleColor(img image.Image, x, y int) (RGBColor, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return RGBColor{}, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}, nil
}
