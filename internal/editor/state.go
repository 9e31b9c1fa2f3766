package editor

import (
	"github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

// ViewportState holds the pan/zoom state of the editor viewport.
//
// Invariants, re-established after every mutation:
//   - Zoom >= MinZoom
//   - |OffsetX| <= max(0, (imageWidth*Zoom - cropWidth)/2/Zoom), and
//     symmetrically for OffsetY
type ViewportState struct {
	Zoom    float64 `json:"zoom"`     // Current zoom factor (screen px per image px)
	OffsetX float64 `json:"offset_x"` // Horizontal pan offset in screen px
	OffsetY float64 `json:"offset_y"` // Vertical pan offset in screen px
	MinZoom float64 `json:"min_zoom"` // Floor: zoom at which the image exactly covers the crop frame
}

// FilterState holds the five scalar tone/color adjustments, each expressed
// as a percentage. Brightness, contrast and saturation default to 100
// (identity); grayscale and sepia default to 0 (identity). A filter at its
// default value is a no-op by construction, so there is no per-filter
// enable flag.
type FilterState struct {
	Brightness float64 `json:"brightness"` // 100 = identity, unbounded above
	Contrast   float64 `json:"contrast"`   // 100 = identity
	Saturate   float64 `json:"saturate"`   // 100 = identity, 0 = grayscale
	Grayscale  float64 `json:"grayscale"`  // 0 = identity, 100 = full grayscale
	Sepia      float64 `json:"sepia"`      // 0 = identity, 100 = full sepia
}

// DefaultFilters returns the identity filter state.
func DefaultFilters() FilterState {
	return FilterState{
		Brightness: 100,
		Contrast:   100,
		Saturate:   100,
		Grayscale:  0,
		Sepia:      0,
	}
}

// IsDefault reports whether every adjustment is at its identity value.
func (f FilterState) IsDefault() bool {
	return f == DefaultFilters()
}

// ColorReplaceState configures the tolerance-based color replacement pass.
//
// Tolerance is a perceptual 0-100 slider value; it is scaled by 2.55 to a
// 0-255 channel-distance threshold before comparison against the Euclidean
// RGB metric. When Enabled is false the pass is skipped entirely but the
// colors and tolerance are retained for re-enabling.
type ColorReplaceState struct {
	From      imaging.RGBColor `json:"from"`      // Color to replace
	To        imaging.RGBColor `json:"to"`        // Replacement color
	Tolerance float64          `json:"tolerance"` // 0-100 perceptual scale
	Enabled   bool             `json:"enabled"`
}

// Threshold returns the tolerance mapped onto the 0-255 channel distance
// space used by the Euclidean metric.
func (s ColorReplaceState) Threshold() float64 {
	return s.Tolerance * 2.55
}

// Snapshot is the serializable union of all editor session state. The host
// persists it alongside the exported image so a later session can resume
// the edit exactly.
type Snapshot struct {
	Viewport     ViewportState     `json:"viewport"`
	Filters      FilterState       `json:"filters"`
	ColorReplace ColorReplaceState `json:"color_replace"`
}
