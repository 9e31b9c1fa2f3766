package editor

import (
	"image"

	"github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

// ApplyColorReplace remaps, in place, every pixel of buf whose Euclidean
// RGB distance to state.From is strictly below the scaled tolerance
// threshold, overwriting its RGB with state.To. Alpha is untouched.
//
// The pass operates on a rasterized full-resolution buffer already
// produced by the transform+filter render, not on the source image, so its
// effect depends on the current zoom and filters: after a brightness or
// contrast change the comparison runs against the altered pixel colors.
// That layering order is deliberate; it lets the user replace colors as
// they actually appear on screen.
//
// When state.Enabled is false the buffer is returned unmodified.
//
// Repeated application with identical state is deterministic but not
// guaranteed idempotent: if state.To itself lies within tolerance of
// state.From, pixels already rewritten to To still match on the next pass
// and are rewritten to To again.
func ApplyColorReplace(buf *image.RGBA, state ColorReplaceState) {
	if !state.Enabled {
		return
	}

	threshold := state.Threshold()
	t2 := threshold * threshold
	fr := float64(state.From.R)
	fg := float64(state.From.G)
	fb := float64(state.From.B)

	// The render surface is fully opaque, so the premultiplied storage of
	// image.RGBA carries the same RGB the distance metric is defined over.
	// Squared distances avoid a sqrt per pixel; the comparison is
	// equivalent to imaging.ColorDistance(px, from) < threshold.
	bounds := buf.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		ofs := buf.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := buf.Pix[ofs : ofs+4 : ofs+4]
			dr := float64(px[0]) - fr
			dg := float64(px[1]) - fg
			db := float64(px[2]) - fb
			if dr*dr+dg*dg+db*db < t2 {
				px[0] = state.To.R
				px[1] = state.To.G
				px[2] = state.To.B
			}
			ofs += 4
		}
	}
}

// PickColorAt reads a single pixel from a rendered buffer. The editor
// session feeds it the post-filter, post-prior-replacement composite, so
// the picked color is the one the user sees, then installs it as the new
// replacement source color.
func PickColorAt(buf image.Image, x, y int) (imaging.RGBColor, error) {
	return imaging.SampleColor(buf, x, y)
}
