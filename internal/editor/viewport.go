package editor

import "math"

// Point is a 2D point in either screen or world (image) space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CropFrame is the fixed-aspect-ratio rectangle within the editor viewport
// representing exactly what will be exported. It is derived state: its
// aspect ratio equals targetWidth/targetHeight exactly, and it is
// recomputed whenever the display area or the target size changes.
type CropFrame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FitCropFrame sizes a crop frame with the target aspect ratio to fit
// inside the available display area.
func FitCropFrame(availW, availH, targetW, targetH float64) CropFrame {
	scale := math.Min(availW/targetW, availH/targetH)
	return CropFrame{
		Width:  targetW * scale,
		Height: targetH * scale,
	}
}

// Viewport owns the pan/zoom state for one image inside one crop frame and
// converts between screen space and world (image pixel) space. Every
// mutating operation re-clamps the offset immediately, so a transient
// out-of-bounds state is never observable by a render.
type Viewport struct {
	State  ViewportState
	ImageW float64
	ImageH float64
	Crop   CropFrame
}

// NewViewport creates a viewport for an image of the given intrinsic size
// inside the given crop frame, initialized to the minimal covering fit.
func NewViewport(imageW, imageH int, crop CropFrame) *Viewport {
	v := &Viewport{
		ImageW: float64(imageW),
		ImageH: float64(imageH),
		Crop:   crop,
	}
	v.Fit()
	return v
}

// Fit computes the initial fit: the minimum zoom at which the image covers
// the crop frame on both axes, with equality on at least one axis.
//
// scaleX = cropW/imageW and scaleY = cropH/imageH are computed
// independently; the floor is the larger of the two, since the smaller one
// would leave the frame underfilled on the other axis. Zoom is set to the
// floor and the offset is centered.
func (v *Viewport) Fit() {
	scaleX := v.Crop.Width / v.ImageW
	scaleY := v.Crop.Height / v.ImageH
	minZoom := math.Max(scaleX, scaleY)

	v.State.MinZoom = minZoom
	v.State.Zoom = minZoom
	v.State.OffsetX = 0
	v.State.OffsetY = 0
}

// SetCropFrame replaces the crop frame and re-initializes the fit.
func (v *Viewport) SetCropFrame(crop CropFrame) {
	v.Crop = crop
	v.Fit()
}

// SetZoom sets the zoom factor, clamped to the minimum-zoom floor, and
// re-clamps the offset for the new zoom.
func (v *Viewport) SetZoom(zoom float64) {
	v.State.Zoom = math.Max(zoom, v.State.MinZoom)
	v.ClampOffset()
}

// ZoomAt sets the zoom factor anchored at a pointer position: the world
// point under the pointer before the change maps to the same screen point
// after it. The anchor correction is
//
//	newOffset = offset - worldPointer * (newZoom - oldZoom)
//
// where worldPointer is computed from the pre-change offset and zoom.
// Center is the screen-space center of the render surface.
func (v *Viewport) ZoomAt(pointer, center Point, zoom float64) {
	zoom = math.Max(zoom, v.State.MinZoom)
	old := v.State.Zoom
	world := v.ScreenToWorld(pointer, center)

	v.State.Zoom = zoom
	v.State.OffsetX -= world.X * (zoom - old)
	v.State.OffsetY -= world.Y * (zoom - old)
	v.ClampOffset()
}

// Pan adds a screen-space delta to the offset and re-clamps immediately.
func (v *Viewport) Pan(dx, dy float64) {
	v.State.OffsetX += dx
	v.State.OffsetY += dy
	v.ClampOffset()
}

// ScreenToWorld converts a screen-space point to world (image) space:
//
//	world = (screen - (center + offset)) / zoom
//
// World space has its origin at the image center.
func (v *Viewport) ScreenToWorld(p, center Point) Point {
	return Point{
		X: (p.X - (center.X + v.State.OffsetX)) / v.State.Zoom,
		Y: (p.Y - (center.Y + v.State.OffsetY)) / v.State.Zoom,
	}
}

// WorldToScreen is the inverse of ScreenToWorld.
func (v *Viewport) WorldToScreen(p, center Point) Point {
	return Point{
		X: p.X*v.State.Zoom + center.X + v.State.OffsetX,
		Y: p.Y*v.State.Zoom + center.Y + v.State.OffsetY,
	}
}

// ClampOffset restores the pan bounding invariant:
//
//	|offset.x| <= max(0, (imageW*zoom - cropW)/2/zoom)
//
// and symmetrically for y, so the crop frame stays over the image. It runs
// after every zoom or offset mutation, not only on read.
func (v *Viewport) ClampOffset() {
	maxX := math.Max(0, (v.ImageW*v.State.Zoom-v.Crop.Width)/2/v.State.Zoom)
	maxY := math.Max(0, (v.ImageH*v.State.Zoom-v.Crop.Height)/2/v.State.Zoom)

	v.State.OffsetX = clamp(v.State.OffsetX, -maxX, maxX)
	v.State.OffsetY = clamp(v.State.OffsetY, -maxY, maxY)
}

// Restore applies a saved viewport state. The minimum-zoom floor is
// recomputed from the current image and crop frame rather than trusted
// from the snapshot, then zoom and offset are re-clamped against it.
func (v *Viewport) Restore(state ViewportState) {
	scaleX := v.Crop.Width / v.ImageW
	scaleY := v.Crop.Height / v.ImageH

	v.State = state
	v.State.MinZoom = math.Max(scaleX, scaleY)
	v.State.Zoom = math.Max(v.State.Zoom, v.State.MinZoom)
	v.ClampOffset()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
