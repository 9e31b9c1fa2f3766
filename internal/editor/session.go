package editor

import (
	"errors"
	"fmt"
	"image"
	"math"

	imx "github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

var (
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("editor session is closed")

	// ErrNoPreview is returned when a color pick happens before any
	// preview has been rendered.
	ErrNoPreview = errors.New("no rendered preview to pick from")
)

// Session is one interactive edit of one source image toward one target
// output size. It owns the source bitmap and all mutable editor state
// exclusively; the host drives it from a single thread, mutation by
// mutation, and re-renders after each. Closing the session without
// exporting discards everything.
type Session struct {
	source  *imx.ImageSource
	targetW int
	targetH int

	displayW float64
	displayH float64

	crop     CropFrame
	viewport *Viewport
	filters  FilterState
	replace  ColorReplaceState

	// pickBuf is the last pre-overlay composite; color picks read it so
	// they see post-filter, post-replacement pixels without the crop mask.
	pickBuf *image.RGBA

	closed bool
}

// Open loads a source image and starts an edit session targeting the given
// output size. The source reference may be a file path, data URI or URL.
// A non-nil snapshot resumes a previous edit of the same image and target:
// its states are applied verbatim and then re-clamped.
//
// A load failure is fatal: no session is created and the host should
// restore whatever state it had before invoking the editor.
func Open(sourceRef string, targetW, targetH int, snap *Snapshot) (*Session, error) {
	src, err := imx.LoadSource(sourceRef)
	if err != nil {
		return nil, err
	}
	return NewSession(src, targetW, targetH, snap)
}

// NewSession starts an edit session over an already-loaded source.
//
// The display area defaults to the target size until the host reports its
// real container size via SetDisplayArea.
func NewSession(src *imx.ImageSource, targetW, targetH int, snap *Snapshot) (*Session, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d: dimensions must be positive", targetW, targetH)
	}
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, errors.New("invalid image source")
	}

	s := &Session{
		source:   src,
		targetW:  targetW,
		targetH:  targetH,
		displayW: float64(targetW),
		displayH: float64(targetH),
		filters:  DefaultFilters(),
	}
	s.crop = FitCropFrame(s.displayW, s.displayH, float64(targetW), float64(targetH))
	s.viewport = NewViewport(src.Width, src.Height, s.crop)

	if snap != nil {
		s.restore(*snap)
	}
	return s, nil
}

// SetDisplayArea reports the available on-screen area for the preview
// surface. The crop frame is refitted to the target aspect ratio inside it
// and the viewport is re-initialized for the new frame; the current pan
// and zoom are re-applied relative to the new minimum-zoom floor so the
// view survives a container resize.
func (s *Session) SetDisplayArea(width, height float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid display area %gx%g: dimensions must be positive", width, height)
	}

	prev := s.viewport.State
	s.displayW = width
	s.displayH = height
	s.crop = FitCropFrame(width, height, float64(s.targetW), float64(s.targetH))
	s.viewport.SetCropFrame(s.crop)
	s.viewport.Restore(prev)
	s.invalidate()
	return nil
}

// CropFrame returns the current derived crop frame.
func (s *Session) CropFrame() CropFrame { return s.crop }

// Viewport returns the current viewport state.
func (s *Session) Viewport() ViewportState { return s.viewport.State }

// Filters returns the current filter state.
func (s *Session) Filters() FilterState { return s.filters }

// Replace returns the current color replacement state.
func (s *Session) Replace() ColorReplaceState { return s.replace }

// Pan shifts the viewport by a screen-space delta, re-clamping immediately.
func (s *Session) Pan(dx, dy float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.viewport.Pan(dx, dy)
	s.invalidate()
	return nil
}

// SetZoom sets the zoom factor, clamped to the minimum-zoom floor.
func (s *Session) SetZoom(zoom float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.viewport.SetZoom(zoom)
	s.invalidate()
	return nil
}

// ZoomAt sets the zoom factor anchored at a pointer position on the
// preview surface, as a wheel interaction does.
func (s *Session) ZoomAt(pointerX, pointerY, zoom float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	center := Point{X: s.displayW / 2, Y: s.displayH / 2}
	s.viewport.ZoomAt(Point{X: pointerX, Y: pointerY}, center, zoom)
	s.invalidate()
	return nil
}

// SetFilters replaces the whole filter state.
func (s *Session) SetFilters(f FilterState) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.filters = f
	s.invalidate()
	return nil
}

// ResetFilters restores all five adjustments to their defaults.
func (s *Session) ResetFilters() error {
	return s.SetFilters(DefaultFilters())
}

// SetReplace replaces the whole color-replacement state.
func (s *Session) SetReplace(r ColorReplaceState) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.replace = r
	s.invalidate()
	return nil
}

// SetReplaceEnabled toggles the replacement pass. Disabling retains the
// colors and tolerance for later re-enabling.
func (s *Session) SetReplaceEnabled(enabled bool) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.replace.Enabled = enabled
	s.invalidate()
	return nil
}

// PickColorAt samples the last rendered composite at a preview-surface
// coordinate and installs the result as the replacement source color,
// enabling the pass. The sample is taken from the post-filter,
// post-prior-replacement buffer, before the crop mask overlay, so the
// picked color is exactly the one under the pointer.
func (s *Session) PickColorAt(x, y int) (imx.RGBColor, error) {
	if s.closed {
		return imx.RGBColor{}, ErrSessionClosed
	}
	if s.pickBuf == nil {
		if _, err := s.Preview(); err != nil {
			return imx.RGBColor{}, err
		}
	}

	c, err := PickColorAt(s.pickBuf, x, y)
	if err != nil {
		return imx.RGBColor{}, err
	}
	s.replace.From = c
	s.replace.Enabled = true
	s.invalidate()
	return c, nil
}

// Preview renders the interactive preview at the current display-area
// size: background, transformed and filtered image, color replacement,
// then the crop-frame mask and border. It is re-run by the host after
// every state mutation.
func (s *Session) Preview() (*image.RGBA, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	surfW := int(math.Round(s.displayW))
	surfH := int(math.Round(s.displayH))
	s.pickBuf = renderComposite(s.source, s.viewport.State, s.filters, s.replace, surfW, surfH)
	return overlayCropFrame(s.pickBuf, s.crop), nil
}

// Export re-renders the composition at exactly the target resolution and
// returns the encoded bitmap together with the session snapshot. The
// preview's crop-frame content and the exported bitmap match pixel for
// pixel up to resampling rounding. The session stays open; the host closes
// it when done.
func (s *Session) Export() (*ExportResult, error) {
	return s.ExportAs("png", 0)
}

// ExportAs is Export with an explicit output format: "png", or
// "jpeg"/"jpg" with a 1-100 quality.
func (s *Session) ExportAs(format string, quality int) (*ExportResult, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	buf := renderExport(s.source, s.viewport.State, s.filters, s.replace, s.crop, s.targetW, s.targetH)
	encoded, err := encodeExport(buf, format, quality)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Image:    encoded,
		Snapshot: s.Snapshot(),
	}, nil
}

// Snapshot returns the serializable bundle of the current viewport,
// filter and color-replacement state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Viewport:     s.viewport.State,
		Filters:      s.filters,
		ColorReplace: s.replace,
	}
}

// Restore applies a saved snapshot to the running session: all three
// states verbatim, then re-clamped against the current image and crop
// frame.
func (s *Session) Restore(snap Snapshot) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.restore(snap)
	return nil
}

func (s *Session) restore(snap Snapshot) {
	s.viewport.Restore(snap.Viewport)
	s.filters = snap.Filters
	s.replace = snap.ColorReplace
	s.invalidate()
}

// Close discards all uncommitted state and releases the source image. The
// host retains whatever it had before the editor was invoked.
func (s *Session) Close() {
	s.closed = true
	s.source = nil
	s.pickBuf = nil
}

func (s *Session) invalidate() {
	s.pickBuf = nil
}
