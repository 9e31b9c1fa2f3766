package server

import (
	"encoding/json"
	"fmt"

	"github.com/mlafefon/Ihulan-cover-sub001/internal/editor"
	"github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

// sessionState is the state payload returned after every mutating call so
// the host can mirror the editor state without extra round trips.
type sessionState struct {
	SessionID    string                   `json:"session_id"`
	CropFrame    editor.CropFrame         `json:"crop_frame"`
	Viewport     editor.ViewportState     `json:"viewport"`
	Filters      editor.FilterState       `json:"filters"`
	ColorReplace editor.ColorReplaceState `json:"color_replace"`
}

func stateOf(id string, sess *editor.Session) *sessionState {
	return &sessionState{
		SessionID:    id,
		CropFrame:    sess.CropFrame(),
		Viewport:     sess.Viewport(),
		Filters:      sess.Filters(),
		ColorReplace: sess.Replace(),
	}
}

// === Session Lifecycle Handlers ===

type openArgs struct {
	Source        string           `json:"source"`
	TargetWidth   int              `json:"target_width"`
	TargetHeight  int              `json:"target_height"`
	DisplayWidth  float64          `json:"display_width"`
	DisplayHeight float64          `json:"display_height"`
	Snapshot      *editor.Snapshot `json:"snapshot,omitempty"`
}

type openResult struct {
	*sessionState
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`
}

func (s *Server) handleOpen(args json.RawMessage) (interface{}, error) {
	var a openArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// The display area is both-or-neither; half of one is a host bug, not
	// something to paper over with the target-size default.
	if (a.DisplayWidth > 0) != (a.DisplayHeight > 0) {
		return nil, fmt.Errorf("display area requires both width and height, got %gx%g", a.DisplayWidth, a.DisplayHeight)
	}

	src, err := imaging.LoadSource(a.Source)
	if err != nil {
		return nil, err
	}
	sess, err := editor.NewSession(src, a.TargetWidth, a.TargetHeight, a.Snapshot)
	if err != nil {
		return nil, err
	}
	if a.DisplayWidth > 0 && a.DisplayHeight > 0 {
		if err := sess.SetDisplayArea(a.DisplayWidth, a.DisplayHeight); err != nil {
			return nil, err
		}
	}

	id := s.register(sess)
	return &openResult{
		sessionState: stateOf(id, sess),
		ImageWidth:   src.Width,
		ImageHeight:  src.Height,
	}, nil
}

type closeArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleClose(args json.RawMessage) (interface{}, error) {
	var a closeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Close()
	delete(s.sessions, a.SessionID)
	// Cancel emits nothing; the host keeps its prior state.
	return map[string]interface{}{}, nil
}

// === Viewport Handlers ===

type resizeArgs struct {
	SessionID string  `json:"session_id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetDisplayArea(a.Width, a.Height); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

type panArgs struct {
	SessionID string  `json:"session_id"`
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
}

func (s *Server) handlePan(args json.RawMessage) (interface{}, error) {
	var a panArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Pan(a.DX, a.DY); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

type zoomArgs struct {
	SessionID string  `json:"session_id"`
	Zoom      float64 `json:"zoom"`
}

func (s *Server) handleZoom(args json.RawMessage) (interface{}, error) {
	var a zoomArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetZoom(a.Zoom); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

type zoomAtArgs struct {
	SessionID string  `json:"session_id"`
	Zoom      float64 `json:"zoom"`
	PointerX  float64 `json:"pointer_x"`
	PointerY  float64 `json:"pointer_y"`
}

func (s *Server) handleZoomAt(args json.RawMessage) (interface{}, error) {
	var a zoomAtArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.ZoomAt(a.PointerX, a.PointerY, a.Zoom); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

// === Filter Handlers ===

type filtersArgs struct {
	SessionID  string   `json:"session_id"`
	Brightness *float64 `json:"brightness,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Saturate   *float64 `json:"saturate,omitempty"`
	Grayscale  *float64 `json:"grayscale,omitempty"`
	Sepia      *float64 `json:"sepia,omitempty"`
}

// handleFilters applies a partial filter update: omitted fields keep their
// current values.
func (s *Server) handleFilters(args json.RawMessage) (interface{}, error) {
	var a filtersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	f := sess.Filters()
	if a.Brightness != nil {
		f.Brightness = *a.Brightness
	}
	if a.Contrast != nil {
		f.Contrast = *a.Contrast
	}
	if a.Saturate != nil {
		f.Saturate = *a.Saturate
	}
	if a.Grayscale != nil {
		f.Grayscale = *a.Grayscale
	}
	if a.Sepia != nil {
		f.Sepia = *a.Sepia
	}
	if err := sess.SetFilters(f); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

type filtersResetArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleFiltersReset(args json.RawMessage) (interface{}, error) {
	var a filtersResetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.ResetFilters(); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

// === Color Replacement Handlers ===

type pickColorArgs struct {
	SessionID string `json:"session_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

type pickColorResult struct {
	*sessionState
	Color imaging.RGBColor `json:"color"`
	Hex   string           `json:"hex"`
}

func (s *Server) handlePickColor(args json.RawMessage) (interface{}, error) {
	var a pickColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	c, err := sess.PickColorAt(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &pickColorResult{
		sessionState: stateOf(a.SessionID, sess),
		Color:        c,
		Hex:          c.Hex(),
	}, nil
}

type replaceArgs struct {
	SessionID string   `json:"session_id"`
	From      *string  `json:"from,omitempty"` // hex color
	To        *string  `json:"to,omitempty"`   // hex color
	Tolerance *float64 `json:"tolerance,omitempty"`
	Enabled   *bool    `json:"enabled,omitempty"`
}

// handleReplace applies a partial update to the replacement state. A hex
// color that fails to parse is a no-op for that field: the previous color
// is retained rather than failing the request.
func (s *Server) handleReplace(args json.RawMessage) (interface{}, error) {
	var a replaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	r := sess.Replace()
	if a.From != nil {
		if c, err := imaging.ParseHexColor(*a.From); err == nil {
			r.From = c
		}
	}
	if a.To != nil {
		if c, err := imaging.ParseHexColor(*a.To); err == nil {
			r.To = c
		}
	}
	if a.Tolerance != nil {
		r.Tolerance = *a.Tolerance
	}
	if a.Enabled != nil {
		r.Enabled = *a.Enabled
	}
	if err := sess.SetReplace(r); err != nil {
		return nil, err
	}
	return stateOf(a.SessionID, sess), nil
}

// === Render Handlers ===

type previewArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	buf, err := sess.Preview()
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(buf)
}

type exportArgs struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`  // "png" (default) or "jpeg"
	Quality   int    `json:"quality"` // JPEG only, 1-100
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	return sess.ExportAs(a.Format, a.Quality)
}
