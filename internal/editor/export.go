package editor

import (
	"fmt"
	"image"

	imx "github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

// ExportResult is what the editor hands back to the host on confirm: the
// final bitmap at exactly the target resolution, encoded as a base64 data
// URI, plus the serializable session state for later resumption.
type ExportResult struct {
	Image    *imx.EncodedImage `json:"image"`
	Snapshot Snapshot          `json:"snapshot"`
}

// renderExport re-executes the shared composition at the exact target
// output resolution instead of the variable preview surface size.
//
// The ratio between target resolution and crop frame size,
// finalScale = targetWidth/cropWidth, is folded into the zoom and offset
// used for this one render; no independent export zoom is computed. A
// preview pixel at crop-frame-relative (x, y) therefore corresponds to the
// exported pixel at (x*finalScale, y*finalScale), up to resampling
// rounding. The crop overlay is omitted.
func renderExport(src *imx.ImageSource, vp ViewportState, filters FilterState, replace ColorReplaceState, crop CropFrame, targetW, targetH int) *image.RGBA {
	finalScale := float64(targetW) / crop.Width

	scaled := vp
	scaled.Zoom = vp.Zoom * finalScale
	scaled.OffsetX = vp.OffsetX * finalScale
	scaled.OffsetY = vp.OffsetY * finalScale

	return renderComposite(src, scaled, filters, replace, targetW, targetH)
}

// encodeExport encodes a rendered export buffer in the requested format.
// Format "" or "png" yields PNG; "jpeg"/"jpg" yields JPEG at the given
// quality.
func encodeExport(buf image.Image, format string, quality int) (*imx.EncodedImage, error) {
	switch format {
	case "", "png":
		return imx.EncodePNG(buf)
	case "jpeg", "jpg":
		return imx.EncodeJPEG(buf, quality)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
