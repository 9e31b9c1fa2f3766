package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// ImageSource is a decoded source bitmap together with its intrinsic
// dimensions. It is immutable once loaded: every rendering pass reads from
// it and writes somewhere else. A source is owned by exactly one editor
// session and is released when that session closes.
type ImageSource struct {
	// Image is the decoded bitmap, normalized to RGBA so render passes can
	// index raw pixel rows without a per-format type switch.
	Image *image.RGBA

	// Width is the intrinsic pixel width of the source.
	Width int

	// Height is the intrinsic pixel height of the source.
	Height int
}

// LoadSource loads an image source from a reference string.
//
// The reference may be:
//   - a "data:" URI with base64-encoded payload (previously edited bytes
//     round-trip through this form)
//   - an "http://" or "https://" URL
//   - a filesystem path
//
// Supported formats are whatever the registered image decoders accept;
// PNG and JPEG are always available, and JPEG sources are auto-oriented
// from their EXIF rotation tag.
//
// A load failure is fatal to the editor session being opened: no partial
// state is produced, and the caller is expected to surface the error to
// the host so it can close the editor.
func LoadSource(ref string) (*ImageSource, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err := decodeDataURI(ref)
		if err != nil {
			return nil, err
		}
		return SourceFromBytes(data)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return loadRemote(ref)
	default:
		return loadFile(ref)
	}
}

// SourceFromBytes decodes an in-memory encoded bitmap into an ImageSource.
func SourceFromBytes(data []byte) (*ImageSource, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return SourceFromImage(img), nil
}

// SourceFromImage wraps an already-decoded image as an ImageSource,
// normalizing it to RGBA.
func SourceFromImage(img image.Image) *ImageSource {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	return &ImageSource{
		Image:  rgba,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

func loadFile(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return SourceFromImage(img), nil
}

func loadRemote(url string) (*ImageSource, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return SourceFromBytes(data)
}

// decodeDataURI extracts the payload bytes from a base64 data URI such as
// "data:image/png;base64,iVBOR...".
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: missing payload separator")
	}
	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("malformed data URI: only base64 payloads are supported")
	}

	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("malformed data URI payload: %w", err)
	}
	return data, nil
}
