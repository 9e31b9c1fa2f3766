// Package imaging provides the leaf image utilities the editor core builds on.
//
// This package implements source-bitmap loading, the 8-bit RGB color model
// with hex parsing and Euclidean color distance, pixel sampling, and
// base64 encoding of rendered output. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Color Representation
//
// Colors are 8-bit RGB triples. Hex parsing is strict: exactly six hex
// digits with an optional "#" prefix; shorthand and alpha forms are
// rejected so a typo never silently becomes a wrong color. ColorDistance
// is the Euclidean metric on the 0-255 component scale, range [0, ~441.67],
// which is the space the color-replacement tolerance is expressed in.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Malformed hex color strings or data URIs
//   - Coordinates outside buffer bounds
//   - File, network or decoding failures during source loading
//   - Encoding errors during image output
//
// Source load failures are fatal to the editor session being opened; there
// is no partial-state fallback.
package imaging
