// Package editor implements the interactive raster image-editing core:
// the viewport transform engine, the composed filter pipeline, the
// tolerance-based color replacement pass, the preview renderer and the
// export compositor, tied together by a Session.
//
// # Coordinate Spaces
//
// World space is the source image's own pixel grid with its origin at the
// image center. Screen space is the render surface, with the conversion
//
//	world = (screen - (center + offset)) / zoom
//
// The crop frame is a fixed-aspect-ratio rectangle centered on the
// surface; everything inside it is exactly what an export produces.
//
// # State and Rendering
//
// A Session owns all mutable state (ViewportState, FilterState,
// ColorReplaceState) exclusively. Interaction is single-threaded and
// event-driven: each discrete input event mutates state synchronously,
// the offset and zoom are re-clamped as part of the mutation, and the
// host re-renders the preview from the single current state. No locking
// discipline is needed because there is exactly one logical actor;
// correctness rests on clamping after every mutation and rendering from
// the current snapshot only.
//
// Export re-runs the same composition at the target output resolution
// with the target-to-crop-frame scale folded into the zoom, so preview
// and export agree pixel for pixel inside the crop frame, up to
// resampling rounding.
package editor
