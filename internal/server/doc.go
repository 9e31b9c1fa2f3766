// Package server bridges a host application to the image editor core.
//
// This package provides a JSON-RPC 2.0 server over stdio so a host written
// in any language can open editor sessions, drive the interactive state
// (pan, zoom, filters, color replacement), fetch preview renders and
// confirm exports.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported methods:
//   - initialize: Protocol handshake
//   - ping: Health check
//   - editor/describe: Enumerate editor operations
//   - editor/open: Load a source and start a session
//   - editor/resize: Report the available display area
//   - editor/pan, editor/zoom, editor/zoom_at: Viewport interaction
//   - editor/filters, editor/filters_reset: Tone/color adjustments
//   - editor/pick_color, editor/replace: Color replacement
//   - editor/preview: Render the interactive preview
//   - editor/export: Render and encode the final bitmap
//   - editor/close: Discard the session (cancel)
//
// # Sessions
//
// editor/open returns a session_id addressing one edit of one source image
// toward one target output size. Every mutating method returns the full
// session state so the host can mirror it without extra round trips. A
// session lives until editor/close; closing without exporting discards all
// uncommitted state and yields no output.
//
// # Error Handling
//
// Editor operation errors are returned as JSON-RPC error responses with:
//   - code: -32000 (operation failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A source image that fails to load fails editor/open outright; no session
// is created. Malformed hex colors in editor/replace are field-level
// no-ops: the previous color is retained, matching the editor contract.
//
// # Usage
//
// The server is typically started by the host process:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
