package server

// Method describes one editor operation for hosts that discover the
// surface at runtime via editor/describe.
type Method struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by editor/open",
	}
}

func numberProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

// GetMethodDefinitions returns all editor operations
func GetMethodDefinitions() []Method {
	return []Method{
		{
			Name:        "editor/open",
			Description: "Load a source image and start an edit session targeting the given output size. Optionally resumes from a saved snapshot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Image reference: file path, http(s) URL or base64 data URI",
					},
					"target_width":   map[string]interface{}{"type": "integer", "description": "Output width in pixels (positive)"},
					"target_height":  map[string]interface{}{"type": "integer", "description": "Output height in pixels (positive)"},
					"display_width":  numberProp("Available display width for the preview; give both dimensions or neither"),
					"display_height": numberProp("Available display height for the preview; give both dimensions or neither"),
					"snapshot": map[string]interface{}{
						"type":        "object",
						"description": "Optional edit-session snapshot from a previous export",
					},
				},
				"required": []string{"source", "target_width", "target_height"},
			},
		},
		{
			Name:        "editor/resize",
			Description: "Report a new available display area. The crop frame is refitted and the viewport re-clamped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"width":      numberProp("Display area width"),
					"height":     numberProp("Display area height"),
				},
				"required": []string{"session_id", "width", "height"},
			},
		},
		{
			Name:        "editor/pan",
			Description: "Shift the viewport by a screen-space delta. The offset is clamped so the crop frame stays over the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"dx":         numberProp("Horizontal delta in screen px"),
					"dy":         numberProp("Vertical delta in screen px"),
				},
				"required": []string{"session_id", "dx", "dy"},
			},
		},
		{
			Name:        "editor/zoom",
			Description: "Set the zoom factor. Values below the minimum-zoom floor are clamped up.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"zoom":       numberProp("New zoom factor"),
				},
				"required": []string{"session_id", "zoom"},
			},
		},
		{
			Name:        "editor/zoom_at",
			Description: "Set the zoom factor anchored at a pointer position, as a wheel interaction does: the point under the pointer stays fixed on screen.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"zoom":       numberProp("New zoom factor"),
					"pointer_x":  numberProp("Pointer X on the preview surface"),
					"pointer_y":  numberProp("Pointer Y on the preview surface"),
				},
				"required": []string{"session_id", "zoom", "pointer_x", "pointer_y"},
			},
		},
		{
			Name:        "editor/filters",
			Description: "Partially update the filter state. Omitted fields keep their current values. Brightness/contrast/saturate are percent with 100 = identity; grayscale/sepia are percent with 0 = identity.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"brightness": numberProp("Brightness percent"),
					"contrast":   numberProp("Contrast percent"),
					"saturate":   numberProp("Saturation percent"),
					"grayscale":  numberProp("Grayscale percent (0-100)"),
					"sepia":      numberProp("Sepia percent (0-100)"),
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "editor/filters_reset",
			Description: "Restore all five filter adjustments to their defaults.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "editor/pick_color",
			Description: "Sample the rendered preview at a pixel and install the result as the color-replacement source, enabling the pass. The sample reflects current filters and prior replacements.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"x":          map[string]interface{}{"type": "integer", "description": "X on the preview surface (0-based)"},
					"y":          map[string]interface{}{"type": "integer", "description": "Y on the preview surface (0-based)"},
				},
				"required": []string{"session_id", "x", "y"},
			},
		},
		{
			Name:        "editor/replace",
			Description: "Partially update the color-replacement state. Hex colors that fail to parse leave the previous color unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"from":       map[string]interface{}{"type": "string", "description": "Source color, 6-digit hex"},
					"to":         map[string]interface{}{"type": "string", "description": "Replacement color, 6-digit hex"},
					"tolerance":  numberProp("Tolerance 0-100, scaled by 2.55 onto channel distance"),
					"enabled":    map[string]interface{}{"type": "boolean", "description": "Whether the replacement pass runs"},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "editor/preview",
			Description: "Render the interactive preview at the current display size, including the crop-frame overlay, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "editor/export",
			Description: "Render the composition at exactly the target resolution and return the encoded bitmap plus the session snapshot for later resumption.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
					"format":     map[string]interface{}{"type": "string", "description": "Output format: png (default) or jpeg"},
					"quality":    map[string]interface{}{"type": "integer", "description": "JPEG quality 1-100"},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "editor/close",
			Description: "Discard the session and all uncommitted state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionProp(),
				},
				"required": []string{"session_id"},
			},
		},
	}
}
