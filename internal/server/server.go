package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mlafefon/Ihulan-cover-sub001/internal/editor"
)

// Server bridges a host application to editor sessions over a JSON-RPC 2.0
// stdin/stdout stream. Each request is one line of JSON; each response is
// one line back. Sessions are addressed by string IDs handed out by
// editor/open.
type Server struct {
	sessions map[string]*editor.Session
	nextID   int
}

// Request represents an incoming JSON-RPC request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents an outgoing JSON-RPC response
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC error
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new bridge server instance
func New() *Server {
	return &Server{
		sessions: make(map[string]*editor.Session),
	}
}

// Run starts the bridge, reading requests from stdin and writing responses
// to stdout until stdin closes.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer size for large requests (embedded image data)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	case "editor/describe":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{"methods": GetMethodDefinitions()},
		}
	}

	var handler func(json.RawMessage) (interface{}, error)
	switch req.Method {
	case "editor/open":
		handler = s.handleOpen
	case "editor/resize":
		handler = s.handleResize
	case "editor/pan":
		handler = s.handlePan
	case "editor/zoom":
		handler = s.handleZoom
	case "editor/zoom_at":
		handler = s.handleZoomAt
	case "editor/filters":
		handler = s.handleFilters
	case "editor/filters_reset":
		handler = s.handleFiltersReset
	case "editor/pick_color":
		handler = s.handlePickColor
	case "editor/replace":
		handler = s.handleReplace
	case "editor/preview":
		handler = s.handlePreview
	case "editor/export":
		handler = s.handleExport
	case "editor/close":
		handler = s.handleClose
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}

	result, err := handler(req.Params)
	return s.respond(req, result, err)
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "1",
			"serverInfo": map[string]interface{}{
				"name":    "cover-editor",
				"version": "0.1.0",
			},
		},
	}
}

// respond wraps a handler result or error into a JSON-RPC response.
func (s *Server) respond(req *Request, result interface{}, err error) *Response {
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Editor operation failed", err.Error())
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// register stores a session under a fresh ID.
func (s *Server) register(sess *editor.Session) string {
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.sessions[id] = sess
	return id
}

// session looks up an open session by ID.
func (s *Server) session(id string) (*editor.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session: %s", id)
	}
	return sess, nil
}
