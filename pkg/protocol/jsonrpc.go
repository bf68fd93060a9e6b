package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	// JSONRPCVersion is the protocol tag carried by every message.
	JSONRPCVersion = "2.0"
)

// ErrorCode represents standard JSON-RPC 2.0 error codes
type ErrorCode int

// Standard error codes as per JSON-RPC 2.0 specification
const (
	ParseError     ErrorCode = -32700
	InvalidRequest ErrorCode = -32600
	MethodNotFound ErrorCode = -32601
	InvalidParams  ErrorCode = -32602
	InternalError  ErrorCode = -32603
)

// Request represents a JSON-RPC 2.0 request. IDs are caller-assigned and a
// compliant server echoes them verbatim on the matching response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a new JSON-RPC 2.0 request, marshaling params if present.
func NewRequest(id int64, method string, params interface{}) (*Request, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		var err error
		paramsJSON, err = json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
	}

	return &Request{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Method:  method,
		Params:  paramsJSON,
	}, nil
}

// Response represents a JSON-RPC 2.0 response. Exactly one of Result or Error
// is set on a well-formed response; Valid reports whether that holds.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Valid reports whether the response carries the protocol tag and exactly one
// of result or error. A response with both, or neither, is unusable.
func (r *Response) Valid() bool {
	if r == nil || r.JSONRPC != JSONRPCVersion {
		return false
	}
	hasResult := len(r.Result) > 0 && string(r.Result) != "null"
	hasError := r.Error != nil
	return hasResult != hasError
}

// DecodeResult unmarshals the result object into v.
func (r *Response) DecodeResult(v interface{}) error {
	if len(r.Result) == 0 {
		return fmt.Errorf("response %v has no result", r.ID)
	}
	return json.Unmarshal(r.Result, v)
}

// ResultFields returns the result object as a generic map, or nil if the
// response has no decodable object result.
func (r *Response) ResultFields() map[string]interface{} {
	if r == nil || len(r.Result) == 0 {
		return nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(r.Result, &fields); err != nil {
		return nil
	}
	return fields
}

// Error represents a JSON-RPC 2.0 error object
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}
