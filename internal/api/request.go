package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"pressroom/internal/common"
)

// Request is the canonical request descriptor every handler receives,
// whatever shape the hosting substrate delivered.
type Request struct {
	Method     string
	Path       string
	Headers    map[string]string
	Query      map[string]string
	PathParams map[string]string
	Body       []byte
}

// Header looks up a header case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// gatewayEvent covers the known inbound event shapes. Which fields are
// populated depends on the gateway payload version.
type gatewayEvent struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	RawPath               string            `json:"rawPath"`
	Headers               map[string]string `json:"headers"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	RequestContext        struct {
		HTTPMethod string `json:"httpMethod"`
		Path       string `json:"path"`
		HTTP       struct {
			Method string `json:"method"`
			Path   string `json:"path"`
		} `json:"http"`
	} `json:"requestContext"`
	Body json.RawMessage `json:"body"`
}

// ParseEvent normalizes a raw gateway event into a canonical Request. Both
// known shapes are accepted: the v2 form carries method/path under
// requestContext.http, the v1 form at the top level (with a requestContext
// variant as a fallback). The body arrives either as a JSON string to parse
// or as an embedded object; a malformed body is a bad-request error, never an
// internal fault.
func ParseEvent(raw []byte) (*Request, error) {
	var event gatewayEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, common.Errorf("malformed event: %w", common.ErrBadRequest)
	}

	method, path := "GET", "/"
	switch {
	case event.RequestContext.HTTP.Method != "":
		method = event.RequestContext.HTTP.Method
		path = event.RequestContext.HTTP.Path
		if path == "" {
			path = event.RawPath
		}
	case event.HTTPMethod != "":
		method = event.HTTPMethod
		if event.Path != "" {
			path = event.Path
		}
	case event.RequestContext.HTTPMethod != "":
		method = event.RequestContext.HTTPMethod
		if event.RequestContext.Path != "" {
			path = event.RequestContext.Path
		}
	}
	if path == "" {
		path = "/"
	}

	body, err := normalizeBody(event.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(event.Headers))
	for k, v := range event.Headers {
		headers[strings.ToLower(k)] = v
	}

	query := event.QueryStringParameters
	if query == nil {
		query = map[string]string{}
	}

	return &Request{
		Method:     strings.ToUpper(method),
		Path:       path,
		Headers:    headers,
		Query:      query,
		PathParams: map[string]string{},
		Body:       body,
	}, nil
}

func normalizeBody(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	// A string body holds JSON text to be parsed; anything else is already
	// structured.
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, common.Errorf("malformed request body: %w", common.ErrBadRequest)
		}
		if text == "" {
			return nil, nil
		}
		if !json.Valid([]byte(text)) {
			return nil, common.Errorf("malformed request body: %w", common.ErrBadRequest)
		}
		return []byte(text), nil
	}
	if !json.Valid(raw) {
		return nil, common.Errorf("malformed request body: %w", common.ErrBadRequest)
	}
	return raw, nil
}

// FromHTTP adapts a net/http request into the canonical descriptor.
func FromHTTP(r *http.Request) (*Request, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, common.Errorf("failed to read request body: %w", common.ErrBadRequest)
	}
	if len(body) > 0 && !json.Valid(body) {
		return nil, common.Errorf("malformed request body: %w", common.ErrBadRequest)
	}
	if len(body) == 0 {
		body = nil
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}

	query := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	return &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Headers:    headers,
		Query:      query,
		PathParams: map[string]string{},
		Body:       body,
	}, nil
}
