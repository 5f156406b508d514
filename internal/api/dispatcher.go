package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// HandlerFunc is the typed target a normalized request dispatches to.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// RouteSet names every handler the fixed route table binds. All fields are
// required.
type RouteSet struct {
	Register   HandlerFunc
	Login      HandlerFunc
	Profile    HandlerFunc
	ListPosts  HandlerFunc
	CreatePost HandlerFunc
	GetPost    HandlerFunc
	UpdatePost HandlerFunc
	DeletePost HandlerFunc
}

type route struct {
	method  string
	path    string
	handler HandlerFunc
}

// Dispatcher maps a canonical request onto a handler: OPTIONS short-circuit,
// exact (method, path) matches, the single /posts/{id} parameterized form,
// 404 fall-through. It holds no per-request state.
type Dispatcher struct {
	fixed    []route
	postByID map[string]HandlerFunc
	logger   *slog.Logger
}

func NewDispatcher(routes RouteSet, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		fixed: []route{
			{http.MethodPost, "/auth/register", routes.Register},
			{http.MethodPost, "/auth/login", routes.Login},
			{http.MethodGet, "/profile", routes.Profile},
			{http.MethodGet, "/posts", routes.ListPosts},
			{http.MethodPost, "/posts", routes.CreatePost},
			{http.MethodGet, "/health", healthHandler},
		},
		postByID: map[string]HandlerFunc{
			http.MethodGet:    routes.GetPost,
			http.MethodPut:    routes.UpdatePost,
			http.MethodPatch:  routes.UpdatePost,
			http.MethodDelete: routes.DeletePost,
		},
		logger: logger,
	}
}

func healthHandler(_ context.Context, _ *Request) *Response {
	return Success(http.StatusOK, map[string]string{"message": "Healthy"})
}

// Dispatch routes one request and assembles the final response, CORS headers
// included. It never panics: a handler fault becomes a generic 500.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	// Preflight is answered before any route matching.
	if req.Method == http.MethodOptions {
		return &Response{StatusCode: http.StatusOK, Headers: mergeCORS(nil)}
	}

	handler := d.match(req)
	if handler == nil {
		return d.finalize(Error(http.StatusNotFound, "Not found"))
	}

	return d.finalize(d.invoke(ctx, handler, req))
}

// DispatchEvent parses a raw gateway event and dispatches it. Parse failures
// come back as client errors, in full envelope dress.
func (d *Dispatcher) DispatchEvent(ctx context.Context, raw []byte) *Response {
	req, err := ParseEvent(raw)
	if err != nil {
		return d.finalize(ErrorFrom(err))
	}
	return d.Dispatch(ctx, req)
}

func (d *Dispatcher) match(req *Request) HandlerFunc {
	for _, r := range d.fixed {
		if r.method == req.Method && r.path == req.Path {
			return r.handler
		}
	}

	// One parameterized form exists: /posts/{id}, a single segment.
	if rest, ok := strings.CutPrefix(req.Path, "/posts/"); ok {
		if rest != "" && !strings.Contains(rest, "/") {
			if handler, ok := d.postByID[req.Method]; ok {
				req.PathParams["id"] = rest
				return handler
			}
		}
	}

	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, handler HandlerFunc, req *Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("handler panic", "method", req.Method, "path", req.Path, "panic", rec)
			resp = Error(http.StatusInternalServerError, "Internal server error")
		}
	}()
	resp = handler(ctx, req)
	if resp == nil {
		d.logger.Error("handler returned nil response", "method", req.Method, "path", req.Path)
		resp = Error(http.StatusInternalServerError, "Internal server error")
	}
	return resp
}

func (d *Dispatcher) finalize(resp *Response) *Response {
	resp.Headers = mergeCORS(resp.Headers)
	return resp
}
