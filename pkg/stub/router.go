package stub

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Prefix is the URL prefix routed to the stub handlers.
const Prefix = "/stubService"

// Pattern is the route registered for GET, HEAD and POST.
const Pattern = Prefix + "/*"

// wildcardName names the trailing wildcard on an http.ServeMux.
const wildcardName = "subpath"

// Router is the part of a routing table the handlers need. chi.Router
// satisfies it directly; MuxRouter adapts an http.ServeMux.
type Router interface {
	Get(pattern string, h http.HandlerFunc)
	Head(pattern string, h http.HandlerFunc)
	Post(pattern string, h http.HandlerFunc)
}

var _ Router = chi.Router(nil)

// MuxRouter adapts an http.ServeMux to Router. A trailing "/*" in the
// pattern becomes a {subpath...} wildcard.
type MuxRouter struct {
	Mux *http.ServeMux
}

// Get registers h for GET (and therefore HEAD) requests.
func (m MuxRouter) Get(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodGet, pattern, h)
}

// Head is a no-op: GET patterns on a ServeMux already serve HEAD.
func (m MuxRouter) Head(string, http.HandlerFunc) {}

// Post registers h for POST requests.
func (m MuxRouter) Post(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodPost, pattern, h)
}

func (m MuxRouter) handle(method, pattern string, h http.HandlerFunc) {
	if strings.HasSuffix(pattern, "/*") {
		pattern = strings.TrimSuffix(pattern, "*") + "{" + wildcardName + "...}"
	}
	m.Mux.HandleFunc(method+" "+pattern, h)
}

// SubPath returns the decoded part of the request path after the mock
// prefix, taken from the chi wildcard, the ServeMux wildcard, or the URL
// path, in that order. The path is decoded exactly once, so a fixture
// named "a%41.json" is reached with /stubService/a%2541.
func SubPath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if sub := rctx.URLParam("*"); sub != "" {
			// chi routes on RawPath when it is set, leaving the wildcard escaped.
			if r.URL.RawPath == "" {
				return sub
			}
			if unescaped, err := url.PathUnescape(sub); err == nil {
				return unescaped
			}
			return sub
		}
	}
	if sub := r.PathValue(wildcardName); sub != "" {
		return sub
	}
	return strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, Prefix), "/")
}
