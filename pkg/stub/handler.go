package stub

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/getmockd/stubservice/pkg/config"
	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/getmockd/stubservice/pkg/httputil"
	"github.com/getmockd/stubservice/pkg/logging"
)

// Handler serves fixture-backed GET and POST requests.
type Handler struct {
	resolver *fixture.Resolver
	maxBody  int64
	log      *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithResolver replaces the resolver built from the configuration.
func WithResolver(r *fixture.Resolver) Option {
	return func(h *Handler) {
		if r != nil {
			h.resolver = r
		}
	}
}

// NewHandler builds a Handler from cfg.
func NewHandler(cfg config.Config, opts ...Option) *Handler {
	h := &Handler{
		maxBody: cfg.MaxBodyBytes,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.resolver == nil {
		h.resolver = fixture.NewResolver(cfg.StubDir,
			fixture.WithConfinement(cfg.ConfinePaths),
			fixture.WithLogger(h.log),
		)
	}
	return h
}

// Register attaches the GET, HEAD and POST handlers for Pattern to r and
// returns the Handler behind them. Nothing else is registered.
func Register(r Router, cfg config.Config, opts ...Option) *Handler {
	h := NewHandler(cfg, opts...)
	r.Get(Pattern, h.ServeGet)
	r.Head(Pattern, h.ServeGet)
	r.Post(Pattern, h.ServePost)
	return h
}

// ServeGet answers with the fixture for the request's sub-path.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	sub := SubPath(r)

	path, err := h.resolver.CapturePath(sub)
	if err != nil {
		h.writePathError(w, r, sub, err)
		return
	}

	data, err := fixture.Read(path)
	if err != nil {
		h.log.DebugContext(r.Context(), "fixture not served", "subPath", sub, "error", err)
		writePayload(w, http.StatusNotFound, FileNotFound)
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, data)
}

// ServePost captures the request body as the sub-path's fixture and
// answers with the matching postresp fixture, or Success without one.
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	sub := SubPath(r)

	body, err := decodeBody(r, h.maxBody)
	if err != nil {
		h.writeBodyError(w, r, sub, err)
		return
	}

	capturePath, err := h.resolver.CapturePath(sub)
	if err != nil {
		h.writePathError(w, r, sub, err)
		return
	}
	responsePath, err := h.resolver.ResponsePath(sub)
	if err != nil {
		h.writePathError(w, r, sub, err)
		return
	}

	if err := fixture.Write(capturePath, body); err != nil {
		h.log.WarnContext(r.Context(), "capture failed", "subPath", sub, "path", capturePath, "error", err)
		if errors.Is(err, fixture.ErrDirectoryMissing) {
			writePayload(w, http.StatusInternalServerError, DirectoryMissing)
			return
		}
		httputil.WriteText(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.log.DebugContext(r.Context(), "captured request body", "subPath", sub, "path", capturePath, "bytes", len(body))

	if !fixture.Exists(responsePath) {
		writePayload(w, http.StatusOK, Success)
		return
	}
	data, err := fixture.Read(responsePath)
	if err != nil {
		h.log.DebugContext(r.Context(), "response fixture vanished", "subPath", sub, "error", err)
		writePayload(w, http.StatusNotFound, FileNotFound)
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, data)
}

// writePathError maps a path resolution failure. A refused traversal is a
// 403; anything else is a 404 carrying the error text.
func (h *Handler) writePathError(w http.ResponseWriter, r *http.Request, sub string, err error) {
	if errors.Is(err, fixture.ErrOutsideStubDir) {
		h.log.WarnContext(r.Context(), "refused path outside stub directory", "subPath", sub)
		writePayload(w, http.StatusForbidden, OutsideStubDir)
		return
	}
	h.log.ErrorContext(r.Context(), "resolving fixture path", "subPath", sub, "error", err)
	httputil.WriteText(w, http.StatusNotFound, err.Error())
}

func (h *Handler) writeBodyError(w http.ResponseWriter, r *http.Request, sub string, err error) {
	h.log.DebugContext(r.Context(), "rejected request body", "subPath", sub, "error", err)
	switch {
	case errors.Is(err, errBodyTooLarge):
		writePayload(w, http.StatusRequestEntityTooLarge, PayloadTooLarge)
	case errors.Is(err, errInvalidBody):
		writePayload(w, http.StatusBadRequest, InvalidBody)
	default:
		httputil.WriteText(w, http.StatusBadRequest, err.Error())
	}
}
