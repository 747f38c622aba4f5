package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/includeviz/pkg/buildinfo"
	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/graph"
	"github.com/matzehuels/includeviz/pkg/pipeline"
	"github.com/matzehuels/includeviz/pkg/storage"
)

// MaxBodyBytes bounds the size of an uploaded graph.
const MaxBodyBytes = 32 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// Handler serves the layout API.
type Handler struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
}

// NewHandler builds the routed handler. Layouts are computed by runner and
// persisted in store.
func NewHandler(runner *pipeline.Runner, store storage.Store, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{runner: runner, store: store, logger: logger.WithPrefix("http")}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(instrument)

	r.Get("/healthz", h.health)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", h.createLayout)
		r.Get("/{id}", h.getLayout)
		r.Get("/{id}/render", h.renderLayout)
		r.Delete("/{id}", h.deleteLayout)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (h *Handler) createLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := layoutOptions(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.runner.Layout(r.Context(), g, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.store.SaveLayout(r.Context(), res.Layout); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+res.Layout.ID)
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.LayoutHit))
	writeJSON(w, http.StatusCreated, res.Layout)
}

func (h *Handler) getLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadLayout(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handler) renderLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadLayout(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.RenderOptions{
		Formats: []string{format},
		Labels:  q.Get("labels") != "false",
		Types:   q["edge"],
	}
	if s := q.Get("scale"); s != "" {
		if opts.Scale, err = strconv.ParseFloat(s, 64); err != nil {
			h.writeError(w, errors.New(errors.ErrCodeInvalidOptions, "scale: %q is not a number", s))
			return
		}
	}
	if err := opts.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	artifacts, cached, err := h.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheHeader(cached))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (h *Handler) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateLayoutID(id); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.store.DeleteLayout(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadLayout(r *http.Request) (graph.Layout, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateLayoutID(id); err != nil {
		return graph.Layout{}, err
	}
	return h.store.GetLayout(r.Context(), id)
}

// layoutOptions overlays query parameters onto the defaults.
func layoutOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	q := r.URL.Query()

	floats := map[string]*float64{
		"min_node_spacing": &opts.MinNodeSpacing,
		"min_ring_gap":     &opts.MinRingGap,
		"base_radius":      &opts.BaseRadius,
	}
	for name, dst := range floats {
		if s := q.Get(name); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOptions, "%s: %q is not a number", name, s)
			}
			*dst = v
		}
	}

	ints := map[string]*int{
		"max_relax_passes": &opts.MaxRelaxPasses,
		"max_swap_passes":  &opts.MaxSwapPasses,
		"max_depth":        &opts.MaxDepth,
	}
	for name, dst := range ints {
		if s := q.Get(name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOptions, "%s: %q is not an integer", name, s)
			}
			*dst = v
		}
	}

	if p := q.Get("placer"); p != "" {
		opts.Placer = p
	}
	opts.Prefixes = q["prefix"]
	if s := q.Get("refresh"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidOptions, "refresh: %q is not a boolean", s)
		}
		opts.Refresh = v
	}
	return opts, opts.Validate()
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: string(code)})
}

func statusFor(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case stderrors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalid(err), errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeStorage), errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
