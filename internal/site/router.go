package site

import (
	"net/http"
	"net/url"
	"strings"

	"kernel-matrix/internal/nav"
	"kernel-matrix/internal/render"
	"kernel-matrix/internal/report"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type API struct {
	auth    *Auth
	loader  *Loader
	archive Archive
	obs     *Observability
}

func NewAPI(auth *Auth, loader *Loader, archive Archive, obs *Observability) *API {
	return &API{
		auth:    auth,
		loader:  loader,
		archive: archive,
		obs:     obs,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /api/v1/status", a.handleStatus)

	mux.HandleFunc("GET /api/v1/summary", a.handleSummary)
	mux.HandleFunc("GET /api/v1/matrix", a.handleMatrix)
	mux.HandleFunc("GET /api/v1/cards", a.handleCards)
	mux.HandleFunc("GET /api/v1/kernels/{name}", a.handleKernel)
	mux.HandleFunc("GET /api/v1/view", a.handleView)

	mux.Handle("POST /api/v1/refresh", a.auth.RequireAdmin(http.HandlerFunc(a.handleRefresh)))
	mux.Handle("GET /api/v1/archive", a.auth.RequireAdmin(http.HandlerFunc(a.handleArchive)))

	mux.HandleFunc("GET /reports/index.md", a.handleIndexMarkdown)
	mux.HandleFunc("GET /reports/matrix.md", a.handleMatrixMarkdown)
	mux.HandleFunc("GET /reports/{file}", a.handleKernelMarkdown)
	mux.HandleFunc("GET /llms.txt", a.handleLinkIndex)
	mux.HandleFunc("GET /llms-full.txt", a.handleFullExport)
	mux.HandleFunc("GET /preview.svg", a.handleDocumentImage)
	mux.HandleFunc("GET /preview/{name}", a.handleKernelImage)

	wrapped := otelhttp.NewHandler(mux, "kernel-matrix-http")
	return withCORS(wrapped)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": nowRFC3339(),
	})
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.loader.Status())
}

// document fetches the installed document or answers 503. Every read
// endpoint goes through here; none of them ever trigger a fetch.
func (a *API) document(w http.ResponseWriter) (*report.Document, bool) {
	doc := a.loader.Current()
	if doc == nil {
		status := a.loader.Status()
		message := "document not loaded"
		if status.Error != "" {
			message = "document not loaded: " + status.Error
		}
		writeError(w, http.StatusServiceUnavailable, message)
		return nil, false
	}
	return doc, true
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.BuildSummaryView(doc))
}

func (a *API) handleMatrix(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.BuildMatrixView(doc))
}

func (a *API) handleCards(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.BuildCardsView(doc))
}

func (a *API) handleKernel(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.PathValue("name"))
	rep, found := doc.Find(name)
	if !found {
		writeError(w, http.StatusNotFound, "kernel not found")
		return
	}
	writeJSON(w, http.StatusOK, render.BuildKernelView(rep))
}

// handleView resolves an addressable location string to its view state and
// payload, falling back to the summary for anything unrecognized.
func (a *API) handleView(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	location := r.URL.Query().Get("location")
	state := nav.DecodeLocation(location, doc)
	response := map[string]any{
		"mode":     string(state.Mode),
		"kernel":   state.Kernel,
		"location": state.Encode(),
	}
	if state.Kernel != "" {
		rep, _ := doc.Find(state.Kernel)
		response["view"] = render.BuildKernelView(rep)
	} else {
		switch state.Mode {
		case nav.ModeMatrix:
			response["view"] = render.BuildMatrixView(doc)
		case nav.ModeCards:
			response["view"] = render.BuildCardsView(doc)
		default:
			response["view"] = render.BuildSummaryView(doc)
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := a.loader.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a.loader.Status())
}

func (a *API) handleArchive(w http.ResponseWriter, r *http.Request) {
	if a.archive == nil {
		writeError(w, http.StatusNotFound, "archive not configured")
		return
	}
	entries, err := a.archive.List(r.Context(), parseLimit(r, 50, 500))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "archive list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": entries})
}

func (a *API) handleIndexMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	a.obs.MarkRender(r.Context(), "markdown")
	writeText(w, http.StatusOK, "text/markdown; charset=utf-8", render.Index(doc))
}

func (a *API) handleMatrixMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	a.obs.MarkRender(r.Context(), "markdown")
	writeText(w, http.StatusOK, "text/markdown; charset=utf-8", render.Matrix(doc))
}

func (a *API) handleKernelMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".md") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	name := kernelNameFromPath(strings.TrimSuffix(file, ".md"))
	a.obs.MarkRender(r.Context(), "markdown")
	rep, found := doc.Find(name)
	if !found {
		writeText(w, http.StatusNotFound, "text/markdown; charset=utf-8", render.KernelNotFound(name))
		return
	}
	writeText(w, http.StatusOK, "text/markdown; charset=utf-8", render.KernelDetail(rep))
}

func (a *API) handleLinkIndex(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	a.obs.MarkRender(r.Context(), "feed")
	writeText(w, http.StatusOK, "text/plain; charset=utf-8", render.LinkIndex(doc))
}

func (a *API) handleFullExport(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	a.obs.MarkRender(r.Context(), "feed")
	writeText(w, http.StatusOK, "text/plain; charset=utf-8", render.FullExport(doc))
}

func (a *API) handleDocumentImage(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	a.obs.MarkRender(r.Context(), "image")
	writeText(w, http.StatusOK, "image/svg+xml", render.DocumentImage(doc))
}

func (a *API) handleKernelImage(w http.ResponseWriter, r *http.Request) {
	doc, ok := a.document(w)
	if !ok {
		return
	}
	file := r.PathValue("name")
	if !strings.HasSuffix(file, ".svg") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	name := kernelNameFromPath(strings.TrimSuffix(file, ".svg"))
	a.obs.MarkRender(r.Context(), "image")
	rep, found := doc.Find(name)
	if !found {
		writeText(w, http.StatusNotFound, "image/svg+xml", render.NotFoundImage(name))
		return
	}
	writeText(w, http.StatusOK, "image/svg+xml", render.KernelImage(rep))
}

// kernelNameFromPath undoes the percent-encoding used in exported file names.
// A segment that fails to decode is used as-is.
func kernelNameFromPath(segment string) string {
	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Token")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
