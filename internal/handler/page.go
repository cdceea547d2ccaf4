package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"regionview/internal/browse"
	"regionview/internal/display"
	"regionview/internal/geo"
	"regionview/internal/service"
	apperrors "regionview/pkg/errors"
	httputil "regionview/pkg/http"
	"regionview/pkg/logger"
	"regionview/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// PageHandler serves the region page and its browse modal.
type PageHandler struct {
	service  service.DisplayService
	bindings *browse.Bindings
	log      *logger.Logger
}

func NewPageHandler(service service.DisplayService, bindings *browse.Bindings, log *logger.Logger) *PageHandler {
	return &PageHandler{
		service:  service,
		bindings: bindings,
		log:      log,
	}
}

func (h *PageHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Page)
}

// Page handles one page load or one modal interaction. Without a shown
// display in the query the visitor is located; with one, the display is
// redrawn as it was and only the modal changes.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()

	ev, err := browse.ParseEvent(q)
	if err != nil {
		h.writeError(w, r, "Page", apperrors.InvalidInput(err.Error()))
		return
	}

	modal := browse.NewModal(h.bindings)
	modal.Restore(browse.ParseState(q))

	view := &PageView{}

	if ev.Kind == browse.EventSelect {
		state, err := modal.Dispatch(ev, h.service.Renderer(), &view.Recorder)
		if err != nil {
			h.writeError(w, r, "Page", apperrors.InvalidInput(err.Error()))
			return
		}
		h.service.Rendered(ctx, *state)
		view.State = *state
	} else {
		state, err := h.currentDisplay(r, &view.Recorder)
		if err != nil {
			h.writeError(w, r, "Page", apperrors.Internal("Failed to render page", err))
			return
		}
		view.State = state
		if _, err := modal.Dispatch(ev, nil, nil); err != nil {
			h.writeError(w, r, "Page", apperrors.InvalidInput(err.Error()))
			return
		}
	}

	view.ModalOpen = modal.IsOpen()
	if view.ModalOpen {
		view.Cards = cardViews(modal.Cards())
	}
	view.Links = pageLinks(view.State)

	h.log.Debug("Page rendered",
		"request_id", middleware.GetRequestID(ctx),
		"region", view.State.Region,
		"time", view.State.Period,
		"source", view.State.Source,
		"modal", modal.State().String(),
		"event", string(ev.Kind),
	)

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", view); err != nil {
		h.writeError(w, r, "Page", apperrors.Internal("Failed to render page", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write page", "handler", "Page", "operation", "Write", "error", err)
	}
}

// currentDisplay redraws the display named in the query, or resolves a new
// one for the visitor.
func (h *PageHandler) currentDisplay(r *http.Request, surface display.Surface) (display.State, error) {
	if shown, ok := shownDisplay(r.URL.Query()); ok {
		if err := h.service.Renderer().RenderState(surface, shown); err != nil {
			return display.State{}, err
		}
		return shown, nil
	}

	out, err := h.service.LoadContent(r.Context(), geo.ClientIP(r), surface)
	if err != nil {
		return display.State{}, err
	}
	return out.State, nil
}

func (h *PageHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, appErr *apperrors.AppError) {
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.log.Error("Page request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"handler", handler,
			"error", appErr,
		)
	}
	if err := httputil.WriteError(w, appErr); err != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", err)
	}
}
