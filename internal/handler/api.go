package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"regionview/internal/display"
	"regionview/internal/geo"
	"regionview/internal/region"
	"regionview/internal/service"
	"regionview/internal/validator"
	apperrors "regionview/pkg/errors"
	httputil "regionview/pkg/http"
	"regionview/pkg/logger"
)

type DisplayResponse struct {
	State       display.State `json:"state"`
	Images      [2]ImageView  `json:"images"`
	Indicator   string        `json:"indicator"`
	Subtitle    string        `json:"subtitle"`
	FailureKind string        `json:"failure_kind,omitempty"`
}

type CatalogEntry struct {
	Region string       `json:"region"`
	Time   string       `json:"time"`
	Images [2]ImageView `json:"images"`
}

// DisplayHandler is the JSON counterpart of the page.
type DisplayHandler struct {
	service   service.DisplayService
	validator *validator.SelectionValidator
	log       *logger.Logger
}

func NewDisplayHandler(service service.DisplayService, validator *validator.SelectionValidator, log *logger.Logger) *DisplayHandler {
	return &DisplayHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

func (h *DisplayHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/display", h.Resolve)
	router.POST("/api/v1/display/selection", h.Select)
	router.GET("/api/v1/catalog", h.Catalog)
}

// Resolve locates the caller and returns the display the page would show.
func (h *DisplayHandler) Resolve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rec := &display.Recorder{}
	out, err := h.service.LoadContent(r.Context(), geo.ClientIP(r), rec)
	if err != nil {
		h.writeError(w, "Resolve", apperrors.Internal("Failed to render display", err))
		return
	}

	resp := newDisplayResponse(out.State, rec)
	if out.Err != nil {
		resp.FailureKind = geo.KindOf(out.Err).String()
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Resolve", "operation", "WriteSuccess", "error", err)
	}
}

// Select renders a manually chosen region and time.
func (h *DisplayHandler) Select(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.SelectionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Select", apperrors.PayloadTooLarge(maxBytesErr.Limit))
			return
		}
		h.writeError(w, "Select", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.writeError(w, "Select", apperrors.Validation("Invalid selection", verrs.Details()))
			return
		}
		h.writeError(w, "Select", apperrors.Internal("Failed to validate selection", err))
		return
	}

	rec := &display.Recorder{}
	state, err := h.service.Select(r.Context(), req.Combination(), rec)
	if err != nil {
		h.writeError(w, "Select", apperrors.Internal("Failed to render display", err))
		return
	}

	if err := httputil.WriteSuccess(w, newDisplayResponse(state, rec)); err != nil {
		h.log.Error("failed to write success response", "handler", "Select", "operation", "WriteSuccess", "error", err)
	}
}

// Catalog lists every combination with its two images.
func (h *DisplayHandler) Catalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	catalog := h.service.Renderer().Catalog()

	entries := make([]CatalogEntry, 0, len(region.Regions)*len(region.Periods))
	for _, combo := range region.Combinations() {
		pair, err := catalog.Lookup(combo.Region, combo.Period)
		if err != nil {
			h.writeError(w, "Catalog", apperrors.Internal("Catalog is incomplete", err))
			return
		}
		entry := CatalogEntry{Region: string(combo.Region), Time: string(combo.Period)}
		for i, img := range pair {
			entry.Images[i] = ImageView{Path: img.Path, URL: assetURL(img.Path), Label: img.Label}
		}
		entries = append(entries, entry)
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "Catalog", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DisplayHandler) writeError(w http.ResponseWriter, handler string, appErr *apperrors.AppError) {
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.log.Error("Request failed", "handler", handler, "error", appErr)
	}
	if err := httputil.WriteError(w, appErr); err != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", err)
	}
}

func newDisplayResponse(state display.State, rec *display.Recorder) DisplayResponse {
	return DisplayResponse{
		State:     state,
		Images:    imageViews(rec),
		Indicator: rec.Indicator,
		Subtitle:  rec.Subtitle,
	}
}
