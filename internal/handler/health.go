package handler

import (
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"

	"regionview/internal/region"
	httputil "regionview/pkg/http"
	"regionview/pkg/logger"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog,omitempty"`
	Assets  string `json:"assets,omitempty"`
}

type HealthHandler struct {
	catalog   region.Catalog
	assetsDir string
	log       *logger.Logger
}

func NewHealthHandler(catalog region.Catalog, assetsDir string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		catalog:   catalog,
		assetsDir: assetsDir,
		log:       log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// Ready reports whether the catalog is complete and the image directory is
// mounted.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := HealthResponse{Status: "ready", Catalog: "ok", Assets: "ok"}
	status := http.StatusOK

	if err := h.catalog.Validate(); err != nil {
		h.log.Error("Catalog readiness check failed", "error", err, "path", r.URL.Path)
		resp.Catalog = "error"
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if info, err := os.Stat(h.assetsDir); err != nil || !info.IsDir() {
		h.log.Error("Assets readiness check failed", "assets_dir", h.assetsDir, "error", err, "path", r.URL.Path)
		resp.Assets = "missing"
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}
