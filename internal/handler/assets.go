package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// AssetsHandler serves the catalog images and stylesheet from disk.
type AssetsHandler struct {
	dir string
}

func NewAssetsHandler(dir string) *AssetsHandler {
	return &AssetsHandler{dir: dir}
}

func (h *AssetsHandler) RegisterRoutes(router *httprouter.Router) {
	router.ServeFiles(assetsPrefix+"*filepath", http.Dir(h.dir))
}
