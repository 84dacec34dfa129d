package handlers

import (
	"net/http"

	"coursegen/db"

	"github.com/gorilla/mux"
)

type SourceHandler struct {
	repo db.SourceRepository
}

func NewSourceHandler(repo db.SourceRepository) *SourceHandler {
	return &SourceHandler{repo: repo}
}

func (h *SourceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sources", h.GetAllSources).Methods("GET")
}

func (h *SourceHandler) GetAllSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.repo.GetAllSources()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get sources")
		return
	}
	writeJSONResponse(w, http.StatusOK, sources)
}
