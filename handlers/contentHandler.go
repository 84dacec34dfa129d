package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"coursegen/models"
	"coursegen/services"

	"github.com/gorilla/mux"
)

type ContentHandler struct {
	service *services.ContentService
}

func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/contents", h.GetAllContents).Methods("GET")
	router.HandleFunc("/contents", h.SaveContent).Methods("POST")
	router.HandleFunc("/contents/{id}", h.GetContent).Methods("GET")
	router.HandleFunc("/contents/{id}", h.DeleteContent).Methods("DELETE")
}

func (h *ContentHandler) GetAllContents(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.GetAllContents()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get contents")
		return
	}
	writeJSONResponse(w, http.StatusOK, contents)
}

func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	content, err := h.service.GetContentByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeErrorResponse(w, http.StatusNotFound, "Content not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get content")
		return
	}
	writeJSONResponse(w, http.StatusOK, content)
}

func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := h.service.SaveContent(&req)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, content)
}

func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	if err := h.service.DeleteContent(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeErrorResponse(w, http.StatusNotFound, "Content not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
