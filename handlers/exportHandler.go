package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"coursegen/models"
	"coursegen/services/render"

	"github.com/gorilla/mux"
)

const pptxMimeType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type ExportHandler struct {
	renderer *render.Service
}

func NewExportHandler(renderer *render.Service) *ExportHandler {
	return &ExportHandler{renderer: renderer}
}

func (h *ExportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/export/pdf", h.ExportPDF).Methods("POST")
	router.HandleFunc("/export/pptx", h.ExportPPTX).Methods("POST")
}

type exportRequest struct {
	Content  models.LectureContent `json:"content"`
	Language string                `json:"language"`
}

func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf")
}

func (h *ExportHandler) ExportPPTX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pptx")
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = models.LanguageEnglish
	}

	var document []byte
	var err error
	contentType := "application/pdf"
	if format == "pptx" {
		contentType = pptxMimeType
		document, err = h.renderer.RenderPPTX(r.Context(), &req.Content, req.Language)
	} else {
		document, err = h.renderer.RenderPDF(r.Context(), &req.Content, req.Language)
	}
	if err != nil {
		log.Printf("[ERROR] Export to %s failed: %v", format, err)
		writeErrorResponse(w, http.StatusBadGateway, "Document rendering failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="course-material.%s"`, format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(document); err != nil {
		log.Printf("[ERROR] Failed to write exported document: %v", err)
	}
}
