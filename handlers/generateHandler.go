package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"coursegen/models"
	"coursegen/services/generator"

	"github.com/gorilla/mux"
)

type GenerateHandler struct {
	generator *generator.Service
}

func NewGenerateHandler(generatorService *generator.Service) *GenerateHandler {
	return &GenerateHandler{generator: generatorService}
}

func (h *GenerateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/generate", h.GenerateContent).Methods("POST")
}

func (h *GenerateHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := h.generator.Generate(r.Context(), &req)
	if err != nil {
		log.Printf("[WARN] Rejected generation request: %v", err)
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, content)
}
