package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"coursegen/models"
	"coursegen/services"

	"github.com/gorilla/mux"
)

type CourseHandler struct {
	service *services.CourseService
}

func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

func (h *CourseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/courses", h.GetAllCourses).Methods("GET")
	router.HandleFunc("/courses", h.CreateCourse).Methods("POST")
	router.HandleFunc("/courses/search", h.SearchCourses).Methods("GET")
	router.HandleFunc("/courses/{id}", h.GetCourse).Methods("GET")
	router.HandleFunc("/courses/{id}", h.UpdateCourse).Methods("PUT")
	router.HandleFunc("/courses/{id}", h.DeleteCourse).Methods("DELETE")
}

func (h *CourseHandler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetAllCourses()
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get courses")
		return
	}
	writeJSONResponse(w, http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	course, err := h.service.GetCourseByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeErrorResponse(w, http.StatusNotFound, "Course not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get course")
		return
	}
	writeJSONResponse(w, http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.service.CreateCourse(&req)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.service.UpdateCourse(id, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeErrorResponse(w, http.StatusNotFound, "Course not found")
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	if err := h.service.DeleteCourse(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeErrorResponse(w, http.StatusNotFound, "Course not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete course")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	courses, err := h.service.SearchCourses(query)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to search courses")
		return
	}
	writeJSONResponse(w, http.StatusOK, courses)
}

func parseIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
