package services

import (
	"fmt"
	"log"
	"strings"

	"coursegen/db"
	"coursegen/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

type CourseService struct {
	repo db.CourseRepository
}

func NewCourseService(repo db.CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) GetAllCourses() ([]*models.Course, error) {
	log.Printf("[INFO] Getting all courses")
	courses, err := s.repo.GetAllCourses()
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) GetCourseByID(id int) (*models.Course, error) {
	log.Printf("[INFO] Getting course with ID: %d", id)
	course, err := s.repo.GetCourseByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return course, nil
}

func (s *CourseService) CreateCourse(req *models.CreateCourseRequest) (*models.Course, error) {
	log.Printf("[INFO] Creating course: %s", req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:        req.Name,
		Code:        req.Code,
		Programme:   req.Programme,
		Semester:    req.Semester,
		Year:        req.Year,
		Description: req.Description,
	}
	if err := s.repo.CreateCourse(course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	log.Printf("[INFO] Created course with ID: %d", course.ID)
	return course, nil
}

func (s *CourseService) UpdateCourse(id int, req *models.UpdateCourseRequest) (*models.Course, error) {
	log.Printf("[INFO] Updating course with ID: %d", id)

	updates := make(map[string]any)
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("course name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Programme != nil {
		updates["programme"] = *req.Programme
	}
	if req.Semester != nil {
		updates["semester"] = *req.Semester
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := s.repo.UpdateCourse(id, updates); err != nil {
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}

	return s.repo.GetCourseByID(id)
}

func (s *CourseService) DeleteCourse(id int) error {
	log.Printf("[INFO] Deleting course with ID: %d", id)
	if err := s.repo.DeleteCourse(id); err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	return nil
}

// SearchCourses filters courses by fuzzy match against name, code, programme,
// and description.
func (s *CourseService) SearchCourses(query string) ([]*models.Course, error) {
	log.Printf("[INFO] Searching courses with query: %s", query)

	courses, err := s.repo.GetAllCourses()
	if err != nil {
		return nil, fmt.Errorf("failed to get courses for search: %w", err)
	}

	if strings.TrimSpace(query) == "" {
		return courses, nil
	}

	matched := lo.Filter(courses, func(course *models.Course, _ int) bool {
		return courseMatchesSearch(course, query)
	})
	return matched, nil
}

func courseMatchesSearch(course *models.Course, query string) bool {
	return fuzzy.MatchFold(query, course.Name) ||
		fuzzy.MatchFold(query, course.Code) ||
		fuzzy.MatchFold(query, course.Programme) ||
		fuzzy.MatchFold(query, course.Description)
}

func (s *CourseService) validateCreateRequest(req *models.CreateCourseRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("course name is required")
	}
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("course code is required")
	}
	if req.Year < 0 {
		return fmt.Errorf("course year cannot be negative")
	}
	return nil
}
