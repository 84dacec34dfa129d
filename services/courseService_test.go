package services

import (
	"testing"

	"coursegen/models"
)

func TestCourseMatchesSearch(t *testing.T) {
	course := &models.Course{
		Name:        "Introduction to Algorithms",
		Code:        "CS201",
		Programme:   "Computer Science",
		Semester:    "Fall",
		Year:        2026,
		Description: "Covers sorting, searching, and graph traversal.",
	}

	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{
			name:     "exact name match",
			query:    "Introduction to Algorithms",
			expected: true,
		},
		{
			name:     "case insensitive name match",
			query:    "ALGORITHMS",
			expected: true,
		},
		{
			name:     "partial name match",
			query:    "algo",
			expected: true,
		},
		{
			name:     "course code match",
			query:    "cs201",
			expected: true,
		},
		{
			name:     "programme match",
			query:    "computer",
			expected: true,
		},
		{
			name:     "description match",
			query:    "sorting",
			expected: true,
		},
		{
			name:     "no match",
			query:    "zzzz",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := courseMatchesSearch(course, tt.query)
			if result != tt.expected {
				t.Errorf("courseMatchesSearch(%q) = %v, expected %v", tt.query, result, tt.expected)
			}
		})
	}
}

func TestValidateCreateCourseRequest(t *testing.T) {
	service := &CourseService{}

	tests := []struct {
		name      string
		request   models.CreateCourseRequest
		expectErr bool
	}{
		{
			name: "valid request",
			request: models.CreateCourseRequest{
				Name: "Operating Systems",
				Code: "CS301",
				Year: 2026,
			},
			expectErr: false,
		},
		{
			name: "missing name",
			request: models.CreateCourseRequest{
				Code: "CS301",
			},
			expectErr: true,
		},
		{
			name: "whitespace name",
			request: models.CreateCourseRequest{
				Name: "   ",
				Code: "CS301",
			},
			expectErr: true,
		},
		{
			name: "missing code",
			request: models.CreateCourseRequest{
				Name: "Operating Systems",
			},
			expectErr: true,
		},
		{
			name: "negative year",
			request: models.CreateCourseRequest{
				Name: "Operating Systems",
				Code: "CS301",
				Year: -1,
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateCreateRequest(&tt.request)
			if tt.expectErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
