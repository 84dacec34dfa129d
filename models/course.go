package models

import "time"

type Course struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Programme   string    `json:"programme"`
	Semester    string    `json:"semester"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCourseRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Programme   string `json:"programme"`
	Semester    string `json:"semester"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Programme   *string `json:"programme,omitempty"`
	Semester    *string `json:"semester,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Description *string `json:"description,omitempty"`
}
