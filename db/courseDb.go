package db

import (
	"database/sql"
	"fmt"

	"coursegen/models"

	_ "github.com/lib/pq"
)

type CourseRepository interface {
	CreateCourse(course *models.Course) error
	GetCourseByID(id int) (*models.Course, error)
	GetAllCourses() ([]*models.Course, error)
	UpdateCourse(id int, updates map[string]any) error
	DeleteCourse(id int) error
}

type PostgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(databaseURL string) (*PostgresCourseRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresCourseRepository{db: db}, nil
}

func (r *PostgresCourseRepository) CreateCourse(course *models.Course) error {
	query := `
		INSERT INTO coursegen.courses (name, code, programme, semester, year, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, createdAt, updatedAt`

	row := r.db.QueryRow(query, course.Name, course.Code, course.Programme,
		course.Semester, course.Year, course.Description)

	if err := row.Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

func (r *PostgresCourseRepository) GetCourseByID(id int) (*models.Course, error) {
	query := `
		SELECT id, name, code, programme, semester, year, description, createdAt, updatedAt
		FROM coursegen.courses
		WHERE id = $1`

	course := &models.Course{}
	row := r.db.QueryRow(query, id)

	err := row.Scan(&course.ID, &course.Name, &course.Code, &course.Programme,
		&course.Semester, &course.Year, &course.Description, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("course with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

func (r *PostgresCourseRepository) GetAllCourses() ([]*models.Course, error) {
	query := `
		SELECT id, name, code, programme, semester, year, description, createdAt, updatedAt
		FROM coursegen.courses
		ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(&course.ID, &course.Name, &course.Code, &course.Programme,
			&course.Semester, &course.Year, &course.Description, &course.CreatedAt, &course.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over courses: %w", err)
	}

	return courses, nil
}

func (r *PostgresCourseRepository) UpdateCourse(id int, updates map[string]any) error {
	allowed := map[string]string{
		"name":        "name",
		"code":        "code",
		"programme":   "programme",
		"semester":    "semester",
		"year":        "year",
		"description": "description",
	}

	setClause := ""
	args := []any{}
	argIndex := 1
	for field, value := range updates {
		column, ok := allowed[field]
		if !ok {
			return fmt.Errorf("unknown course field: %s", field)
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += fmt.Sprintf("%s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if setClause == "" {
		return fmt.Errorf("no updates provided")
	}

	query := fmt.Sprintf(
		"UPDATE coursegen.courses SET %s, updatedAt = NOW() WHERE id = $%d",
		setClause, argIndex)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course with id %d not found", id)
	}

	return nil
}

func (r *PostgresCourseRepository) DeleteCourse(id int) error {
	query := "DELETE FROM coursegen.courses WHERE id = $1"

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course with id %d not found", id)
	}

	return nil
}

func (r *PostgresCourseRepository) Close() error {
	return r.db.Close()
}
