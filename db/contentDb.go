package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"coursegen/models"

	_ "github.com/lib/pq"
)

type ContentRepository interface {
	CreateContent(content *models.StoredContent) error
	GetContentByID(id int) (*models.StoredContent, error)
	GetAllContents() ([]*models.StoredContent, error)
	DeleteContent(id int) error
}

type PostgresContentRepository struct {
	db *sql.DB
}

func NewPostgresContentRepository(databaseURL string) (*PostgresContentRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresContentRepository{db: db}, nil
}

func (r *PostgresContentRepository) CreateContent(content *models.StoredContent) error {
	contentJSON, err := json.Marshal(content.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal content: %w", err)
	}

	query := `
		INSERT INTO coursegen.contents (title, language, content)
		VALUES ($1, $2, $3)
		RETURNING id, createdAt, updatedAt`

	row := r.db.QueryRow(query, content.Title, content.Language, contentJSON)

	if err := row.Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

func (r *PostgresContentRepository) GetContentByID(id int) (*models.StoredContent, error) {
	query := `
		SELECT id, title, language, content, createdAt, updatedAt
		FROM coursegen.contents
		WHERE id = $1`

	content := &models.StoredContent{}
	var contentJSON []byte
	row := r.db.QueryRow(query, id)

	err := row.Scan(&content.ID, &content.Title, &content.Language, &contentJSON,
		&content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("content with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if err := json.Unmarshal(contentJSON, &content.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content: %w", err)
	}

	return content, nil
}

func (r *PostgresContentRepository) GetAllContents() ([]*models.StoredContent, error) {
	query := `
		SELECT id, title, language, content, createdAt, updatedAt
		FROM coursegen.contents
		ORDER BY createdAt DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	contents := make([]*models.StoredContent, 0)
	for rows.Next() {
		content := &models.StoredContent{}
		var contentJSON []byte
		err := rows.Scan(&content.ID, &content.Title, &content.Language, &contentJSON,
			&content.CreatedAt, &content.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}

		if err := json.Unmarshal(contentJSON, &content.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content: %w", err)
		}

		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over contents: %w", err)
	}

	return contents, nil
}

func (r *PostgresContentRepository) DeleteContent(id int) error {
	query := "DELETE FROM coursegen.contents WHERE id = $1"

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("content with id %d not found", id)
	}

	return nil
}

func (r *PostgresContentRepository) Close() error {
	return r.db.Close()
}
