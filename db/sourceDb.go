package db

import (
	"database/sql"
	"fmt"

	"coursegen/models"

	"github.com/lib/pq"
)

type SourceRepository interface {
	GetAllSources() ([]*models.Source, error)
	GetChunksBySourceIDs(sourceIDs []string) ([]models.SourceChunk, error)
}

type PostgresSourceRepository struct {
	db *sql.DB
}

func NewPostgresSourceRepository(databaseURL string) (*PostgresSourceRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSourceRepository{db: db}, nil
}

func (r *PostgresSourceRepository) GetAllSources() ([]*models.Source, error) {
	query := `
		SELECT id, name
		FROM coursegen.sources
		ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	sources := make([]*models.Source, 0)
	for rows.Next() {
		source := &models.Source{}
		if err := rows.Scan(&source.ID, &source.Name); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over sources: %w", err)
	}

	return sources, nil
}

func (r *PostgresSourceRepository) GetChunksBySourceIDs(sourceIDs []string) ([]models.SourceChunk, error) {
	query := `
		SELECT c.chunk, s.name, c.ord
		FROM coursegen.source_chunks c
		JOIN coursegen.sources s ON s.id = c.source_id
		WHERE c.source_id = ANY($1)
		ORDER BY s.name ASC, c.ord ASC`

	rows, err := r.db.Query(query, pq.Array(sourceIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query source chunks: %w", err)
	}
	defer rows.Close()

	chunks := make([]models.SourceChunk, 0)
	for rows.Next() {
		var chunk models.SourceChunk
		if err := rows.Scan(&chunk.Chunk, &chunk.SourceName, &chunk.Order); err != nil {
			return nil, fmt.Errorf("failed to scan source chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over source chunks: %w", err)
	}

	return chunks, nil
}

func (r *PostgresSourceRepository) Close() error {
	return r.db.Close()
}
