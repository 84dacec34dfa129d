package sources

import (
	"context"
	"fmt"

	"coursegen/db"
	"coursegen/models"

	"github.com/samber/lo"
)

// RepositoryStore serves stored chunks straight from the relational source
// repository, in their stored order. The topic is ignored.
type RepositoryStore struct {
	repo db.SourceRepository
}

func NewRepositoryStore(repo db.SourceRepository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

func (s *RepositoryStore) GetStoredChunks(ctx context.Context, selected []models.SourceRef, topic string) ([]models.SourceChunk, error) {
	sourceIDs := lo.Map(selected, func(ref models.SourceRef, _ int) string {
		return ref.ID
	})

	chunks, err := s.repo.GetChunksBySourceIDs(sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get chunks for sources %v: %w", sourceIDs, err)
	}

	return chunks, nil
}
