package pinecone

import (
	"context"
	"fmt"
	"log"
	"slices"

	"coursegen/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"google.golang.org/protobuf/types/known/structpb"
)

const chunksPerSource = 20

// Service is the semantic chunk store: source chunks indexed as vectors,
// queried per generation request and filtered to the selected sources.
type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
	namespace string
}

func NewService(apiKey, indexName string, embedder embeddings.Embedder) (*Service, error) {
	log.Printf("[INFO] Initializing Pinecone chunk store for index %s", indexName)

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	service := &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
		namespace: "coursegen-sources",
	}

	log.Printf("[INFO] Pinecone chunk store initialized successfully")
	return service, nil
}

// GetStoredChunks retrieves the most relevant chunks for each selected
// source, ranked against the session topic and restored to document order.
func (s *Service) GetStoredChunks(ctx context.Context, selected []models.SourceRef, topic string) ([]models.SourceChunk, error) {
	log.Printf("[INFO] Querying Pinecone for %d sources, topic %q", len(selected), topic)

	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: s.namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}

	queryText := topic
	if queryText == "" {
		queryText = "course material overview"
	}
	queryEmbeddings, err := s.embedder.EmbedDocuments(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query topic: %w", err)
	}

	var allChunks []models.SourceChunk

	for _, ref := range selected {
		log.Printf("[INFO] Querying chunks for source %s (%s)", ref.Name, ref.ID)

		filter, err := structpb.NewStruct(map[string]any{
			"source_id": ref.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build metadata filter for source %s: %w", ref.ID, err)
		}

		result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
			Vector:          queryEmbeddings[0],
			TopK:            chunksPerSource,
			MetadataFilter:  filter,
			IncludeValues:   false,
			IncludeMetadata: true,
		})
		if err != nil {
			log.Printf("[ERROR] Failed to query vectors for source %s: %v", ref.ID, err)
			continue
		}

		sourceChunks := make([]models.SourceChunk, 0, len(result.Matches))
		for _, match := range result.Matches {
			if match.Vector.Metadata == nil {
				continue
			}
			metadata := match.Vector.Metadata.AsMap()

			content, ok := metadata["content"].(string)
			if !ok || content == "" {
				continue
			}

			chunk := models.SourceChunk{
				Chunk:      content,
				SourceName: ref.Name,
			}
			if name, ok := metadata["source_name"].(string); ok && name != "" {
				chunk.SourceName = name
			}
			if ord, ok := metadata["ord"].(float64); ok {
				chunk.Order = int(ord)
			}
			sourceChunks = append(sourceChunks, chunk)
		}

		// Restore document order within the source.
		slices.SortFunc(sourceChunks, func(a, b models.SourceChunk) int {
			return a.Order - b.Order
		})

		log.Printf("[INFO] Retrieved %d chunks for source %s", len(sourceChunks), ref.ID)
		allChunks = append(allChunks, sourceChunks...)
	}

	if len(allChunks) == 0 {
		log.Printf("[WARN] No chunks found for selected sources")
		return []models.SourceChunk{}, nil
	}

	log.Printf("[INFO] Total chunks collected: %d", len(allChunks))
	return allChunks, nil
}
