package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"coursegen/config"
	"coursegen/db"
	"coursegen/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	indexNamespace = "coursegen-sources"

	// llama3.1 embedding size.
	embeddingDimension = int32(4096)
)

const enrichmentPromptTemplate = `Summarize what the following excerpt from the course source "%s" covers and why it would be relevant for teaching. The summary must be self-contained: someone reading only the summary should understand the excerpt's content.

EXCERPT:
%s

Respond with the summary text only.`

func main() {
	log.Printf("[INFO] Starting source indexing process")

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("[ERROR] DB_URL environment variable is required")
	}
	if cfg.PineconeAPIKey == "" {
		log.Fatal("[ERROR] PINECONE_API_KEY environment variable is required")
	}

	sourceRepo, err := db.NewPostgresSourceRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize source database: %v", err)
	}
	defer sourceRepo.Close()

	llm, err := ollama.New(
		ollama.WithServerURL(cfg.OllamaBaseURL),
		ollama.WithModel(cfg.OllamaModel),
	)
	if err != nil {
		log.Fatalf("[ERROR] Failed to create Ollama client: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		log.Fatalf("[ERROR] Failed to create embedder: %v", err)
	}

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: cfg.PineconeAPIKey,
	})
	if err != nil {
		log.Fatalf("[ERROR] Failed to create Pinecone client: %v", err)
	}

	if err := ensurePineconeIndex(pc, cfg.PineconeIndexName); err != nil {
		log.Fatalf("[ERROR] Failed to ensure Pinecone index: %v", err)
	}

	allSources, err := sourceRepo.GetAllSources()
	if err != nil {
		log.Fatalf("[ERROR] Failed to retrieve sources: %v", err)
	}

	log.Printf("[INFO] Retrieved %d sources from database", len(allSources))

	for i, source := range allSources {
		log.Printf("[INFO] Processing source %d/%d (ID: %s, Name: %s)", i+1, len(allSources), source.ID, source.Name)

		if err := processSource(pc, cfg.PineconeIndexName, sourceRepo, source, llm, embedder); err != nil {
			log.Printf("[ERROR] Failed to process source %s: %v", source.ID, err)
			continue
		}

		log.Printf("[INFO] Successfully processed source %s", source.ID)
	}

	log.Printf("[INFO] Source indexing process completed")
}

func ensurePineconeIndex(pc *pinecone.Client, indexName string) error {
	ctx := context.Background()

	indexes, err := pc.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name == indexName {
			log.Printf("[INFO] Index %s already exists", indexName)
			return nil
		}
	}

	log.Printf("[INFO] Creating Pinecone index: %s", indexName)
	dimension := embeddingDimension
	deletionProtection := pinecone.DeletionProtectionDisabled
	metric := pinecone.Cosine

	_, err = pc.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:               indexName,
		Dimension:          &dimension,
		Metric:             &metric,
		Cloud:              pinecone.Aws,
		Region:             "us-east-1",
		DeletionProtection: &deletionProtection,
		Tags:               &pinecone.IndexTags{"project": "coursegen-indexing"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	for {
		idx, err := pc.DescribeIndex(ctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to describe index: %w", err)
		}
		if idx.Status.Ready {
			log.Printf("[INFO] Index %s is ready", indexName)
			break
		}
		log.Printf("[INFO] Waiting for index %s to be ready...", indexName)
		time.Sleep(10 * time.Second)
	}

	return nil
}

func processSource(pc *pinecone.Client, indexName string, repo db.SourceRepository, source *models.Source, llm llms.Model, embedder embeddings.Embedder) error {
	chunks, err := repo.GetChunksBySourceIDs([]string{source.ID})
	if err != nil {
		return fmt.Errorf("failed to load chunks: %w", err)
	}
	if len(chunks) == 0 {
		log.Printf("[INFO] No chunks stored for source %s", source.ID)
		return nil
	}
	log.Printf("[INFO] Loaded %d chunks for source %s", len(chunks), source.ID)

	if err := deleteExistingVectors(pc, indexName, source.ID); err != nil {
		return fmt.Errorf("failed to delete existing vectors: %w", err)
	}

	for i, chunk := range chunks {
		log.Printf("[INFO] Processing chunk %d/%d for source %s", i+1, len(chunks), source.ID)

		enriched, err := enrichChunk(llm, source.Name, chunk.Chunk)
		if err != nil {
			log.Printf("[ERROR] Failed to enrich chunk %d for source %s: %v", i+1, source.ID, err)
			log.Printf("[INFO] Using raw chunk content for chunk %d of source %s", i+1, source.ID)
			enriched = chunk.Chunk
		}

		vector, err := createChunkVector(source, chunk, enriched, embedder)
		if err != nil {
			return fmt.Errorf("failed to create vector for chunk %d: %w", i+1, err)
		}

		if err := upsertVector(pc, indexName, vector); err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", i+1, err)
		}
	}
	log.Printf("[INFO] Completed all %d chunks for source %s", len(chunks), source.ID)

	return nil
}

func enrichChunk(llm llms.Model, sourceName, chunk string) (string, error) {
	ctx := context.Background()

	prompt := fmt.Sprintf(enrichmentPromptTemplate, sourceName, chunk)

	summary, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(512))
	if err != nil {
		return "", fmt.Errorf("failed to generate enrichment: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

func createChunkVector(source *models.Source, chunk models.SourceChunk, enriched string, embedder embeddings.Embedder) (*pinecone.Vector, error) {
	ctx := context.Background()

	combinedText := fmt.Sprintf("Source: %s\n\nContent: %s\n\nContext: %s", source.Name, chunk.Chunk, enriched)

	vectors, err := embedder.EmbedDocuments(ctx, []string{combinedText})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	metadata, err := structpb.NewStruct(map[string]any{
		"source_id":        source.ID,
		"source_name":      source.Name,
		"content":          chunk.Chunk,
		"ord":              chunk.Order,
		"enriched_context": enriched,
		"created_at":       time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata struct: %w", err)
	}

	return &pinecone.Vector{
		Id:       fmt.Sprintf("source_%s_chunk_%d", source.ID, chunk.Order),
		Values:   &vectors[0],
		Metadata: metadata,
	}, nil
}

func deleteExistingVectors(pc *pinecone.Client, indexName, sourceID string) error {
	ctx := context.Background()

	idxConn, err := indexConnection(pc, indexName)
	if err != nil {
		return err
	}

	prefix := fmt.Sprintf("source_%s_", sourceID)
	limit := uint32(100)

	listResp, err := idxConn.ListVectors(ctx, &pinecone.ListVectorsRequest{
		Prefix: &prefix,
		Limit:  &limit,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Namespace not found") {
			log.Printf("[INFO] Namespace does not exist yet - no vectors to delete for source %s", sourceID)
			return nil
		}
		return fmt.Errorf("failed to list vectors: %w", err)
	}

	for len(listResp.VectorIds) > 0 {
		ids := make([]string, 0, len(listResp.VectorIds))
		for _, id := range listResp.VectorIds {
			if id != nil {
				ids = append(ids, *id)
			}
		}

		if len(ids) > 0 {
			if err := idxConn.DeleteVectorsById(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete vector batch: %w", err)
			}
			log.Printf("[INFO] Deleted %d vectors for source %s", len(ids), sourceID)
		}

		if listResp.NextPaginationToken == nil {
			break
		}
		listResp, err = idxConn.ListVectors(ctx, &pinecone.ListVectorsRequest{
			Prefix:          &prefix,
			Limit:           &limit,
			PaginationToken: listResp.NextPaginationToken,
		})
		if err != nil {
			return fmt.Errorf("failed to list next batch of vectors: %w", err)
		}
	}

	return nil
}

func upsertVector(pc *pinecone.Client, indexName string, vector *pinecone.Vector) error {
	ctx := context.Background()

	idxConn, err := indexConnection(pc, indexName)
	if err != nil {
		return err
	}

	if _, err := idxConn.UpsertVectors(ctx, []*pinecone.Vector{vector}); err != nil {
		return fmt.Errorf("failed to upsert vector: %w", err)
	}

	return nil
}

func indexConnection(pc *pinecone.Client, indexName string) (*pinecone.IndexConnection, error) {
	idxDesc, err := pc.DescribeIndex(context.Background(), indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := pc.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: indexNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}

	return idxConn, nil
}
