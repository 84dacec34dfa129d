package sources

import (
	"context"
	"fmt"
	"log"
	"strings"

	"coursegen/models"

	"github.com/samber/lo"
)

// ChunkStore retrieves stored text chunks for the selected sources. The topic
// lets semantic stores rank results; relational stores may ignore it.
type ChunkStore interface {
	GetStoredChunks(ctx context.Context, selected []models.SourceRef, topic string) ([]models.SourceChunk, error)
}

// Service assembles the source material bundle that every prompt step reads.
type Service struct {
	store       ChunkStore
	tokenBudget int
}

func NewService(store ChunkStore, tokenBudget int) *Service {
	return &Service{
		store:       store,
		tokenBudget: tokenBudget,
	}
}

// Prepare builds the SourceBundle for one generation request. It never fails:
// with no selected sources (or none retrievable) it synthesizes a course
// context block, and any retrieval error degrades to a placeholder bundle.
func (s *Service) Prepare(ctx context.Context, selected []models.SourceRef, topicName string, courseInfo *models.CourseInfo) *models.SourceBundle {
	selectedSources := lo.Filter(selected, func(ref models.SourceRef, _ int) bool {
		return ref.Selected
	})

	log.Printf("[INFO] Preparing source content from %d selected sources for topic %q", len(selectedSources), topicName)

	if len(selectedSources) == 0 {
		log.Printf("[INFO] No sources selected, synthesizing course context")
		return s.courseContextBundle(topicName, courseInfo)
	}

	chunks, err := s.store.GetStoredChunks(ctx, selectedSources, topicName)
	if err != nil {
		log.Printf("[ERROR] Failed to retrieve source chunks: %v", err)
		return &models.SourceBundle{
			Text: fmt.Sprintf("Source material for %q could not be retrieved. Generate the content from general curricular knowledge.", topicName),
			Metadata: models.SourceMetadata{
				SourceNames: []string{},
			},
		}
	}

	if len(chunks) == 0 {
		log.Printf("[INFO] Selected sources yielded no chunks, synthesizing course context")
		return s.courseContextBundle(topicName, courseInfo)
	}

	grouped, order := groupBySource(chunks)
	text := formatGrouped(grouped, order)
	tokens := estimateTokens(text)

	if tokens > s.tokenBudget {
		log.Printf("[INFO] Source content at %d tokens exceeds budget of %d, summarizing", tokens, s.tokenBudget)
		text = summarizeGrouped(grouped, order)
		tokens = estimateTokens(text)
	}

	log.Printf("[INFO] Prepared source bundle: %d sources, %d chunks, ~%d tokens", len(order), len(chunks), tokens)

	return &models.SourceBundle{
		Text: text,
		Metadata: models.SourceMetadata{
			SourceCount:        len(order),
			ChunkCount:         len(chunks),
			TokenEstimate:      tokens,
			SourceNames:        order,
			UsingCourseContext: false,
		},
	}
}

func (s *Service) courseContextBundle(topicName string, courseInfo *models.CourseInfo) *models.SourceBundle {
	var b strings.Builder
	b.WriteString("COURSE CONTEXT (no source materials available):\n")
	if courseInfo != nil {
		if courseInfo.CourseName != "" {
			b.WriteString(fmt.Sprintf("Course: %s", courseInfo.CourseName))
			if courseInfo.CourseCode != "" {
				b.WriteString(fmt.Sprintf(" (%s)", courseInfo.CourseCode))
			}
			b.WriteString("\n")
		}
		if courseInfo.Semester != "" {
			b.WriteString(fmt.Sprintf("Semester: %s\n", courseInfo.Semester))
		}
		if courseInfo.Year != "" {
			b.WriteString(fmt.Sprintf("Year: %s\n", courseInfo.Year))
		}
	}
	if topicName != "" {
		b.WriteString(fmt.Sprintf("Session topic: %s\n", topicName))
	}
	b.WriteString("Generate the material from established curricular knowledge for this course and topic.")

	text := b.String()
	return &models.SourceBundle{
		Text: text,
		Metadata: models.SourceMetadata{
			SourceCount:        0,
			ChunkCount:         0,
			TokenEstimate:      estimateTokens(text),
			SourceNames:        []string{},
			UsingCourseContext: true,
		},
	}
}

// groupBySource groups chunks by source name, keeping the insertion order of
// each source's first occurrence and the pre-existing chunk order within it.
func groupBySource(chunks []models.SourceChunk) (map[string][]models.SourceChunk, []string) {
	grouped := make(map[string][]models.SourceChunk)
	order := make([]string, 0)

	for _, chunk := range chunks {
		if _, seen := grouped[chunk.SourceName]; !seen {
			order = append(order, chunk.SourceName)
		}
		grouped[chunk.SourceName] = append(grouped[chunk.SourceName], chunk)
	}

	return grouped, order
}

func formatGrouped(grouped map[string][]models.SourceChunk, order []string) string {
	var b strings.Builder
	for _, name := range order {
		b.WriteString(fmt.Sprintf("SOURCE: %s\n", name))
		for i, chunk := range grouped[name] {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, chunk.Chunk))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// summarizeGrouped keeps only the first, middle, and last chunk per source,
// labeled so the model knows which part of the document each excerpt covers.
func summarizeGrouped(grouped map[string][]models.SourceChunk, order []string) string {
	var b strings.Builder
	for _, name := range order {
		chunks := grouped[name]
		b.WriteString(fmt.Sprintf("SOURCE: %s (summarized excerpts)\n", name))

		b.WriteString(fmt.Sprintf("BEGINNING: %s\n", chunks[0].Chunk))
		if len(chunks) > 2 {
			b.WriteString(fmt.Sprintf("MIDDLE: %s\n", chunks[len(chunks)/2].Chunk))
		}
		if len(chunks) > 1 {
			b.WriteString(fmt.Sprintf("END: %s\n", chunks[len(chunks)-1].Chunk))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// estimateTokens approximates the token count by whitespace splitting.
func estimateTokens(text string) int {
	return len(strings.Fields(text))
}
