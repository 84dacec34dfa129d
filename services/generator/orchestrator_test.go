package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"coursegen/config"
	"coursegen/models"
	"coursegen/services/sources"

	"github.com/tmc/langchaingo/llms"
)

type fakeResponse struct {
	text string
	err  error
}

// fakeLLM plays back scripted responses in call order and records the user
// prompt of every call.
type fakeLLM struct {
	responses []fakeResponse
	calls     []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	prompt := ""
	for _, message := range messages {
		if message.Role != llms.ChatMessageTypeHuman {
			continue
		}
		for _, part := range message.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt += text.Text
			}
		}
	}

	index := len(f.calls)
	f.calls = append(f.calls, prompt)

	if index >= len(f.responses) {
		return nil, fmt.Errorf("unexpected LLM call %d", index+1)
	}
	response := f.responses[index]
	if response.err != nil {
		return nil, response.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: response.text}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return "", fmt.Errorf("not supported")
}

type stubStore struct{}

func (s *stubStore) GetStoredChunks(ctx context.Context, selected []models.SourceRef, topic string) ([]models.SourceChunk, error) {
	return nil, nil
}

func newTestService(responses []fakeResponse) (*Service, *fakeLLM) {
	fake := &fakeLLM{responses: responses}
	cfg := config.GenerationConfig{
		Temperature:        0.1,
		MaxTokens:          2048,
		ResponseRatio:      0.7,
		ContextTokenBudget: 500,
	}
	service := NewService(fake, sources.NewService(&stubStore{}, cfg.ContextTokenBudget), cfg)
	return service, fake
}

func testRequest(sessionLength int) *models.GenerationRequest {
	return &models.GenerationRequest{
		ContentType:     models.ContentTypeLecture,
		ContentStyle:    models.ContentStyleInteractive,
		SessionLength:   sessionLength,
		DifficultyLevel: models.DifficultyIntermediate,
		TopicName:       "Graph Algorithms",
		Language:        models.LanguageEnglish,
		CourseInfo:      &models.CourseInfo{CourseName: "Intro to Algorithms"},
	}
}

func slidesJSON(titles ...string) string {
	parts := make([]string, len(titles))
	for i, title := range titles {
		parts[i] = fmt.Sprintf(`{"title": %q, "content": ["point one", "point two"]}`, title)
	}
	return fmt.Sprintf(`{"slides": [%s]}`, strings.Join(parts, ", "))
}

func TestGenerateFullPipeline(t *testing.T) {
	responses := []fakeResponse{
		{text: `{"title": "Graph Algorithms in Depth", "contentType": "lecture", "difficultyLevel": "intermediate", "learningOutcomes": ["Explain BFS", "Explain DFS"], "keyTerms": [{"term": "Graph", "definition": "Vertices connected by edges"}]}`},
		{text: `{"introduction": "This session explores graph algorithms from traversal to shortest paths."}`},
		{text: `{"introduction": {"title": "Welcome", "content": ["Session overview"]}, "agenda": {"title": "Agenda", "content": ["Traversal", "Paths"]}, "assessment": {"title": "How You Will Be Assessed", "content": ["Quiz", "Discussion"]}, "conclusion": {"title": "Wrap-up", "content": ["Key takeaways"]}}`},
		{text: slidesJSON("Intro to X", "Graph Representations", "BFS", "DFS", "Shortest Paths")},
		{text: slidesJSON("Intro to X", "Dijkstra", "Bellman-Ford", "Negative Cycles")},
		{text: slidesJSON("Minimum Spanning Trees", "Prim", "Kruskal", "Union-Find", "Applications of MSTs")},
		{text: slidesJSON("Topological Sort", "Strongly Connected Components", "Graph Coloring", "Flow Networks", "Course Summary Examples")},
		{text: `{"activities": [{"title": "Trace BFS by Hand", "type": "exercise", "description": "Trace BFS on a small graph.", "duration": "15 minutes", "instructions": ["Draw the graph", "Run BFS from vertex A"], "materials": ["Graph handout"]}]}`},
		{text: `{"assessmentIdeas": [{"type": "Quiz", "duration": "10 minutes", "description": "Short quiz on traversals"}, {"type": "Discussion", "duration": "20 minutes", "description": "Discuss real-world graph problems"}]}`},
		{text: `{"furtherReadings": [{"title": "Introduction to Algorithms", "author": "Cormen et al.", "description": "The standard text."}]}`},
		{text: `[{"question": "Which traversal uses a queue?", "options": ["A) BFS", "B) DFS", "C) Dijkstra", "D) Prim"], "correctAnswer": "A", "explanation": "BFS uses a FIFO queue."}]`},
		{text: `[{"question": "Where do graphs appear in real systems?", "modelAnswer": "Road networks, social graphs, dependency resolution."}]`},
	}

	service, fake := newTestService(responses)

	content, err := service.Generate(context.Background(), testRequest(90))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	if len(fake.calls) != 12 {
		t.Errorf("expected 12 LLM calls, got %d", len(fake.calls))
	}
	if !strings.Contains(fake.calls[3], "slides 1 through 5 of the 20") {
		t.Errorf("first batch prompt missing sub-range: %q", fake.calls[3])
	}
	if !strings.Contains(fake.calls[6], "slides 16 through 20 of the 20") {
		t.Errorf("last batch prompt missing sub-range: %q", fake.calls[6])
	}

	if content.Title != "Graph Algorithms in Depth" {
		t.Errorf("title = %q", content.Title)
	}
	if content.Error != "" {
		t.Errorf("unexpected error annotation: %q", content.Error)
	}

	// One duplicate title across batches collapses to a single slide.
	introCount := 0
	for _, slide := range content.Slides {
		if slide.Title == "Intro to X" {
			introCount++
		}
	}
	if introCount != 1 {
		t.Errorf("expected exactly 1 %q slide after dedupe, got %d", "Intro to X", introCount)
	}

	// 4 special slides + 18 unique content slides.
	if len(content.Slides) != 22 {
		t.Errorf("expected 22 slides, got %d", len(content.Slides))
	}
	if content.Slides[0].Title != "Welcome" {
		t.Errorf("first slide = %q, expected the introduction slide", content.Slides[0].Title)
	}
	if content.Slides[len(content.Slides)-1].Title != "Wrap-up" {
		t.Errorf("last slide = %q, expected the conclusion slide", content.Slides[len(content.Slides)-1].Title)
	}

	assertHasQuizAndDiscussion(t, content)
	for _, idea := range content.AssessmentIdeas {
		if len(idea.ExampleQuestions) == 0 {
			t.Errorf("%s idea has no example questions", idea.Type)
		}
		for _, question := range idea.ExampleQuestions {
			if strings.TrimSpace(question.CorrectAnswer) == "" {
				t.Errorf("empty correctAnswer in %s question %q", idea.Type, question.Question)
			}
		}
	}

	if content.SourceMetadata == nil {
		t.Fatal("source metadata missing")
	}
	if !content.SourceMetadata.UsingCourseContext {
		t.Error("expected usingCourseContext for a request without sources")
	}
	if content.SourceMetadata.SourceCount != 0 {
		t.Errorf("sourceCount = %d, expected 0", content.SourceMetadata.SourceCount)
	}
}

func TestGenerateMetadataFailureReturnsFallback(t *testing.T) {
	service, fake := newTestService([]fakeResponse{
		{err: errors.New("connection refused")},
	})

	content, err := service.Generate(context.Background(), testRequest(60))
	if err != nil {
		t.Fatalf("Generate() returned error instead of fallback: %v", err)
	}

	if len(fake.calls) != 1 {
		t.Errorf("expected pipeline to stop after 1 call, got %d", len(fake.calls))
	}
	if !strings.Contains(content.Error, "connection refused") {
		t.Errorf("error annotation = %q, expected the causing message", content.Error)
	}
	if len(content.Slides) < minLectureSlides {
		t.Errorf("fallback has %d slides, expected at least %d", len(content.Slides), minLectureSlides)
	}
	assertHasQuizAndDiscussion(t, content)
}

func TestGenerateRejectsRequestWithoutSourcesOrCourse(t *testing.T) {
	service, fake := newTestService(nil)

	req := testRequest(60)
	req.CourseInfo = nil
	req.SelectedSources = []models.SourceRef{{ID: "s1", Name: "Notes", Selected: false}}

	content, err := service.Generate(context.Background(), req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if content != nil {
		t.Error("expected no content for a rejected request")
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no LLM calls, got %d", len(fake.calls))
	}
}

func TestGenerateStepFailuresRecoverLocally(t *testing.T) {
	stepError := errors.New("model overloaded")
	responses := []fakeResponse{
		{text: `{"title": "Graph Algorithms in Depth"}`},
		{err: stepError}, // introduction
		{err: stepError}, // special slides
		{err: stepError}, // batch 1
		{err: stepError}, // batch 2
		{err: stepError}, // batch 3
		{err: stepError}, // activities
		{err: stepError}, // assessment ideas -> defaults
		{err: stepError}, // readings
		{err: stepError}, // quiz questions -> placeholder
		{err: stepError}, // discussion questions -> placeholder
	}

	service, fake := newTestService(responses)

	content, err := service.Generate(context.Background(), testRequest(60))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	if len(fake.calls) != 11 {
		t.Errorf("expected 11 LLM calls, got %d", len(fake.calls))
	}
	if content.Error != "" {
		t.Errorf("local step failures should not annotate an error, got %q", content.Error)
	}
	if len(content.Slides) < minLectureSlides {
		t.Errorf("expected validator padding to %d slides, got %d", minLectureSlides, len(content.Slides))
	}
	assertHasQuizAndDiscussion(t, content)
}

func TestGenerateFiltersNonQuizDiscussionIdeas(t *testing.T) {
	responses := []fakeResponse{
		{text: `{"title": "Graph Algorithms in Depth"}`},
		{text: `{"introduction": "Intro."}`},
		{text: `{"introduction": {"title": "Welcome", "content": ["hi"]}}`},
		{text: slidesJSON("One", "Two", "Three", "Four", "Five")},
		{text: slidesJSON("Six", "Seven", "Eight", "Nine", "Ten")},
		{text: slidesJSON("Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen")},
		{text: `{"activities": []}`},
		{text: `{"assessmentIdeas": [{"type": "Essay", "duration": "60 minutes", "description": "A long essay"}]}`},
		{text: `{"furtherReadings": []}`},
		{text: `[{"question": "Q?", "options": ["A) a", "B) b"], "correctAnswer": "A", "explanation": "e"}]`},
		{text: `[{"question": "Discuss?", "correctAnswer": "Key points", "modelAnswer": "Full answer", "explanation": "rubric"}]`},
	}

	service, _ := newTestService(responses)

	content, err := service.Generate(context.Background(), testRequest(60))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	if len(content.AssessmentIdeas) != 2 {
		t.Fatalf("expected exactly the 2 canned defaults, got %d ideas", len(content.AssessmentIdeas))
	}
	if !strings.Contains(strings.ToLower(content.AssessmentIdeas[0].Type), "quiz") {
		t.Errorf("first default idea type = %q, expected Quiz", content.AssessmentIdeas[0].Type)
	}
	if !strings.Contains(strings.ToLower(content.AssessmentIdeas[1].Type), "discussion") {
		t.Errorf("second default idea type = %q, expected Discussion", content.AssessmentIdeas[1].Type)
	}
}

func TestTotalSlidesNeeded(t *testing.T) {
	tests := []struct {
		sessionLength int
		expected      int
	}{
		{sessionLength: 30, expected: 15},
		{sessionLength: 60, expected: 15},
		{sessionLength: 75, expected: 15},
		{sessionLength: 90, expected: 20},
		{sessionLength: 120, expected: 25},
		{sessionLength: 180, expected: 35},
	}

	for _, tt := range tests {
		if got := totalSlidesNeeded(tt.sessionLength); got != tt.expected {
			t.Errorf("totalSlidesNeeded(%d) = %d, expected %d", tt.sessionLength, got, tt.expected)
		}
	}
}

func TestRunQuestionParsers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "strict JSON array",
			input:    `[{"question": "Q1?", "correctAnswer": "A"}, {"question": "Q2?", "correctAnswer": "B"}]`,
			expected: 2,
		},
		{
			name:     "fenced array needs repair",
			input:    "```json\n[{\"question\": \"Q1?\", \"correctAnswer\": \"A\",}]\n```",
			expected: 1,
		},
		{
			name:     "single object accepted",
			input:    `{"question": "Only one?", "correctAnswer": "A"}`,
			expected: 1,
		},
		{
			name:     "marker text fallback",
			input:    "QUESTION 1: What is a heap?\nA) A tree\nB) A list\nCORRECT ANSWER: A",
			expected: 1,
		},
		{
			name:     "prose yields nothing",
			input:    "I am unable to produce questions right now.",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := runQuestionParsers(tt.input, "Heaps")
			if len(questions) != tt.expected {
				t.Errorf("runQuestionParsers() returned %d questions, expected %d", len(questions), tt.expected)
			}
		})
	}
}
