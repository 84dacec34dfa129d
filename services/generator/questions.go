package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"coursegen/models"
)

const (
	quizQuestionBudget       = 1000
	discussionQuestionBudget = 1500
)

// questionParser is one strategy for turning a raw response into questions.
// Strategies run in order; the first one that succeeds wins.
type questionParser struct {
	name  string
	parse func(raw, topic string) ([]models.AssessmentQuestion, bool)
}

var questionParsers = []questionParser{
	{name: "json", parse: tryJSONParse},
	{name: "repair", parse: tryRepairAndParse},
	{name: "text", parse: tryRegexExtract},
}

// generateExampleQuestions fills in example questions for every assessment
// idea, one sequential LLM call per idea. Any failure is contained to the
// idea it occurred in.
func (s *Service) generateExampleQuestions(ctx context.Context, state *pipelineState) {
	for i := range state.ideas {
		idea := &state.ideas[i]
		kind := strings.ToLower(idea.Type)

		switch {
		case strings.Contains(kind, "quiz"):
			idea.ExampleQuestions = s.generateQuizQuestions(ctx, state, *idea)
		case strings.Contains(kind, "discussion"):
			idea.ExampleQuestions = s.generateDiscussionQuestions(ctx, state, *idea)
		default:
			idea.ExampleQuestions = []models.AssessmentQuestion{placeholderQuestion(state.params.Topic)}
		}
	}
}

func (s *Service) generateQuizQuestions(ctx context.Context, state *pipelineState, idea models.AssessmentIdea) []models.AssessmentQuestion {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildQuizQuestionsPrompt(state.params, idea), quizQuestionBudget)
	if err != nil {
		log.Printf("[ERROR] Quiz question generation failed: %v", err)
		return []models.AssessmentQuestion{placeholderQuestion(state.params.Topic)}
	}
	state.llmCalls++

	questions := runQuestionParsers(raw, state.params.Topic)
	if len(questions) == 0 {
		log.Printf("[WARN] Quiz question response yielded no questions, using placeholder")
		return []models.AssessmentQuestion{placeholderQuestion(state.params.Topic)}
	}

	return sanitizeQuizQuestions(questions)
}

func (s *Service) generateDiscussionQuestions(ctx context.Context, state *pipelineState, idea models.AssessmentIdea) []models.AssessmentQuestion {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildDiscussionQuestionsPrompt(state.params, idea), discussionQuestionBudget)
	if err != nil {
		log.Printf("[ERROR] Discussion question generation failed: %v", err)
		return []models.AssessmentQuestion{placeholderQuestion(state.params.Topic)}
	}
	state.llmCalls++

	questions := runQuestionParsers(raw, state.params.Topic)
	if len(questions) == 0 {
		log.Printf("[WARN] Discussion question response yielded no questions, using defaults")
		return defaultDiscussionQuestions(state.params.Topic)
	}

	return sanitizeDiscussionQuestions(questions, state.params.Topic)
}

func runQuestionParsers(raw, topic string) []models.AssessmentQuestion {
	for _, parser := range questionParsers {
		if questions, ok := parser.parse(raw, topic); ok && len(questions) > 0 {
			log.Printf("[INFO] Parsed %d questions via %s strategy", len(questions), parser.name)
			return questions
		}
	}
	return nil
}

// tryJSONParse expects a strict JSON array of questions.
func tryJSONParse(raw, _ string) ([]models.AssessmentQuestion, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed[0] != '[' {
		return nil, false
	}

	var questions []models.AssessmentQuestion
	if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
		return nil, false
	}
	return questions, true
}

// tryRepairAndParse runs the full extraction/repair ladder, accepting either
// an array of questions or a single question object.
func tryRepairAndParse(raw, _ string) ([]models.AssessmentQuestion, bool) {
	value := ExtractAndParseJSON(raw)

	switch value.(type) {
	case []any:
		var questions []models.AssessmentQuestion
		if err := decodeInto(value, &questions); err != nil {
			return nil, false
		}
		return questions, true
	case map[string]any:
		var question models.AssessmentQuestion
		if err := decodeInto(value, &question); err != nil {
			return nil, false
		}
		if question.Question == "" {
			return nil, false
		}
		return []models.AssessmentQuestion{question}, true
	}
	return nil, false
}

// tryRegexExtract falls back to marker-based text parsing for responses that
// never contained JSON at all.
func tryRegexExtract(raw, _ string) ([]models.AssessmentQuestion, bool) {
	questions := parseQuestionsFromText(raw)
	return questions, len(questions) > 0
}

// sanitizeQuizQuestions enforces the non-empty correctAnswer invariant,
// defaulting to option A for multiple-choice.
func sanitizeQuizQuestions(questions []models.AssessmentQuestion) []models.AssessmentQuestion {
	for i := range questions {
		q := &questions[i]
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			q.CorrectAnswer = "A"
		}
		if q.Explanation.IsEmpty() {
			q.Explanation = models.PlainExplanation("Review the session material covering this concept.")
		}
	}
	return questions
}

// sanitizeDiscussionQuestions fills every field a discussion question
// requires, parameterized by topic.
func sanitizeDiscussionQuestions(questions []models.AssessmentQuestion, topic string) []models.AssessmentQuestion {
	for i := range questions {
		q := &questions[i]
		if strings.TrimSpace(q.Question) == "" {
			q.Question = fmt.Sprintf("Discuss the key concepts of %s and how they relate to each other.", topic)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			q.CorrectAnswer = fmt.Sprintf("A strong answer identifies the core concepts of %s and supports each point with material from the session.", topic)
		}
		if strings.TrimSpace(q.ModelAnswer) == "" {
			q.ModelAnswer = q.CorrectAnswer
		}
		if q.Explanation.IsEmpty() {
			q.Explanation = models.PlainExplanation("Assess depth of understanding, use of session material, and clarity of argument.")
		}
	}
	return questions
}

func defaultDiscussionQuestions(topic string) []models.AssessmentQuestion {
	return sanitizeDiscussionQuestions([]models.AssessmentQuestion{
		{
			Question: fmt.Sprintf("What are the most important concepts of %s, and why do they matter in practice?", topic),
		},
		{
			Question: fmt.Sprintf("Describe a real-world situation where %s applies, and explain how you would approach it.", topic),
		},
	}, topic)
}

func placeholderQuestion(topic string) models.AssessmentQuestion {
	return models.AssessmentQuestion{
		Question:      fmt.Sprintf("Explain the main ideas of %s in your own words.", topic),
		CorrectAnswer: fmt.Sprintf("An accurate summary of the main ideas of %s as covered in the session.", topic),
		Explanation:   models.PlainExplanation("Placeholder question; the generated questions could not be produced for this assessment."),
	}
}
