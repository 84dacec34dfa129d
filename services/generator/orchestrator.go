package generator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"coursegen/models"

	"github.com/samber/lo"
)

const slideBatchSize = 5

// pipelineState accumulates the parsed output of each completed step for one
// request. It is owned by a single Generate call and never shared.
type pipelineState struct {
	params        promptParams
	model         string
	metadata      stepMetadata
	introduction  string
	special       specialSlides
	contentSlides []models.Slide
	activities    []models.Activity
	ideas         []models.AssessmentIdea
	readings      []models.Reading
	llmCalls      int
}

type stepMetadata struct {
	Title            string           `json:"title"`
	ContentType      string           `json:"contentType"`
	DifficultyLevel  string           `json:"difficultyLevel"`
	LearningOutcomes []string         `json:"learningOutcomes"`
	KeyTerms         []models.KeyTerm `json:"keyTerms"`
}

type specialSlides struct {
	Introduction *models.Slide `json:"introduction"`
	Agenda       *models.Slide `json:"agenda"`
	Assessment   *models.Slide `json:"assessment"`
	Conclusion   *models.Slide `json:"conclusion"`
}

// Generate runs the full pipeline for one request. The caller always receives
// a structurally valid document: on total pipeline failure the fallback
// document is returned with its error annotation set.
func (s *Service) Generate(ctx context.Context, req *models.GenerationRequest) (*models.LectureContent, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Starting generation for topic %q (%s, %s, %d min, lang %s)",
		req.TopicName, req.ContentType, req.DifficultyLevel, req.SessionLength, req.Language)

	bundle := s.sources.Prepare(ctx, req.SelectedSources, req.TopicName, req.CourseInfo)

	content, err := s.runPipeline(ctx, req, bundle)
	if err != nil {
		log.Printf("[ERROR] Generation pipeline failed for topic %q: %v", req.TopicName, err)
		fallback := FallbackContent(req.TopicName, req.ContentType, req.DifficultyLevel)
		fallback.Error = err.Error()
		fallback.SourceMetadata = &bundle.Metadata
		return fallback, nil
	}

	content.SourceMetadata = &bundle.Metadata
	return content, nil
}

// validateRequest rejects requests that carry neither selected sources nor
// course metadata before any LLM call is spent.
func validateRequest(req *models.GenerationRequest) error {
	if req.TopicName == "" {
		return fmt.Errorf("topicName is required")
	}

	hasSelected := lo.SomeBy(req.SelectedSources, func(ref models.SourceRef) bool {
		return ref.Selected
	})
	hasCourseInfo := req.CourseInfo != nil && req.CourseInfo.CourseName != ""

	if !hasSelected && !hasCourseInfo {
		return fmt.Errorf("at least one selected source or course information is required")
	}
	return nil
}

func (s *Service) runPipeline(ctx context.Context, req *models.GenerationRequest, bundle *models.SourceBundle) (*models.LectureContent, error) {
	state := &pipelineState{
		params: promptParams{
			Topic:           req.TopicName,
			ContentType:     req.ContentType,
			ContentStyle:    req.ContentStyle,
			DifficultyLevel: req.DifficultyLevel,
			SessionLength:   req.SessionLength,
			Language:        req.Language,
			HasSources:      !bundle.Metadata.UsingCourseContext && bundle.Metadata.ChunkCount > 0,
			SourceText:      bundle.Text,
		},
		model: req.Model,
	}

	// The metadata step doubles as the connectivity probe: a transport
	// failure here aborts the pipeline. Every later step recovers locally
	// and contributes an empty partial instead.
	if err := s.generateMetadata(ctx, state); err != nil {
		return nil, err
	}

	s.generateIntroduction(ctx, state)
	s.generateSpecialSlides(ctx, state)
	s.generateContentSlides(ctx, state)
	s.generateActivities(ctx, state)
	s.generateAssessmentIdeas(ctx, state)
	s.generateReadings(ctx, state)
	s.generateExampleQuestions(ctx, state)

	log.Printf("[INFO] Pipeline complete for topic %q: %d LLM calls, %d slides, %d activities, %d assessment ideas",
		req.TopicName, state.llmCalls, len(state.contentSlides), len(state.activities), len(state.ideas))

	candidate := s.merge(state)
	return ValidateContent(candidate, req.ContentType, req.DifficultyLevel), nil
}

func (s *Service) generateMetadata(ctx context.Context, state *pipelineState) error {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildMetadataPrompt(state.params), s.cfg.ResponseBudget()/4)
	if err != nil {
		return fmt.Errorf("metadata step failed: %w", err)
	}
	state.llmCalls++

	var meta stepMetadata
	if err := decodeInto(ExtractAndParseJSON(raw), &meta); err != nil {
		log.Printf("[WARN] Metadata response did not decode cleanly: %v", err)
	}
	if meta.Title == "" {
		meta.Title = state.params.Topic
	}
	state.metadata = meta

	log.Printf("[INFO] Metadata step done: title %q, %d outcomes, %d key terms",
		meta.Title, len(meta.LearningOutcomes), len(meta.KeyTerms))
	return nil
}

func (s *Service) generateIntroduction(ctx context.Context, state *pipelineState) {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildIntroductionPrompt(state.params, state.metadata.Title), s.cfg.ResponseBudget()/6)
	if err != nil {
		log.Printf("[ERROR] Introduction step failed: %v", err)
		return
	}
	state.llmCalls++

	var out struct {
		Introduction string `json:"introduction"`
	}
	if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
		log.Printf("[WARN] Introduction response did not decode cleanly: %v", err)
	}
	state.introduction = out.Introduction
}

func (s *Service) generateSpecialSlides(ctx context.Context, state *pipelineState) {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildSpecialSlidesPrompt(state.params, state.metadata.Title), s.cfg.ResponseBudget()/4)
	if err != nil {
		log.Printf("[ERROR] Special slides step failed: %v", err)
		return
	}
	state.llmCalls++

	var out specialSlides
	if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
		log.Printf("[WARN] Special slides response did not decode cleanly: %v", err)
	}
	state.special = out
}

// totalSlidesNeeded scales the content slide count with the session length:
// 15 slides for an hour, plus 5 per additional half hour.
func totalSlidesNeeded(sessionLength int) int {
	total := 15
	if sessionLength > 60 {
		total += (sessionLength - 60) / 30 * 5
	}
	return total
}

func (s *Service) generateContentSlides(ctx context.Context, state *pipelineState) {
	total := totalSlidesNeeded(state.params.SessionLength)
	log.Printf("[INFO] Generating %d content slides in batches of %d", total, slideBatchSize)

	for start := 1; start <= total; start += slideBatchSize {
		end := start + slideBatchSize - 1
		if end > total {
			end = total
		}

		existingTitles := lo.Map(state.contentSlides, func(slide models.Slide, _ int) string {
			return slide.Title
		})

		raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
			buildContentSlidesPrompt(state.params, state.metadata.Title, start, end, total, existingTitles),
			s.cfg.ResponseBudget()/2)
		if err != nil {
			log.Printf("[ERROR] Content slide batch %d-%d failed: %v", start, end, err)
			continue
		}
		state.llmCalls++

		var out struct {
			Slides []models.Slide `json:"slides"`
		}
		if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
			log.Printf("[WARN] Content slide batch %d-%d did not decode cleanly: %v", start, end, err)
			continue
		}

		state.contentSlides = dedupeSlides(append(state.contentSlides, out.Slides...))
	}

	log.Printf("[INFO] Content slide generation done: %d unique slides", len(state.contentSlides))
}

// dedupeSlides drops slides whose normalized title was already seen, keeping
// first occurrence order.
func dedupeSlides(slides []models.Slide) []models.Slide {
	return lo.UniqBy(slides, func(slide models.Slide) string {
		return strings.ToLower(strings.TrimSpace(slide.Title))
	})
}

func (s *Service) generateActivities(ctx context.Context, state *pipelineState) {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildActivitiesPrompt(state.params, state.metadata.Title), s.cfg.ResponseBudget()/4)
	if err != nil {
		log.Printf("[ERROR] Activities step failed: %v", err)
		return
	}
	state.llmCalls++

	var out struct {
		Activities []models.Activity `json:"activities"`
	}
	if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
		log.Printf("[WARN] Activities response did not decode cleanly: %v", err)
	}
	state.activities = out.Activities
}

func (s *Service) generateAssessmentIdeas(ctx context.Context, state *pipelineState) {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildAssessmentPrompt(state.params, state.metadata.Title), s.cfg.ResponseBudget()/6)
	if err != nil {
		log.Printf("[ERROR] Assessment ideas step failed: %v", err)
		state.ideas = defaultAssessmentIdeas()
		return
	}
	state.llmCalls++

	var out struct {
		AssessmentIdeas []models.AssessmentIdea `json:"assessmentIdeas"`
	}
	if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
		log.Printf("[WARN] Assessment ideas response did not decode cleanly: %v", err)
	}

	filtered := lo.Filter(out.AssessmentIdeas, func(idea models.AssessmentIdea, _ int) bool {
		kind := strings.ToLower(idea.Type)
		return strings.Contains(kind, "quiz") || strings.Contains(kind, "discussion")
	})

	if len(filtered) == 0 {
		log.Printf("[WARN] No Quiz or Discussion assessment ideas generated, using defaults")
		filtered = defaultAssessmentIdeas()
	}
	state.ideas = filtered
}

func defaultAssessmentIdeas() []models.AssessmentIdea {
	return []models.AssessmentIdea{
		{
			Type:        "Quiz",
			Duration:    "15 minutes",
			Description: "A short multiple-choice quiz checking understanding of the key concepts covered in the session.",
		},
		{
			Type:        "Discussion",
			Duration:    "20 minutes",
			Description: "A guided discussion asking students to apply the session concepts to a realistic scenario.",
		},
	}
}

func (s *Service) generateReadings(ctx context.Context, state *pipelineState) {
	raw, err := s.callLLM(ctx, state.model, systemPrompt(state.params.Language),
		buildReadingsPrompt(state.params, state.metadata.Title), s.cfg.ResponseBudget()/6)
	if err != nil {
		log.Printf("[ERROR] Further readings step failed: %v", err)
		return
	}
	state.llmCalls++

	var out struct {
		FurtherReadings []models.Reading `json:"furtherReadings"`
	}
	if err := decodeInto(ExtractAndParseJSON(raw), &out); err != nil {
		log.Printf("[WARN] Further readings response did not decode cleanly: %v", err)
	}
	state.readings = out.FurtherReadings
}

// assembleSlides produces the fixed presentation order: introduction, agenda,
// content slides, assessment, conclusion. Missing special slides are omitted.
func assembleSlides(special specialSlides, content []models.Slide) []models.Slide {
	slides := make([]models.Slide, 0, len(content)+4)
	if special.Introduction != nil {
		slides = append(slides, *special.Introduction)
	}
	if special.Agenda != nil {
		slides = append(slides, *special.Agenda)
	}
	slides = append(slides, content...)
	if special.Assessment != nil {
		slides = append(slides, *special.Assessment)
	}
	if special.Conclusion != nil {
		slides = append(slides, *special.Conclusion)
	}
	return slides
}

func (s *Service) merge(state *pipelineState) *models.LectureContent {
	return &models.LectureContent{
		Title:            state.metadata.Title,
		ContentType:      state.params.ContentType,
		DifficultyLevel:  state.params.DifficultyLevel,
		Introduction:     state.introduction,
		LearningOutcomes: state.metadata.LearningOutcomes,
		KeyTerms:         state.metadata.KeyTerms,
		Slides:           assembleSlides(state.special, state.contentSlides),
		Activities:       state.activities,
		AssessmentIdeas:  state.ideas,
		FurtherReadings:  state.readings,
	}
}
