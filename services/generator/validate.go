package generator

import (
	"fmt"
	"regexp"
	"strings"

	"coursegen/models"

	"github.com/samber/lo"
)

const minLectureSlides = 5

var stepPrefixRegexp = regexp.MustCompile(`(?i)^\s*step\s*\d+\s*[:.]`)

// ValidateContent coerces a merged candidate into a structurally complete
// document. It is total and idempotent: any input yields a valid document,
// and validating an already valid document changes nothing. The input is
// never mutated.
func ValidateContent(candidate *models.LectureContent, contentType, difficultyLevel string) *models.LectureContent {
	content := models.LectureContent{}
	if candidate != nil {
		content = *candidate
	}

	content.ContentType = normalizeContentType(contentType, content.ContentType)
	content.DifficultyLevel = normalizeDifficulty(difficultyLevel, content.DifficultyLevel)

	if strings.TrimSpace(content.Title) == "" {
		content.Title = "Course Session"
	}
	if strings.TrimSpace(content.Introduction) == "" {
		content.Introduction = fmt.Sprintf("This session covers %s, building from core definitions to practical application.", content.Title)
	}

	if len(content.LearningOutcomes) == 0 {
		content.LearningOutcomes = []string{
			fmt.Sprintf("Explain the core concepts of %s.", content.Title),
			fmt.Sprintf("Apply the main techniques of %s to representative problems.", content.Title),
			fmt.Sprintf("Evaluate when and why the approaches covered in %s are appropriate.", content.Title),
		}
	}
	if len(content.KeyTerms) == 0 {
		content.KeyTerms = []models.KeyTerm{
			{Term: content.Title, Definition: fmt.Sprintf("The subject of this session: %s.", content.Title)},
		}
	}

	content.Slides = normalizeSlides(content.Slides, content.ContentType, content.Title)
	content.Activities = normalizeActivities(content.Activities, content.Slides, content.ContentType)
	content.AssessmentIdeas = normalizeAssessmentIdeas(content.AssessmentIdeas, content.Title)

	if content.FurtherReadings == nil {
		content.FurtherReadings = []models.Reading{}
	}

	return &content
}

func normalizeContentType(requested, existing string) string {
	for _, candidate := range []string{requested, existing} {
		switch candidate {
		case models.ContentTypeLecture, models.ContentTypeTutorial, models.ContentTypeWorkshop:
			return candidate
		}
	}
	return models.ContentTypeLecture
}

func normalizeDifficulty(requested, existing string) string {
	for _, candidate := range []string{requested, existing} {
		switch candidate {
		case models.DifficultyIntroductory, models.DifficultyIntermediate, models.DifficultyAdvanced:
			return candidate
		}
	}
	return models.DifficultyIntermediate
}

// normalizeSlides clones the slide list, drops fully empty slides, and pads
// lectures to the minimum slide count with labeled placeholders.
func normalizeSlides(slides []models.Slide, contentType, title string) []models.Slide {
	result := make([]models.Slide, 0, len(slides))
	for _, slide := range slides {
		if strings.TrimSpace(slide.Title) == "" && len(slide.Content) == 0 {
			continue
		}
		if slide.Content == nil {
			slide.Content = []string{}
		}
		result = append(result, slide)
	}

	if contentType == models.ContentTypeLecture {
		for i := len(result); i < minLectureSlides; i++ {
			result = append(result, models.Slide{
				Title: fmt.Sprintf("Additional Topic %d", i+1),
				Content: []string{
					fmt.Sprintf("Placeholder slide for %s.", title),
					"Replace this slide with additional session material.",
				},
			})
		}
	}

	return result
}

func normalizeActivities(activities []models.Activity, slides []models.Slide, contentType string) []models.Activity {
	result := make([]models.Activity, 0, len(activities))
	for _, activity := range activities {
		if strings.TrimSpace(activity.Title) == "" && strings.TrimSpace(activity.Description) == "" {
			continue
		}
		activity.Instructions = append([]string(nil), activity.Instructions...)
		activity.Materials = append([]string(nil), activity.Materials...)
		if activity.Type == "" {
			activity.Type = "exercise"
		}
		if activity.Duration == "" {
			activity.Duration = "15 minutes"
		}
		result = append(result, activity)
	}

	if contentType != models.ContentTypeWorkshop && contentType != models.ContentTypeTutorial {
		return result
	}

	if len(result) == 0 && len(slides) > 0 {
		result = activitiesFromSlides(slides)
	}
	if len(result) == 0 {
		result = []models.Activity{sampleActivity(contentType)}
	}

	for i := range result {
		switch contentType {
		case models.ContentTypeTutorial:
			applyTutorialConventions(&result[i])
		case models.ContentTypeWorkshop:
			applyWorkshopConventions(&result[i])
		}
	}

	return result
}

// activitiesFromSlides turns each slide into a hands-on activity when a
// workshop or tutorial produced none of its own.
func activitiesFromSlides(slides []models.Slide) []models.Activity {
	return lo.Map(slides, func(slide models.Slide, _ int) models.Activity {
		return models.Activity{
			Title:        slide.Title,
			Type:         "exercise",
			Description:  strings.Join(slide.Content, " "),
			Duration:     "15 minutes",
			Instructions: append([]string(nil), slide.Content...),
			Materials:    []string{"Session slides", "Worksheet or notebook"},
		}
	})
}

func sampleActivity(contentType string) models.Activity {
	title := "Guided Practice"
	if contentType == models.ContentTypeWorkshop {
		title = "Group Problem Solving"
	}
	return models.Activity{
		Title:       title,
		Type:        "exercise",
		Description: "Work through the session's core concepts with a structured exercise.",
		Duration:    "20 minutes",
		Instructions: []string{
			"Review the key concepts from the session.",
			"Complete the exercise individually or in pairs.",
			"Compare answers and discuss any differences.",
		},
		Materials: []string{"Session slides", "Worksheet or notebook"},
	}
}

func applyTutorialConventions(activity *models.Activity) {
	if !strings.Contains(strings.ToLower(activity.Description), "success criteria") {
		activity.Description = strings.TrimSpace(activity.Description +
			" Success criteria: students can complete each step independently and explain the result.")
	}
	for i, instruction := range activity.Instructions {
		if !stepPrefixRegexp.MatchString(instruction) {
			activity.Instructions[i] = fmt.Sprintf("Step %d: %s", i+1, instruction)
		}
	}
}

func applyWorkshopConventions(activity *models.Activity) {
	if !strings.Contains(strings.ToLower(activity.Description), "facilitation notes") {
		activity.Description = strings.TrimSpace(activity.Description +
			" Facilitation notes: circulate between groups, keep time visibly, and close with a short debrief.")
	}

	hasGroupMaterial := lo.SomeBy(activity.Materials, func(material string) bool {
		lower := strings.ToLower(material)
		return strings.Contains(lower, "group") || strings.Contains(lower, "team")
	})
	if !hasGroupMaterial {
		activity.Materials = append(activity.Materials, "Group formation cards for teams of 3-4")
	}
}

// normalizeAssessmentIdeas guarantees at least one Quiz and one Discussion
// idea and a non-empty correctAnswer on every example question.
func normalizeAssessmentIdeas(ideas []models.AssessmentIdea, title string) []models.AssessmentIdea {
	result := make([]models.AssessmentIdea, 0, len(ideas))
	hasQuiz := false
	hasDiscussion := false

	for _, idea := range ideas {
		if strings.TrimSpace(idea.Type) == "" && strings.TrimSpace(idea.Description) == "" {
			continue
		}
		if idea.Duration == "" {
			idea.Duration = "15 minutes"
		}
		idea.ExampleQuestions = normalizeQuestions(idea.ExampleQuestions, title)

		kind := strings.ToLower(idea.Type)
		if strings.Contains(kind, "quiz") {
			hasQuiz = true
		}
		if strings.Contains(kind, "discussion") {
			hasDiscussion = true
		}
		result = append(result, idea)
	}

	if !hasQuiz {
		result = append(result, defaultQuizIdea(title))
	}
	if !hasDiscussion {
		result = append(result, defaultDiscussionIdea(title))
	}

	return result
}

func normalizeQuestions(questions []models.AssessmentQuestion, title string) []models.AssessmentQuestion {
	result := append([]models.AssessmentQuestion(nil), questions...)
	for i := range result {
		q := &result[i]
		if strings.TrimSpace(q.Question) == "" {
			q.Question = fmt.Sprintf("Explain a key concept from %s in your own words.", title)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			if len(q.Options) > 0 {
				q.CorrectAnswer = "A"
			} else {
				q.CorrectAnswer = fmt.Sprintf("An accurate explanation grounded in the material covered in %s.", title)
			}
		}
		if q.Explanation.IsEmpty() {
			q.Explanation = models.PlainExplanation("Review the session material covering this concept.")
		}
	}
	return result
}
