package generator

import (
	"reflect"
	"strings"
	"testing"

	"coursegen/models"
)

func TestValidateContentNilCandidate(t *testing.T) {
	content := ValidateContent(nil, models.ContentTypeLecture, models.DifficultyIntroductory)

	if content.Title == "" {
		t.Error("expected default title")
	}
	if content.Introduction == "" {
		t.Error("expected default introduction")
	}
	if len(content.Slides) < minLectureSlides {
		t.Errorf("expected at least %d slides, got %d", minLectureSlides, len(content.Slides))
	}
	if len(content.LearningOutcomes) == 0 {
		t.Error("expected default learning outcomes")
	}
	assertHasQuizAndDiscussion(t, content)
}

func TestValidateContentIdempotent(t *testing.T) {
	candidates := []*models.LectureContent{
		nil,
		{
			Title:  "Recursion",
			Slides: []models.Slide{{Title: "Base Cases", Content: []string{"Every recursion needs one"}}},
			Activities: []models.Activity{
				{
					Title:        "Trace a Call Stack",
					Description:  "Trace the calls of a recursive function.",
					Instructions: []string{"Pick a function", "Draw each frame"},
				},
			},
			AssessmentIdeas: []models.AssessmentIdea{
				{Type: "Quiz", ExampleQuestions: []models.AssessmentQuestion{{Question: "What is a base case?"}}},
			},
		},
	}

	for _, contentType := range []string{models.ContentTypeLecture, models.ContentTypeTutorial, models.ContentTypeWorkshop} {
		for _, candidate := range candidates {
			once := ValidateContent(candidate, contentType, models.DifficultyAdvanced)
			twice := ValidateContent(once, contentType, models.DifficultyAdvanced)

			if !reflect.DeepEqual(once, twice) {
				t.Errorf("validation not idempotent for contentType %s:\nonce:  %+v\ntwice: %+v", contentType, once, twice)
			}
		}
	}
}

func TestValidateContentDoesNotMutateInput(t *testing.T) {
	candidate := &models.LectureContent{
		Title: "Sorting",
		Activities: []models.Activity{
			{Title: "Sort by Hand", Description: "Sort a deck of cards.", Instructions: []string{"Shuffle", "Sort"}},
		},
	}
	original := *candidate
	originalInstructions := append([]string(nil), candidate.Activities[0].Instructions...)

	ValidateContent(candidate, models.ContentTypeTutorial, models.DifficultyIntermediate)

	if candidate.Title != original.Title {
		t.Error("input title was mutated")
	}
	if !reflect.DeepEqual(candidate.Activities[0].Instructions, originalInstructions) {
		t.Errorf("input instructions were mutated: %v", candidate.Activities[0].Instructions)
	}
	if strings.Contains(candidate.Activities[0].Description, "Success criteria") {
		t.Error("input description was mutated")
	}
}

func TestLectureMinimumSlides(t *testing.T) {
	tests := []struct {
		name       string
		slideCount int
	}{
		{name: "no slides", slideCount: 0},
		{name: "short deck", slideCount: 3},
		{name: "already long enough", slideCount: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := &models.LectureContent{}
			for i := 0; i < tt.slideCount; i++ {
				candidate.Slides = append(candidate.Slides, models.Slide{
					Title:   "Slide",
					Content: []string{"point"},
				})
			}

			content := ValidateContent(candidate, models.ContentTypeLecture, models.DifficultyIntermediate)
			if len(content.Slides) < minLectureSlides {
				t.Errorf("got %d slides, expected at least %d", len(content.Slides), minLectureSlides)
			}
			if tt.slideCount >= minLectureSlides && len(content.Slides) != tt.slideCount {
				t.Errorf("long deck was padded: got %d slides, expected %d", len(content.Slides), tt.slideCount)
			}
		})
	}
}

func TestWorkshopActivitySynthesis(t *testing.T) {
	candidate := &models.LectureContent{
		Slides: []models.Slide{
			{Title: "Defining the Problem", Content: []string{"State the goal", "List the constraints"}},
			{Title: "Prototyping", Content: []string{"Sketch a solution"}},
		},
	}

	content := ValidateContent(candidate, models.ContentTypeWorkshop, models.DifficultyIntermediate)

	if len(content.Activities) != len(candidate.Slides) {
		t.Fatalf("expected one activity per slide (%d), got %d", len(candidate.Slides), len(content.Activities))
	}

	for _, activity := range content.Activities {
		if !strings.Contains(strings.ToLower(activity.Description), "facilitation notes") {
			t.Errorf("workshop activity %q missing facilitation notes", activity.Title)
		}

		hasGroupMaterial := false
		for _, material := range activity.Materials {
			lower := strings.ToLower(material)
			if strings.Contains(lower, "group") || strings.Contains(lower, "team") {
				hasGroupMaterial = true
			}
		}
		if !hasGroupMaterial {
			t.Errorf("workshop activity %q missing group formation material", activity.Title)
		}
	}
}

func TestWorkshopSampleActivityWhenNothingToSynthesize(t *testing.T) {
	content := ValidateContent(&models.LectureContent{}, models.ContentTypeWorkshop, models.DifficultyIntroductory)

	if len(content.Activities) == 0 {
		t.Fatal("expected at least one canned activity")
	}
}

func TestTutorialConventions(t *testing.T) {
	candidate := &models.LectureContent{
		Activities: []models.Activity{
			{
				Title:        "Implement a Stack",
				Description:  "Build a stack from scratch.",
				Instructions: []string{"Create the type", "Step 2: Add push and pop", "Write tests"},
			},
		},
	}

	content := ValidateContent(candidate, models.ContentTypeTutorial, models.DifficultyIntermediate)

	activity := content.Activities[0]
	if !strings.Contains(strings.ToLower(activity.Description), "success criteria") {
		t.Errorf("tutorial description missing success criteria: %q", activity.Description)
	}

	expected := []string{
		"Step 1: Create the type",
		"Step 2: Add push and pop",
		"Step 3: Write tests",
	}
	if !reflect.DeepEqual(activity.Instructions, expected) {
		t.Errorf("instructions = %v, expected %v", activity.Instructions, expected)
	}
}

func TestCorrectAnswerNeverEmpty(t *testing.T) {
	candidate := &models.LectureContent{
		AssessmentIdeas: []models.AssessmentIdea{
			{
				Type: "Quiz",
				ExampleQuestions: []models.AssessmentQuestion{
					{Question: "Pick one", Options: []string{"A) yes", "B) no"}},
				},
			},
			{
				Type: "Discussion",
				ExampleQuestions: []models.AssessmentQuestion{
					{Question: "Talk about it"},
				},
			},
		},
	}

	content := ValidateContent(candidate, models.ContentTypeLecture, models.DifficultyIntermediate)

	for _, idea := range content.AssessmentIdeas {
		for _, question := range idea.ExampleQuestions {
			if strings.TrimSpace(question.CorrectAnswer) == "" {
				t.Errorf("empty correctAnswer in %s question %q", idea.Type, question.Question)
			}
		}
	}

	quiz := content.AssessmentIdeas[0].ExampleQuestions[0]
	if quiz.CorrectAnswer != "A" {
		t.Errorf("multiple-choice default correctAnswer = %q, expected A", quiz.CorrectAnswer)
	}
}

func TestAssessmentIdeaDefaultsAdded(t *testing.T) {
	candidate := &models.LectureContent{
		AssessmentIdeas: []models.AssessmentIdea{
			{Type: "Quiz", Description: "Only a quiz here"},
		},
	}

	content := ValidateContent(candidate, models.ContentTypeLecture, models.DifficultyIntermediate)
	assertHasQuizAndDiscussion(t, content)
}

func TestInvalidTypeAndDifficultyDefaults(t *testing.T) {
	content := ValidateContent(nil, "seminar", "impossible")

	if content.ContentType != models.ContentTypeLecture {
		t.Errorf("contentType = %q, expected lecture default", content.ContentType)
	}
	if content.DifficultyLevel != models.DifficultyIntermediate {
		t.Errorf("difficultyLevel = %q, expected intermediate default", content.DifficultyLevel)
	}
}

func assertHasQuizAndDiscussion(t *testing.T, content *models.LectureContent) {
	t.Helper()

	hasQuiz := false
	hasDiscussion := false
	for _, idea := range content.AssessmentIdeas {
		kind := strings.ToLower(idea.Type)
		if strings.Contains(kind, "quiz") {
			hasQuiz = true
		}
		if strings.Contains(kind, "discussion") {
			hasDiscussion = true
		}
	}

	if !hasQuiz {
		t.Error("validated content missing a Quiz assessment idea")
	}
	if !hasDiscussion {
		t.Error("validated content missing a Discussion assessment idea")
	}
}
