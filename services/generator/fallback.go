package generator

import (
	"fmt"

	"coursegen/models"
)

// FallbackContent builds a complete placeholder document from static
// templates. It is used only when the whole pipeline fails, so the caller
// still receives a well-formed object.
func FallbackContent(topic, contentType, difficultyLevel string) *models.LectureContent {
	if topic == "" {
		topic = "Course Session"
	}

	content := &models.LectureContent{
		Title: topic,
		Introduction: fmt.Sprintf("This session introduces %s. The material below is a generated outline: "+
			"review each section and replace the placeholders with course-specific content.", topic),
		LearningOutcomes: []string{
			fmt.Sprintf("Define the core concepts of %s.", topic),
			fmt.Sprintf("Apply the main techniques of %s to simple problems.", topic),
			fmt.Sprintf("Discuss practical applications of %s.", topic),
		},
		KeyTerms: []models.KeyTerm{
			{Term: topic, Definition: fmt.Sprintf("The subject area covered in this session: %s.", topic)},
			{Term: "Core concept", Definition: fmt.Sprintf("A foundational idea that the rest of %s builds on.", topic)},
			{Term: "Application", Definition: fmt.Sprintf("A practical use of %s outside the classroom.", topic)},
		},
		Slides:          fallbackSlides(topic),
		Activities:      fallbackActivities(topic, contentType),
		AssessmentIdeas: []models.AssessmentIdea{defaultQuizIdea(topic), defaultDiscussionIdea(topic)},
		FurtherReadings: fallbackReadings(topic),
	}

	return ValidateContent(content, contentType, difficultyLevel)
}

func fallbackSlides(topic string) []models.Slide {
	return []models.Slide{
		{
			Title:   fmt.Sprintf("Introduction to %s", topic),
			Content: []string{"Welcome and session overview", "Why this topic matters", "What you will be able to do afterwards"},
			Notes:   "Set expectations and connect the topic to earlier sessions.",
		},
		{
			Title:   "Session Agenda",
			Content: []string{"Core concepts", "Worked examples", "Practice activity", "Assessment and wrap-up"},
		},
		{
			Title:   fmt.Sprintf("Core Concepts of %s", topic),
			Content: []string{"Key definitions", "Fundamental principles", "Common misconceptions"},
			Notes:   "Spend the most time here; later slides assume these definitions.",
		},
		{
			Title:   fmt.Sprintf("%s in Practice", topic),
			Content: []string{"A worked real-world example", "Step-by-step reasoning", "Where students typically go wrong"},
		},
		{
			Title:   "Practice and Discussion",
			Content: []string{"Guided exercise", "Discussion prompts", "Questions to check understanding"},
		},
		{
			Title:   "Summary and Next Steps",
			Content: []string{"Recap of key points", "How this connects to the next session", "Where to go for further reading"},
		},
	}
}

func fallbackActivities(topic, contentType string) []models.Activity {
	switch contentType {
	case models.ContentTypeWorkshop:
		return []models.Activity{
			{
				Title:       fmt.Sprintf("Group Exploration of %s", topic),
				Type:        "group work",
				Description: fmt.Sprintf("Small groups investigate one aspect of %s and present their findings.", topic),
				Duration:    "30 minutes",
				Instructions: []string{
					"Form groups of 3-4 students.",
					"Each group picks one aspect of the topic to investigate.",
					"Prepare a two-minute summary of the findings.",
					"Present to the class and take one question.",
				},
				Materials: []string{"Whiteboard or flip chart", "Session slides"},
			},
		}
	case models.ContentTypeTutorial:
		return []models.Activity{
			{
				Title:       fmt.Sprintf("Guided Exercise on %s", topic),
				Type:        "exercise",
				Description: fmt.Sprintf("Students work through a structured exercise applying %s with tutor support.", topic),
				Duration:    "25 minutes",
				Instructions: []string{
					"Read the exercise brief.",
					"Attempt the first part individually.",
					"Compare your approach with a neighbour.",
					"Review the model solution together.",
				},
				Materials: []string{"Exercise handout", "Session slides"},
			},
		}
	default:
		return []models.Activity{
			{
				Title:       fmt.Sprintf("Think-Pair-Share on %s", topic),
				Type:        "discussion",
				Description: fmt.Sprintf("A short paired discussion connecting %s to students' own experience.", topic),
				Duration:    "10 minutes",
				Instructions: []string{
					"Think about the prompt individually for one minute.",
					"Discuss with a partner for three minutes.",
					"Share highlights with the class.",
				},
				Materials: []string{"Discussion prompt on screen"},
			},
		}
	}
}

func defaultQuizIdea(topic string) models.AssessmentIdea {
	return models.AssessmentIdea{
		Type:        "Quiz",
		Duration:    "15 minutes",
		Description: fmt.Sprintf("A short multiple-choice quiz checking understanding of the key concepts of %s.", topic),
		ExampleQuestions: []models.AssessmentQuestion{
			{
				Question: fmt.Sprintf("Which of the following best describes a core concept of %s?", topic),
				Options: []string{
					"A) A foundational idea the session built on",
					"B) A topic unrelated to this session",
					"C) A term with no agreed definition",
					"D) None of the above",
				},
				CorrectAnswer: "A",
				Explanation:   models.PlainExplanation("The session's core concepts are its foundational ideas; the other options contradict the material."),
			},
		},
	}
}

func defaultDiscussionIdea(topic string) models.AssessmentIdea {
	return models.AssessmentIdea{
		Type:        "Discussion",
		Duration:    "20 minutes",
		Description: fmt.Sprintf("A guided discussion applying %s to a realistic scenario.", topic),
		ExampleQuestions: []models.AssessmentQuestion{
			{
				Question:      fmt.Sprintf("How would you apply %s to a problem from your own field? Give a concrete example.", topic),
				CorrectAnswer: fmt.Sprintf("A strong answer names a concrete problem, applies the key ideas of %s to it, and reflects on limitations.", topic),
				ModelAnswer:   fmt.Sprintf("A complete answer walks through a specific scenario step by step, showing where each concept of %s applies.", topic),
				Explanation: models.RubricExplanation(models.Rubric{
					Criteria: []models.RubricCriterion{
						{Name: "Relevance of the chosen example", Weight: 0.3},
						{Name: "Correct application of session concepts", Weight: 0.5},
						{Name: "Reflection on limitations", Weight: 0.2},
					},
					PointAllocation: "10 points total, weighted by criterion",
				}),
			},
		},
	}
}

func fallbackReadings(topic string) []models.Reading {
	return []models.Reading{
		{
			Title:       fmt.Sprintf("Introduction to %s", topic),
			Author:      "Course teaching team",
			Description: "A primer assembled from the course reading list covering the fundamentals.",
		},
		{
			Title:       fmt.Sprintf("%s: Core Concepts and Methods", topic),
			Author:      "Standard course textbook",
			Description: "The textbook chapters corresponding to this session.",
		},
		{
			Title:       fmt.Sprintf("Case Studies in %s", topic),
			Author:      "Selected journal articles",
			Description: "Applied examples showing the session concepts in realistic settings.",
		},
		{
			Title:       fmt.Sprintf("Further Topics in %s", topic),
			Author:      "Supplementary reading list",
			Description: "Optional material for students who want to go beyond the session scope.",
		},
	}
}
