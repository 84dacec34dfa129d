package models

import (
	"encoding/json"
	"time"
)

// LectureContent is the canonical generated document returned to the caller.
// It is constructed by the validator and never mutated afterwards.
type LectureContent struct {
	Title            string           `json:"title"`
	ContentType      string           `json:"contentType"`
	DifficultyLevel  string           `json:"difficultyLevel"`
	Introduction     string           `json:"introduction"`
	LearningOutcomes []string         `json:"learningOutcomes"`
	KeyTerms         []KeyTerm        `json:"keyTerms"`
	Slides           []Slide          `json:"slides"`
	Activities       []Activity       `json:"activities"`
	AssessmentIdeas  []AssessmentIdea `json:"assessmentIdeas"`
	FurtherReadings  []Reading        `json:"furtherReadings"`
	SourceMetadata   *SourceMetadata  `json:"sourceMetadata,omitempty"`
	Error            string           `json:"_error,omitempty"`
}

type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type Slide struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
	Notes   string   `json:"notes,omitempty"`
}

type Activity struct {
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Duration     string   `json:"duration"`
	Instructions []string `json:"instructions"`
	Materials    []string `json:"materials"`
}

type AssessmentIdea struct {
	Type             string               `json:"type"`
	Duration         string               `json:"duration"`
	Description      string               `json:"description"`
	ExampleQuestions []AssessmentQuestion `json:"exampleQuestions"`
}

type AssessmentQuestion struct {
	Question        string      `json:"question"`
	Options         []string    `json:"options,omitempty"`
	CorrectAnswer   string      `json:"correctAnswer"`
	ModelAnswer     string      `json:"modelAnswer,omitempty"`
	Explanation     Explanation `json:"explanation"`
	PointAllocation string      `json:"pointAllocation,omitempty"`
}

type Reading struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Explanation is either free text or a structured marking rubric. Models emit
// both shapes for the same field, so the codec accepts a JSON string or a
// rubric object and re-emits whichever variant is populated.
type Explanation struct {
	Text   string
	Rubric *Rubric
}

type Rubric struct {
	Criteria        []RubricCriterion `json:"criteria"`
	PointAllocation string            `json:"pointAllocation,omitempty"`
}

type RubricCriterion struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

func PlainExplanation(text string) Explanation {
	return Explanation{Text: text}
}

func RubricExplanation(r Rubric) Explanation {
	return Explanation{Rubric: &r}
}

func (e Explanation) IsEmpty() bool {
	return e.Text == "" && e.Rubric == nil
}

func (e Explanation) MarshalJSON() ([]byte, error) {
	if e.Rubric != nil {
		return json.Marshal(e.Rubric)
	}
	return json.Marshal(e.Text)
}

func (e *Explanation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		e.Text = text
		e.Rubric = nil
		return nil
	}

	var rubric Rubric
	if err := json.Unmarshal(data, &rubric); err == nil && (len(rubric.Criteria) > 0 || rubric.PointAllocation != "") {
		e.Text = ""
		e.Rubric = &rubric
		return nil
	}

	// Unknown shape: keep the raw JSON as text so nothing is lost.
	e.Text = string(data)
	e.Rubric = nil
	return nil
}

// StoredContent is a persisted generated document.
type StoredContent struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Language  string         `json:"language"`
	Content   LectureContent `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CreateContentRequest struct {
	Language string         `json:"language"`
	Content  LectureContent `json:"content"`
}
