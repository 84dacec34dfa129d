package models

const (
	ContentTypeLecture  = "lecture"
	ContentTypeTutorial = "tutorial"
	ContentTypeWorkshop = "workshop"

	ContentStyleInteractive  = "interactive"
	ContentStyleCaseStudy    = "caseStudy"
	ContentStyleProblemBased = "problemBased"
	ContentStyleTraditional  = "traditional"

	DifficultyIntroductory = "introductory"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	LanguageEnglish    = "en"
	LanguageIndonesian = "id"
)

// GenerationRequest is the input to the generation pipeline.
type GenerationRequest struct {
	Model           string      `json:"model"`
	SelectedSources []SourceRef `json:"selectedSources"`
	ContentType     string      `json:"contentType"`
	ContentStyle    string      `json:"contentStyle"`
	SessionLength   int         `json:"sessionLength"`
	DifficultyLevel string      `json:"difficultyLevel"`
	TopicName       string      `json:"topicName"`
	Language        string      `json:"language"`
	CourseInfo      *CourseInfo `json:"courseInfo,omitempty"`
}

type SourceRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// CourseInfo backs the course-context fallback when no sources are selected.
type CourseInfo struct {
	CourseName string `json:"courseName"`
	CourseCode string `json:"courseCode"`
	Semester   string `json:"semester"`
	Year       string `json:"year"`
}

// SourceChunk is one retrieved excerpt from the content store.
type SourceChunk struct {
	Chunk      string `json:"chunk"`
	SourceName string `json:"sourceName"`
	Order      int    `json:"order"`
}

// SourceBundle is the assembled source material handed to every prompt step.
type SourceBundle struct {
	Text     string         `json:"text"`
	Metadata SourceMetadata `json:"metadata"`
}

type SourceMetadata struct {
	SourceCount        int      `json:"sourceCount"`
	ChunkCount         int      `json:"chunkCount"`
	TokenEstimate      int      `json:"tokenEstimate"`
	SourceNames        []string `json:"sourceNames"`
	UsingCourseContext bool     `json:"usingCourseContext"`
}

// Source is a selectable source document as listed to the UI.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
