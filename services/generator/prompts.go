package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"coursegen/models"

	"github.com/invopop/jsonschema"
)

// promptParams carries the request parameters every prompt step needs.
// Builders are pure: same params, same prompt.
type promptParams struct {
	Topic           string
	ContentType     string
	ContentStyle    string
	DifficultyLevel string
	SessionLength   int
	Language        string
	HasSources      bool
	SourceText      string
}

const SYSTEM_PROMPT_EN = `You are an expert instructional designer creating university course materials. You always respond with valid JSON only, using exactly the fields requested. No prose, no markdown, no code fences.`

const SYSTEM_PROMPT_ID = `Anda adalah perancang pembelajaran ahli yang membuat materi kuliah universitas. Anda selalu merespons hanya dengan JSON yang valid, menggunakan persis field yang diminta. Tanpa prosa, tanpa markdown, tanpa code fence.`

const SOURCE_INSTRUCTION_EN = `Base the material strictly on the source material below. Do not invent facts that contradict it.

SOURCE MATERIAL:
%s`

const NO_SOURCE_INSTRUCTION_EN = `No source material is available for this session. Rely on established curricular knowledge for the topic and course context below.

%s`

const SOURCE_INSTRUCTION_ID = `Dasarkan materi secara ketat pada materi sumber di bawah ini. Jangan membuat fakta yang bertentangan dengannya.

MATERI SUMBER:
%s`

const NO_SOURCE_INSTRUCTION_ID = `Tidak ada materi sumber untuk sesi ini. Gunakan pengetahuan kurikuler yang mapan untuk topik dan konteks mata kuliah di bawah ini.

%s`

const METADATA_PROMPT_EN = `Create the metadata for a %d-minute %s session on "%s" at %s difficulty, taught in a %s style.

%s

Respond with valid JSON only, exactly these fields:
{
  "title": "session title",
  "contentType": "%s",
  "difficultyLevel": "%s",
  "learningOutcomes": ["outcome 1", "outcome 2", "outcome 3"],
  "keyTerms": [{"term": "term", "definition": "definition"}]
}
Write every value in English.`

const METADATA_PROMPT_ID = `Buat metadata untuk sesi %s berdurasi %d menit tentang "%s" dengan tingkat kesulitan %s, diajarkan dengan gaya %s.

%s

Respons hanya dengan JSON yang valid, persis field berikut:
{
  "title": "judul sesi",
  "contentType": "%s",
  "difficultyLevel": "%s",
  "learningOutcomes": ["capaian 1", "capaian 2", "capaian 3"],
  "keyTerms": [{"term": "istilah", "definition": "definisi"}]
}
Tulis semua nilai dalam Bahasa Indonesia.`

const INTRODUCTION_PROMPT_EN = `Write the introduction for the session "%s" (%s, %s difficulty) on the topic "%s".

%s

Respond with valid JSON only, exactly this field:
{
  "introduction": "two to three paragraphs introducing the session"
}
Write every value in English.`

const INTRODUCTION_PROMPT_ID = `Tulis pendahuluan untuk sesi "%s" (%s, tingkat kesulitan %s) tentang topik "%s".

%s

Respons hanya dengan JSON yang valid, persis field berikut:
{
  "introduction": "dua sampai tiga paragraf yang memperkenalkan sesi"
}
Tulis semua nilai dalam Bahasa Indonesia.`

const SPECIAL_SLIDES_PROMPT_EN = `Create exactly four structural slides for the session "%s" on "%s": one of each type below, and no other types.

%s

Respond with valid JSON only, exactly this shape:
{
  "introduction": {"title": "...", "content": ["point 1", "point 2"], "notes": "speaker notes"},
  "agenda": {"title": "...", "content": ["item 1", "item 2"], "notes": "speaker notes"},
  "assessment": {"title": "...", "content": ["point 1", "point 2"], "notes": "speaker notes"},
  "conclusion": {"title": "...", "content": ["point 1", "point 2"], "notes": "speaker notes"}
}
Write every value in English.`

const SPECIAL_SLIDES_PROMPT_ID = `Buat tepat empat slide struktural untuk sesi "%s" tentang "%s": satu untuk setiap tipe di bawah ini, tanpa tipe lain.

%s

Respons hanya dengan JSON yang valid, persis bentuk berikut:
{
  "introduction": {"title": "...", "content": ["poin 1", "poin 2"], "notes": "catatan pembicara"},
  "agenda": {"title": "...", "content": ["butir 1", "butir 2"], "notes": "catatan pembicara"},
  "assessment": {"title": "...", "content": ["poin 1", "poin 2"], "notes": "catatan pembicara"},
  "conclusion": {"title": "...", "content": ["poin 1", "poin 2"], "notes": "catatan pembicara"}
}
Tulis semua nilai dalam Bahasa Indonesia.`

const CONTENT_SLIDES_PROMPT_EN = `Create slides %d through %d of the %d content slides for the session "%s" on "%s" (%s difficulty, %s style).

%s

Do NOT create introduction, agenda, assessment, or conclusion slides; those already exist. Create teaching slides covering the topic itself.%s

Respond with valid JSON only, exactly this shape:
{
  "slides": [
    {"title": "...", "content": ["point 1", "point 2", "point 3"], "notes": "speaker notes"}
  ]
}
Write every value in English.`

const CONTENT_SLIDES_PROMPT_ID = `Buat slide ke-%d sampai ke-%d dari %d slide konten untuk sesi "%s" tentang "%s" (tingkat kesulitan %s, gaya %s).

%s

JANGAN membuat slide introduction, agenda, assessment, atau conclusion; slide tersebut sudah ada. Buat slide pengajaran yang membahas topiknya sendiri.%s

Respons hanya dengan JSON yang valid, persis bentuk berikut:
{
  "slides": [
    {"title": "...", "content": ["poin 1", "poin 2", "poin 3"], "notes": "catatan pembicara"}
  ]
}
Tulis semua nilai dalam Bahasa Indonesia.`

const ACTIVITIES_PROMPT_EN = `Create two or three learning activities for the %d-minute %s session "%s" on "%s" (%s difficulty, %s style).

%s

Respond with valid JSON only, exactly this shape:
{
  "activities": [
    {
      "title": "...",
      "type": "discussion|exercise|group work|case study",
      "description": "...",
      "duration": "15 minutes",
      "instructions": ["step 1", "step 2"],
      "materials": ["material 1", "material 2"]
    }
  ]
}
Write every value in English.`

const ACTIVITIES_PROMPT_ID = `Buat dua atau tiga aktivitas pembelajaran untuk sesi %s berdurasi %d menit "%s" tentang "%s" (tingkat kesulitan %s, gaya %s).

%s

Respons hanya dengan JSON yang valid, persis bentuk berikut:
{
  "activities": [
    {
      "title": "...",
      "type": "diskusi|latihan|kerja kelompok|studi kasus",
      "description": "...",
      "duration": "15 menit",
      "instructions": ["langkah 1", "langkah 2"],
      "materials": ["bahan 1", "bahan 2"]
    }
  ]
}
Tulis semua nilai dalam Bahasa Indonesia.`

const ASSESSMENT_PROMPT_EN = `Suggest assessment ideas for the session "%s" on "%s" (%s difficulty). Include at least one Quiz assessment and one Discussion assessment. Do not write example questions yet.

%s

Respond with valid JSON only, exactly this shape:
{
  "assessmentIdeas": [
    {"type": "Quiz", "duration": "15 minutes", "description": "..."},
    {"type": "Discussion", "duration": "20 minutes", "description": "..."}
  ]
}
Write every value in English.`

const ASSESSMENT_PROMPT_ID = `Sarankan ide penilaian untuk sesi "%s" tentang "%s" (tingkat kesulitan %s). Sertakan setidaknya satu penilaian Quiz dan satu penilaian Discussion. Jangan menulis contoh soal dulu.

%s

Respons hanya dengan JSON yang valid, persis bentuk berikut:
{
  "assessmentIdeas": [
    {"type": "Quiz", "duration": "15 menit", "description": "..."},
    {"type": "Discussion", "duration": "20 menit", "description": "..."}
  ]
}
Tulis semua nilai dalam Bahasa Indonesia.`

const READINGS_PROMPT_EN = `Recommend three or four further readings for the session "%s" on "%s" (%s difficulty). Prefer well-known textbooks and survey papers.

%s

Respond with valid JSON only, exactly this shape:
{
  "furtherReadings": [
    {"title": "...", "author": "...", "description": "why it is relevant"}
  ]
}
Write every value in English.`

const READINGS_PROMPT_ID = `Rekomendasikan tiga atau empat bacaan lanjutan untuk sesi "%s" tentang "%s" (tingkat kesulitan %s). Utamakan buku teks dan makalah survei yang terkenal.

%s

Respons hanya dengan JSON yang valid, persis bentuk berikut:
{
  "furtherReadings": [
    {"title": "...", "author": "...", "description": "mengapa relevan"}
  ]
}
Tulis semua nilai dalam Bahasa Indonesia.`

const QUIZ_QUESTIONS_PROMPT_EN = `Write three multiple-choice quiz questions for the assessment "%s" in the session on "%s" (%s difficulty).

%s

Each question must have four options labeled A-D, a correctAnswer that is one of the option letters, and a short explanation.

Respond with a valid JSON array only. Each element must conform to this schema:
%s
Write every value in English.`

const QUIZ_QUESTIONS_PROMPT_ID = `Tulis tiga soal kuis pilihan ganda untuk penilaian "%s" dalam sesi tentang "%s" (tingkat kesulitan %s).

%s

Setiap soal harus memiliki empat opsi berlabel A-D, correctAnswer berupa salah satu huruf opsi, dan penjelasan singkat.

Respons hanya dengan array JSON yang valid. Setiap elemen harus sesuai skema berikut:
%s
Tulis semua nilai dalam Bahasa Indonesia.`

const DISCUSSION_QUESTIONS_PROMPT_EN = `Write two discussion questions for the assessment "%s" in the session on "%s" (%s difficulty).

%s

Each question must have a correctAnswer summarizing the key points a strong answer covers, a modelAnswer showing a complete example answer, and an explanation that may be either a short text or a marking rubric with weighted criteria.

Respond with a valid JSON array only. Each element must conform to this schema:
%s
Write every value in English.`

const DISCUSSION_QUESTIONS_PROMPT_ID = `Tulis dua pertanyaan diskusi untuk penilaian "%s" dalam sesi tentang "%s" (tingkat kesulitan %s).

%s

Setiap pertanyaan harus memiliki correctAnswer yang merangkum poin-poin kunci jawaban yang baik, modelAnswer berupa contoh jawaban lengkap, dan explanation yang boleh berupa teks singkat atau rubrik penilaian dengan kriteria berbobot.

Respons hanya dengan array JSON yang valid. Setiap elemen harus sesuai skema berikut:
%s
Tulis semua nilai dalam Bahasa Indonesia.`

// questionSchemaText is the JSON schema for AssessmentQuestion, reflected once
// and embedded in the question prompts so the model sees the exact contract.
var questionSchemaText = reflectQuestionSchema()

func reflectQuestionSchema() string {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&models.AssessmentQuestion{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return `{"type": "object", "properties": {"question": {"type": "string"}, "options": {"type": "array"}, "correctAnswer": {"type": "string"}, "modelAnswer": {"type": "string"}, "explanation": {}, "pointAllocation": {"type": "string"}}}`
	}
	return string(data)
}

func systemPrompt(language string) string {
	if language == models.LanguageIndonesian {
		return SYSTEM_PROMPT_ID
	}
	return SYSTEM_PROMPT_EN
}

// sourceInstruction picks the grounding block: strict source grounding when
// material exists, general curricular knowledge otherwise.
func sourceInstruction(p promptParams) string {
	if p.Language == models.LanguageIndonesian {
		if p.HasSources {
			return fmt.Sprintf(SOURCE_INSTRUCTION_ID, p.SourceText)
		}
		return fmt.Sprintf(NO_SOURCE_INSTRUCTION_ID, p.SourceText)
	}
	if p.HasSources {
		return fmt.Sprintf(SOURCE_INSTRUCTION_EN, p.SourceText)
	}
	return fmt.Sprintf(NO_SOURCE_INSTRUCTION_EN, p.SourceText)
}

func buildMetadataPrompt(p promptParams) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(METADATA_PROMPT_ID,
			p.ContentType, p.SessionLength, p.Topic, p.DifficultyLevel, p.ContentStyle,
			sourceInstruction(p), p.ContentType, p.DifficultyLevel)
	}
	return fmt.Sprintf(METADATA_PROMPT_EN,
		p.SessionLength, p.ContentType, p.Topic, p.DifficultyLevel, p.ContentStyle,
		sourceInstruction(p), p.ContentType, p.DifficultyLevel)
}

func buildIntroductionPrompt(p promptParams, title string) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(INTRODUCTION_PROMPT_ID, title, p.ContentType, p.DifficultyLevel, p.Topic, sourceInstruction(p))
	}
	return fmt.Sprintf(INTRODUCTION_PROMPT_EN, title, p.ContentType, p.DifficultyLevel, p.Topic, sourceInstruction(p))
}

func buildSpecialSlidesPrompt(p promptParams, title string) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(SPECIAL_SLIDES_PROMPT_ID, title, p.Topic, sourceInstruction(p))
	}
	return fmt.Sprintf(SPECIAL_SLIDES_PROMPT_EN, title, p.Topic, sourceInstruction(p))
}

func buildContentSlidesPrompt(p promptParams, title string, start, end, total int, existingTitles []string) string {
	existing := ""
	if len(existingTitles) > 0 {
		if p.Language == models.LanguageIndonesian {
			existing = fmt.Sprintf("\nJangan ulangi slide yang sudah dibuat: %s.", strings.Join(existingTitles, "; "))
		} else {
			existing = fmt.Sprintf("\nDo not repeat slides already created: %s.", strings.Join(existingTitles, "; "))
		}
	}

	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(CONTENT_SLIDES_PROMPT_ID,
			start, end, total, title, p.Topic, p.DifficultyLevel, p.ContentStyle,
			sourceInstruction(p), existing)
	}
	return fmt.Sprintf(CONTENT_SLIDES_PROMPT_EN,
		start, end, total, title, p.Topic, p.DifficultyLevel, p.ContentStyle,
		sourceInstruction(p), existing)
}

func buildActivitiesPrompt(p promptParams, title string) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(ACTIVITIES_PROMPT_ID,
			p.ContentType, p.SessionLength, title, p.Topic, p.DifficultyLevel, p.ContentStyle,
			sourceInstruction(p))
	}
	return fmt.Sprintf(ACTIVITIES_PROMPT_EN,
		p.SessionLength, p.ContentType, title, p.Topic, p.DifficultyLevel, p.ContentStyle,
		sourceInstruction(p))
}

func buildAssessmentPrompt(p promptParams, title string) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(ASSESSMENT_PROMPT_ID, title, p.Topic, p.DifficultyLevel, sourceInstruction(p))
	}
	return fmt.Sprintf(ASSESSMENT_PROMPT_EN, title, p.Topic, p.DifficultyLevel, sourceInstruction(p))
}

func buildReadingsPrompt(p promptParams, title string) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(READINGS_PROMPT_ID, title, p.Topic, p.DifficultyLevel, sourceInstruction(p))
	}
	return fmt.Sprintf(READINGS_PROMPT_EN, title, p.Topic, p.DifficultyLevel, sourceInstruction(p))
}

func buildQuizQuestionsPrompt(p promptParams, idea models.AssessmentIdea) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(QUIZ_QUESTIONS_PROMPT_ID, idea.Description, p.Topic, p.DifficultyLevel, sourceInstruction(p), questionSchemaText)
	}
	return fmt.Sprintf(QUIZ_QUESTIONS_PROMPT_EN, idea.Description, p.Topic, p.DifficultyLevel, sourceInstruction(p), questionSchemaText)
}

func buildDiscussionQuestionsPrompt(p promptParams, idea models.AssessmentIdea) string {
	if p.Language == models.LanguageIndonesian {
		return fmt.Sprintf(DISCUSSION_QUESTIONS_PROMPT_ID, idea.Description, p.Topic, p.DifficultyLevel, sourceInstruction(p), questionSchemaText)
	}
	return fmt.Sprintf(DISCUSSION_QUESTIONS_PROMPT_EN, idea.Description, p.Topic, p.DifficultyLevel, sourceInstruction(p), questionSchemaText)
}
