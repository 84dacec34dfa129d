package generator

import (
	"regexp"
	"strings"

	"coursegen/models"
)

var (
	questionMarkerRegexp    = regexp.MustCompile(`(?i)^\s*QUESTION\s*\d*\s*[:.]\s*(.+)$`)
	optionMarkerRegexp      = regexp.MustCompile(`^\s*([A-D])[).:]\s*(.+)$`)
	answerMarkerRegexp      = regexp.MustCompile(`(?i)^\s*CORRECT\s*ANSWER\s*[:.]\s*(.+)$`)
	explanationMarkerRegexp = regexp.MustCompile(`(?i)^\s*EXPLANATION\s*[:.]\s*(.+)$`)
)

// parseQuestionsFromText extracts questions from unstructured model output
// using QUESTION:, lettered option, CORRECT ANSWER:, and EXPLANATION: markers.
func parseQuestionsFromText(raw string) []models.AssessmentQuestion {
	var questions []models.AssessmentQuestion
	var current *models.AssessmentQuestion

	flush := func() {
		if current != nil && current.Question != "" {
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if match := questionMarkerRegexp.FindStringSubmatch(line); match != nil {
			flush()
			current = &models.AssessmentQuestion{
				Question: strings.TrimSpace(match[1]),
			}
			continue
		}

		if current == nil {
			continue
		}

		if match := answerMarkerRegexp.FindStringSubmatch(line); match != nil {
			current.CorrectAnswer = strings.TrimSpace(match[1])
			continue
		}
		if match := explanationMarkerRegexp.FindStringSubmatch(line); match != nil {
			current.Explanation = models.PlainExplanation(strings.TrimSpace(match[1]))
			continue
		}
		if match := optionMarkerRegexp.FindStringSubmatch(line); match != nil {
			current.Options = append(current.Options,
				match[1]+") "+strings.TrimSpace(match[2]))
			continue
		}
	}
	flush()

	return questions
}
