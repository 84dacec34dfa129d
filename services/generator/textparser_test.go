package generator

import "testing"

func TestParseQuestionsFromText(t *testing.T) {
	raw := `Here are the questions you asked for:

QUESTION 1: What is a directed graph?
A) A graph whose edges have an orientation
B) A graph with no edges
C) A graph with weighted vertices
D) A tree with one root
CORRECT ANSWER: A
EXPLANATION: Directed edges distinguish digraphs from undirected graphs.

QUESTION 2: Which traversal uses a queue?
A) Depth-first search
B) Breadth-first search
C) Binary search
D) Topological sort
CORRECT ANSWER: B
EXPLANATION: BFS visits vertices in order of distance using a FIFO queue.`

	questions := parseQuestionsFromText(raw)

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Question != "What is a directed graph?" {
		t.Errorf("first question = %q", first.Question)
	}
	if len(first.Options) != 4 {
		t.Errorf("expected 4 options, got %d: %v", len(first.Options), first.Options)
	}
	if first.CorrectAnswer != "A" {
		t.Errorf("first correctAnswer = %q, expected A", first.CorrectAnswer)
	}
	if first.Explanation.Text == "" {
		t.Error("first explanation is empty")
	}

	second := questions[1]
	if second.CorrectAnswer != "B" {
		t.Errorf("second correctAnswer = %q, expected B", second.CorrectAnswer)
	}
}

func TestParseQuestionsFromTextVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "no markers at all",
			input:    "The model refused to answer in the requested format.",
			expected: 0,
		},
		{
			name:     "lowercase markers",
			input:    "question: What is recursion?\ncorrect answer: A function calling itself.",
			expected: 1,
		},
		{
			name:     "question without number",
			input:    "QUESTION: Define a hash table.\nCORRECT ANSWER: A key-value structure with O(1) expected lookup.",
			expected: 1,
		},
		{
			name:     "options before any question are ignored",
			input:    "A) stray option\nQUESTION 1: Real question?\nCORRECT ANSWER: A",
			expected: 1,
		},
		{
			name:     "empty input",
			input:    "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := parseQuestionsFromText(tt.input)
			if len(questions) != tt.expected {
				t.Errorf("parseQuestionsFromText() returned %d questions, expected %d", len(questions), tt.expected)
			}
		})
	}
}
