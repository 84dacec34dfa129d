package models

import (
	"encoding/json"
	"testing"
)

func TestExplanationUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantText   string
		wantRubric bool
	}{
		{
			name:     "plain text",
			input:    `"Review the traversal section."`,
			wantText: "Review the traversal section.",
		},
		{
			name:       "rubric object",
			input:      `{"criteria": [{"name": "Accuracy", "weight": 0.6}, {"name": "Clarity", "weight": 0.4}], "pointAllocation": "10 points"}`,
			wantRubric: true,
		},
		{
			name:       "rubric with only point allocation",
			input:      `{"pointAllocation": "5 points"}`,
			wantRubric: true,
		},
		{
			name:     "unknown object kept as raw text",
			input:    `{"unexpected": true}`,
			wantText: `{"unexpected": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var explanation Explanation
			if err := json.Unmarshal([]byte(tt.input), &explanation); err != nil {
				t.Fatalf("Unmarshal(%q) failed: %v", tt.input, err)
			}

			if tt.wantRubric {
				if explanation.Rubric == nil {
					t.Fatal("expected rubric variant")
				}
				return
			}
			if explanation.Rubric != nil {
				t.Fatal("expected text variant, got rubric")
			}
			if explanation.Text != tt.wantText {
				t.Errorf("text = %q, expected %q", explanation.Text, tt.wantText)
			}
		})
	}
}

func TestExplanationMarshalRoundTrip(t *testing.T) {
	plain := PlainExplanation("Check the definition of a spanning tree.")
	rubric := RubricExplanation(Rubric{
		Criteria:        []RubricCriterion{{Name: "Depth", Weight: 1.0}},
		PointAllocation: "10 points",
	})

	for _, explanation := range []Explanation{plain, rubric} {
		data, err := json.Marshal(explanation)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var decoded Explanation
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if (decoded.Rubric == nil) != (explanation.Rubric == nil) {
			t.Errorf("variant changed across round trip: %s", data)
		}
		if decoded.Text != explanation.Text {
			t.Errorf("text changed across round trip: %q != %q", decoded.Text, explanation.Text)
		}
	}
}
