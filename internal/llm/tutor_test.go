package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, response string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(GenerateResponse{
			Model:    "test",
			Response: response,
			Done:     true,
		})
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test")
}

func TestGenerateQuestions_StripsNumbering(t *testing.T) {
	c := newTestClient(t, "1. What changed education?\n2) How do students collaborate?\n3. What are interactive platforms?")

	questions, err := c.GenerateQuestions(context.Background(), "some passage", 3)
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}
	want := []string{
		"What changed education?",
		"How do students collaborate?",
		"What are interactive platforms?",
	}
	if len(questions) != len(want) {
		t.Fatalf("expected %d questions, got %d: %v", len(want), len(questions), questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Fatalf("question %d: got %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestGenerateQuestions_TruncatesToRequestedCount(t *testing.T) {
	c := newTestClient(t, "1. One?\n2. Two?\n3. Three?\n4. Four?")

	questions, err := c.GenerateQuestions(context.Background(), "passage", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestAnalyzeAnswer_ParsesFencedJSON(t *testing.T) {
	c := newTestClient(t, "```json\n{\"content\": \"accurate\", \"grammar\": \"minor issues\", \"suggestions\": \"expand\", \"improvedAnswer\": \"model answer\", \"totalScore\": 8}\n```")

	feedback, err := c.AnalyzeAnswer(context.Background(), "q", "a", "p")
	if err != nil {
		t.Fatalf("AnalyzeAnswer failed: %v", err)
	}
	if feedback.TotalScore != 8 || feedback.Content != "accurate" {
		t.Fatalf("unexpected feedback: %+v", feedback)
	}
}

func TestAnalyzeAnswer_ClampsScore(t *testing.T) {
	c := newTestClient(t, `{"content": "x", "grammar": "x", "suggestions": "x", "improvedAnswer": "x", "totalScore": 15}`)

	feedback, err := c.AnalyzeAnswer(context.Background(), "q", "a", "p")
	if err != nil {
		t.Fatalf("AnalyzeAnswer failed: %v", err)
	}
	if feedback.TotalScore != 10 {
		t.Fatalf("expected score clamped to 10, got %d", feedback.TotalScore)
	}
}

func TestDefineWord(t *testing.T) {
	c := newTestClient(t, `Here you go: {"word": "ubiquitous", "definition": "found everywhere", "examples": ["Wi-Fi is ubiquitous."]}`)

	def, err := c.DefineWord(context.Background(), "ubiquitous")
	if err != nil {
		t.Fatalf("DefineWord failed: %v", err)
	}
	if def.Definition != "found everywhere" || len(def.Examples) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}
}

func TestParseNumberedList_SkipsEmptyAndBareNumbers(t *testing.T) {
	items := ParseNumberedList("1. First item\n\n2.\n3 - Third item\nplain line")
	want := []string{"First item", "Third item", "plain line"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: got %q, want %q", i, items[i], want[i])
		}
	}
}

func TestExtractJSON_RejectsGarbage(t *testing.T) {
	if _, err := ExtractJSON("no json here"); err == nil {
		t.Fatalf("expected error for response without JSON")
	}
	if _, err := ExtractJSON("{broken"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
