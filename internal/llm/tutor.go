package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Feedback is the structured assessment of one answer.
type Feedback struct {
	Content        string `json:"content"`
	Grammar        string `json:"grammar"`
	Suggestions    string `json:"suggestions"`
	ImprovedAnswer string `json:"improvedAnswer"`
	TotalScore     int    `json:"totalScore"`
}

// WordDefinition is the learner-facing definition payload for one word.
type WordDefinition struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
}

// GenerateQuestions asks the model for n comprehension questions about the
// passage and returns them with the list numbering stripped.
func (c *Client) GenerateQuestions(ctx context.Context, passage string, n int) ([]string, error) {
	response, err := c.Generate(ctx, fmt.Sprintf(QuestionsPrompt, n, passage))
	if err != nil {
		return nil, err
	}

	questions := ParseNumberedList(response)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found in response")
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions, nil
}

// AnalyzeAnswer scores and critiques a student's answer against the passage.
func (c *Client) AnalyzeAnswer(ctx context.Context, question, answer, passage string) (*Feedback, error) {
	response, err := c.Generate(ctx, fmt.Sprintf(AnalyzeAnswerPrompt, passage, question, answer))
	if err != nil {
		return nil, err
	}

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var feedback Feedback
	if err := json.Unmarshal([]byte(jsonStr), &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	if feedback.TotalScore < 0 {
		feedback.TotalScore = 0
	}
	if feedback.TotalScore > 10 {
		feedback.TotalScore = 10
	}
	return &feedback, nil
}

// DefineWord returns a definition plus example sentences for word.
func (c *Client) DefineWord(ctx context.Context, word string) (*WordDefinition, error) {
	response, err := c.Generate(ctx, fmt.Sprintf(DefineWordPrompt, word))
	if err != nil {
		return nil, err
	}

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var def WordDefinition
	if err := json.Unmarshal([]byte(jsonStr), &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if def.Definition == "" {
		return nil, fmt.Errorf("response contained no definition")
	}
	return &def, nil
}

// ParseNumberedList splits an LLM response into list entries, dropping
// numbering like "1.", "2)" or "#" from the start of each line.
func ParseNumberedList(response string) []string {
	var items []string
	for _, line := range strings.Split(response, "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		if (cleaned[0] >= '0' && cleaned[0] <= '9') || cleaned[0] == '#' {
			// Skip past the number and any separators to the first letter or quote.
			stripped := ""
			for i := 1; i < len(cleaned); i++ {
				ch := cleaned[i]
				if ch == '"' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
					stripped = strings.TrimSpace(cleaned[i:])
					break
				}
			}
			cleaned = stripped
		}
		if cleaned != "" {
			items = append(items, cleaned)
		}
	}
	return items
}
