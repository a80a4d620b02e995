package scoring

import (
	"strconv"
	"strings"
)

// defaultQuestionScore is used when a feedback entry carries no readable
// score: the middle of the 0-10 range.
const defaultQuestionScore = 5

// SessionScore converts per-question feedback into a session score from 0 to
// 100: the average of the per-question scores (0-10) scaled by ten. Feedback
// entries are the decoded JSON stored on the session; structured entries
// carry a "totalScore" field, older plain-text entries embed "Total Score:
// X/10" and are parsed, anything else counts as the default score.
func SessionScore(feedback map[string]interface{}) int {
	if len(feedback) == 0 {
		return 0
	}

	total := 0
	for _, entry := range feedback {
		total += questionScore(entry)
	}

	avg := float64(total) / float64(len(feedback))
	return int(avg * 10)
}

func questionScore(entry interface{}) int {
	switch v := entry.(type) {
	case map[string]interface{}:
		if score, ok := v["totalScore"].(float64); ok {
			return clampScore(int(score))
		}
	case string:
		if idx := strings.Index(v, "Total Score:"); idx >= 0 {
			rest := strings.TrimSpace(v[idx+len("Total Score:"):])
			if slash := strings.Index(rest, "/"); slash >= 0 {
				rest = rest[:slash]
			}
			if score, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				return clampScore(score)
			}
		}
	}
	return defaultQuestionScore
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
