package scoring

import "testing"

func TestSessionScore_Empty(t *testing.T) {
	if got := SessionScore(nil); got != 0 {
		t.Fatalf("expected 0 for empty feedback, got %d", got)
	}
}

func TestSessionScore_Structured(t *testing.T) {
	feedback := map[string]interface{}{
		"0": map[string]interface{}{"totalScore": float64(8)},
		"1": map[string]interface{}{"totalScore": float64(6)},
	}
	if got := SessionScore(feedback); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
}

func TestSessionScore_LegacyText(t *testing.T) {
	feedback := map[string]interface{}{
		"0": "Content: fine\nTotal Score: 9/10",
	}
	if got := SessionScore(feedback); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
}

func TestSessionScore_UnreadableEntryDefaultsToMiddle(t *testing.T) {
	feedback := map[string]interface{}{
		"0": map[string]interface{}{"verdict": "ok"},
		"1": 42.0,
	}
	if got := SessionScore(feedback); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestSessionScore_ClampsOutOfRange(t *testing.T) {
	feedback := map[string]interface{}{
		"0": map[string]interface{}{"totalScore": float64(25)},
	}
	if got := SessionScore(feedback); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}
