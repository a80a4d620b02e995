package validator

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// WordValidator answers "does this look like an English word" from a local
// word list, so obvious junk never reaches the LLM. Inflected forms of listed
// words pass too.
type WordValidator struct {
	words map[string]struct{}
	mu    sync.RWMutex
}

func NewWordValidator(wordListPath string) (*WordValidator, error) {
	v := &WordValidator{
		words: make(map[string]struct{}),
	}
	if err := v.loadWordList(wordListPath); err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	return v, nil
}

func (v *WordValidator) loadWordList(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	v.mu.Lock()
	defer v.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		v.words[word] = struct{}{}
	}
	return scanner.Err()
}

// IsValid reports whether the word, or a base form derivable by stripping a
// common inflection, appears in the word list.
func (v *WordValidator) IsValid(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if _, ok := v.words[word]; ok {
		return true
	}

	for _, suffix := range []string{"s", "es", "ed", "ing", "ly", "er", "est"} {
		base, found := strings.CutSuffix(word, suffix)
		if !found || len(base) < 2 {
			continue
		}
		if _, ok := v.words[base]; ok {
			return true
		}
		// doubled final consonant: "running" -> "run"
		if len(base) >= 2 && base[len(base)-1] == base[len(base)-2] {
			if _, ok := v.words[base[:len(base)-1]]; ok {
				return true
			}
		}
		// dropped final e: "hoping" -> "hope"
		if _, ok := v.words[base+"e"]; ok {
			return true
		}
	}

	return false
}

// Size returns the number of loaded words.
func (v *WordValidator) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.words)
}
