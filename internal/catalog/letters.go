package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/giasu/internal/grading"
)

// ParseLetters decodes a set of option letters from its stored or authored
// text form. A JSON array (`["A","C"]`) is tried first; anything else is
// split on commas, semicolons and whitespace ("A, C"). Case and duplicates
// are ignored. Tokens that are not a single letter are an error.
func ParseLetters(raw string) (grading.LetterSet, error) {
	tokens, err := letterTokens(raw)
	if err != nil {
		return 0, err
	}
	var set grading.LetterSet
	for _, tok := range tokens {
		l, ok := grading.Letters(tok)
		if !ok {
			return 0, fmt.Errorf("parse letters %q: %q is not a single letter", raw, tok)
		}
		set = set.Union(l)
	}
	return set, nil
}

// ParseAnswer reads a submitted answer in the same forms as ParseLetters.
// It never fails: unreadable input and tokens that are not a single letter
// become grading.Unrecognized, which the grader scores as an invalid choice.
func ParseAnswer(raw string) grading.LetterSet {
	tokens, err := letterTokens(raw)
	if err != nil {
		return grading.Unrecognized
	}
	return grading.AnswerLetters(tokens...)
}

func letterTokens(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tokens []string
		if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
			return nil, fmt.Errorf("parse letters %q: %w", raw, err)
		}
		return tokens, nil
	}
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	}), nil
}

// FormatLetters renders a set in the stored form, a JSON array.
func FormatLetters(set grading.LetterSet) string {
	b, _ := json.Marshal(set.Slice())
	return string(b)
}

// letterText unwraps a JSON letters value: an array, a string holding
// either form, or null.
func letterText(raw json.RawMessage) (string, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode letters: %w", err)
		}
		return s, nil
	}
	return text, nil
}

// decodeLetters reads authored letters, such as correct options.
func decodeLetters(raw json.RawMessage) (grading.LetterSet, error) {
	text, err := letterText(raw)
	if err != nil {
		return 0, err
	}
	return ParseLetters(text)
}

// decodeAnswer reads a submitted answer; see ParseAnswer.
func decodeAnswer(raw json.RawMessage) grading.LetterSet {
	text, err := letterText(raw)
	if err != nil {
		return grading.Unrecognized
	}
	return ParseAnswer(text)
}
