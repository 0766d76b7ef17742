package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSONObject pulls a single JSON object out of free-form model text.
// The model is instructed to reply with bare JSON but tends to wrap it in
// prose or a fenced code block. Tried in order:
//  1. a ``` / ```json fenced block containing an object
//  2. the span from the first '{' to the last '}'
//  3. a brace-depth scan of that span, parsing the first balanced object
//
// Returns nil when nothing parses. Never panics; callers treat nil as an
// upstream-format failure.
func ExtractJSONObject(text string) map[string]any {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		if obj := parseObject(m[1]); obj != nil {
			return obj
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil
	}
	span := text[start : end+1]
	if obj := parseObject(span); obj != nil {
		return obj
	}

	depth := 0
	for i := 0; i < len(span); i++ {
		switch span[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return parseObject(span[:i+1])
			}
		}
	}
	return nil
}

func parseObject(s string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil
	}
	return obj
}
