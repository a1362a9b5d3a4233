package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")
	braceObjectRe = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
)

// ExtractJSON pulls the first parseable JSON value out of raw model output,
// which routinely embeds JSON inside prose or fenced code blocks. Recovery is
// best-effort and order-sensitive:
//
//  1. fenced code blocks (optionally tagged json), first block that parses
//  2. balanced-brace substrings (up to one nesting level), first that parses
//  3. leftmost "{" to rightmost "}", one attempt
//
// Returns false when nothing parses; the caller supplies its fallback.
func ExtractJSON(text string) (json.RawMessage, bool) {
	for _, m := range fencedBlockRe.FindAllStringSubmatch(text, -1) {
		block := strings.TrimSpace(m[1])
		if json.Valid([]byte(block)) {
			return json.RawMessage(block), true
		}
	}

	for _, m := range braceObjectRe.FindAllString(text, -1) {
		if json.Valid([]byte(m)) {
			return json.RawMessage(m), true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}

	return nil, false
}
