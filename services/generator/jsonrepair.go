package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRegexp         = regexp.MustCompile("```(?:[a-zA-Z]+)?[ \\t]*\\n?((?s:.*?))```")
	trailingCommaRegexp = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRegexp       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_\-]*)\s*:`)
	singleQuoteRegexp   = regexp.MustCompile(`'([^'\\]*)'`)
	bareValueRegexp     = regexp.MustCompile(`:\s*([A-Za-z][^",{}\[\]]*?)\s*([,}\]])`)
)

// ExtractAndParseJSON converts a raw LLM response into a parsed JSON value.
// Models routinely wrap JSON in code fences, leave trailing commas, or emit
// prose around the payload, so the attempts get progressively more
// aggressive. The function never fails: when every attempt is exhausted it
// returns an empty object.
func ExtractAndParseJSON(raw string) any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return map[string]any{}
	}

	if blocks := extractFenceBlocks(text); len(blocks) > 0 {
		for _, block := range blocks {
			if value, ok := parseJSON(block); ok {
				return value
			}
		}

		if len(blocks) > 1 {
			combined := make([]any, 0, len(blocks))
			allParsed := true
			for _, block := range blocks {
				value, ok := parseJSON(repairJSON(block))
				if !ok {
					allParsed = false
					break
				}
				combined = append(combined, value)
			}
			if allParsed {
				return combined
			}
		}

		text = strings.TrimSpace(blocks[0])
	}

	if value, ok := parseJSON(text); ok {
		return value
	}

	if value, ok := parseJSON(repairJSON(text)); ok {
		return value
	}

	if region := extractBalancedRegion(text); region != "" {
		if value, ok := parseJSON(region); ok {
			return value
		}
		if value, ok := parseJSON(repairJSON(region)); ok {
			return value
		}
		text = region
	}

	if value, ok := parseJSON(cleanupLooseJSON(text)); ok {
		return value
	}

	return map[string]any{}
}

// parseJSON attempts a strict parse. Only objects and arrays count: a bare
// scalar in the middle of prose is never the payload we want.
func parseJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, false
	}
	return value, true
}

func extractFenceBlocks(text string) []string {
	matches := fenceRegexp.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, match := range matches {
		block := strings.TrimSpace(match[1])
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// repairJSON applies the generic repair pass: typographic quotes, control
// characters, trailing commas, and unbalanced brackets.
func repairJSON(text string) string {
	replacer := strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
	repaired := replacer.Replace(strings.TrimSpace(text))

	repaired = stripControlChars(repaired)
	repaired = trailingCommaRegexp.ReplaceAllString(repaired, "$1")
	repaired = balanceBrackets(repaired)
	repaired = trailingCommaRegexp.ReplaceAllString(repaired, "$1")
	return repaired
}

// stripControlChars drops control characters, escaping newlines and tabs that
// appear inside string literals instead of discarding them.
func stripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString := false
	escaped := false
	for _, r := range text {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case inString && r == '\\':
			escaped = true
			b.WriteRune(r)
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case r < 0x20:
			if inString {
				switch r {
				case '\n':
					b.WriteString(`\n`)
				case '\t':
					b.WriteString(`\t`)
				}
			} else if r == '\n' || r == '\t' || r == '\r' {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// balanceBrackets closes any string or bracket left open at the end of the
// text, which recovers responses truncated by the token limit.
func balanceBrackets(text string) string {
	var stack []rune
	inString := false
	escaped := false

	for _, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, r)
			}
		case '}':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(text)
	if inString {
		b.WriteString(`"`)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteString("}")
		} else {
			b.WriteString("]")
		}
	}
	return b.String()
}

// extractBalancedRegion returns the first balanced {...} or [...] region,
// or everything from the first opener when the region never closes.
func extractBalancedRegion(text string) string {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return ""
	}

	opener := rune(text[start])
	closer := '}'
	if opener == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i, r := range text[start:] {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case opener:
			if !inString {
				depth++
			}
		case closer:
			if !inString {
				depth--
				if depth == 0 {
					return text[start : start+i+1]
				}
			}
		}
	}

	return text[start:]
}

// cleanupLooseJSON is the conservative last-resort cleanup: quote bare keys,
// convert single-quoted strings, quote bare scalar values, and strip trailing
// commas and control characters.
func cleanupLooseJSON(text string) string {
	cleaned := stripControlChars(strings.TrimSpace(text))

	cleaned = bareKeyRegexp.ReplaceAllString(cleaned, `$1"$2":`)
	cleaned = singleQuoteRegexp.ReplaceAllString(cleaned, `"$1"`)

	cleaned = bareValueRegexp.ReplaceAllStringFunc(cleaned, func(match string) string {
		sub := bareValueRegexp.FindStringSubmatch(match)
		value := strings.TrimSpace(sub[1])
		switch value {
		case "true", "false", "null":
			return match
		}
		return fmt.Sprintf(`: "%s"%s`, value, sub[2])
	})

	cleaned = trailingCommaRegexp.ReplaceAllString(cleaned, "$1")
	return cleaned
}
