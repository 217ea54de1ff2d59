package compare

import "strings"

// StripFence removes a markdown code-fence wrapper from a model reply.
//
// An opening fence may carry a language tag (```csv) and both fences may be
// surrounded by arbitrary whitespace. Text without a fence passes through
// unchanged apart from surrounding whitespace.
func StripFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, tag included.
	rest := trimmed[len("```"):]
	if idx := strings.Index(rest, "\n"); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		// Opening fence with no body, e.g. "```csv```".
		rest = strings.TrimPrefix(strings.TrimSuffix(rest, "```"), "csv")
		return strings.TrimSpace(rest)
	}

	rest = strings.TrimRight(rest, " \t\n")
	if strings.HasSuffix(rest, "```") {
		rest = rest[:len(rest)-len("```")]
	}
	return strings.TrimRight(rest, " \t") // keep the trailing newline before the closing fence
}
