// Package sanitize recovers a parseable YAML mapping from raw generated text
// through a fixed pipeline of pure repair stages.
package sanitize

import (
	"regexp"
	"strings"
)

// fencePattern matches a markdown code fence with an optional language tag,
// capturing the payload. Non-greedy so the first fenced block wins.
var fencePattern = regexp.MustCompile("(?s)```(?:\\w+)?\\s*(.*?)\\s*```")

// StripFences removes surrounding prose and markdown code-fence markers.
// When a fenced block is present only its payload survives; otherwise the
// trimmed input is returned unchanged.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}
