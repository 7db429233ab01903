package readme

import (
	"regexp"
	"strings"
)

// Models routinely wrap the requested HTML in a markdown code fence even
// when told not to. The fence is an artifact of the chat format, not part of
// the deliverable, so every marker is stripped wherever it appears.
//
// The optional "html" tag covers the common ```html opener; a bare ``` covers
// closers and untagged openers.
var fencePattern = regexp.MustCompile("```(?:html)?")

// Sanitize removes all code-fence markers from raw generated text and trims
// surrounding whitespace.
//
// Idempotent: sanitize(sanitize(x)) == sanitize(x). Sanitizing may leave the
// empty string (e.g. the model emitted only a fence) — the caller treats
// that as a generation failure, not as an empty success.
func Sanitize(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}
