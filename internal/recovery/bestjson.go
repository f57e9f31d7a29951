package recovery

import (
	"regexp"
	"strings"
)

var (
	fenceJSONRe     = regexp.MustCompile("(?i)```json\\s*")
	fenceRe         = regexp.MustCompile("```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	danglingCommaRe = regexp.MustCompile(`,\s*$`)
	danglingKeyRe   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"\s*:\s*$`)
	danglingNameRe  = regexp.MustCompile(`([,{\[])\s*"(?:[^"\\]|\\.)*"\s*$`)
	bareLiteralRe   = regexp.MustCompile(`[A-Za-z]+$`)
)

// BestEffortJSON converts arbitrary model output into text that stands the
// best chance of decoding as JSON. It strips code-fence decoration and
// preamble prose, truncates trailing garbage after the last complete
// top-level structure, and when the document was cut off mid-stream it
// unwinds the still-open brace/bracket stack and appends matching closers.
func BestEffortJSON(text string) string {
	s := fenceJSONRe.ReplaceAllString(text, "")
	s = fenceRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if i := strings.IndexByte(s, '{'); i >= 0 {
		s = s[i:]
	}

	// Single pass tracking string-literal state and the open-token stack.
	// Every time the stack drains to empty we note a complete-structure
	// boundary; the last one wins.
	inString := false
	escaped := false
	lastComplete := -1
	var stack []byte

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if (top == '{' && ch == '}') || (top == '[' && ch == ']') {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				lastComplete = i
			}
		}
	}

	if lastComplete >= 0 {
		s = s[:lastComplete+1]
	}

	s = strings.TrimSpace(trailingCommaRe.ReplaceAllString(s, "$1"))

	if lastComplete >= 0 {
		return s
	}

	// Truncated mid-stream: cut back to the last complete token, drop any
	// dangling "key": fragment left behind, then close the open stack in
	// reverse order.
	if inString {
		if q := strings.LastIndexByte(s, '"'); q >= 0 {
			s = s[:q]
		}
	}
	if tok := bareLiteralRe.FindString(s); tok != "" && tok != "true" && tok != "false" && tok != "null" {
		s = s[:len(s)-len(tok)]
	}
	s = danglingKeyRe.ReplaceAllString(s, "")
	// A complete string right after a comma or opener is, inside an object,
	// a key cut off before its colon. Inside an array it is a finished
	// element and must be kept.
	if len(stack) > 0 && stack[len(stack)-1] == '{' {
		s = danglingNameRe.ReplaceAllString(s, "$1")
	}
	s = danglingCommaRe.ReplaceAllString(s, "")

	closers := make([]byte, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closers = append(closers, '}')
		} else {
			closers = append(closers, ']')
		}
	}

	return s + string(closers)
}
