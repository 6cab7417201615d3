package converter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// InteractiveVideoScriptID is the id of the script element carrying recovered
// interactive video data.
const InteractiveVideoScriptID = "exe-interactive-video-contents"

const interactiveVideoVariable = "InteractiveVideo"

var (
	// ErrNoEmbeddedPayload is returned when content carries no script assigning
	// the expected variable.
	ErrNoEmbeddedPayload = errors.New("no embedded payload")
	// ErrMalformedPayload is returned when an embedded payload cannot be turned
	// into valid JSON, even after repair.
	ErrMalformedPayload = errors.New("malformed embedded payload")
)

var (
	scriptElementPattern = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script\s*>`)
	scriptIDPattern      = regexp.MustCompile(`(?i)\bid\s*=\s*["']?` + regexp.QuoteMeta(InteractiveVideoScriptID))
	assignmentPattern    = regexp.MustCompile(`\b` + regexp.QuoteMeta(interactiveVideoVariable) + `\s*=`)
)

// jsIsland is a recovered JSON payload and the script element it came from.
type jsIsland struct {
	JSON       []byte
	ScriptFrom int
	ScriptTo   int
	Modern     bool
}

// findJSIsland locates the script holding interactive video data. A script
// already in the modern JSON form is accepted as is.
func findJSIsland(content string) (jsIsland, error) {
	var lastErr error = ErrNoEmbeddedPayload
	for _, loc := range scriptElementPattern.FindAllStringSubmatchIndex(content, -1) {
		attrs := content[loc[2]:loc[3]]
		body := content[loc[4]:loc[5]]

		if scriptIDPattern.MatchString(attrs) {
			payload, err := normalizeJSON(body)
			if err != nil {
				lastErr = err
				continue
			}
			return jsIsland{JSON: payload, ScriptFrom: loc[0], ScriptTo: loc[1], Modern: true}, nil
		}

		candidate, ok := assignedObject(body)
		if !ok {
			continue
		}
		payload, err := normalizeJSON(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		return jsIsland{JSON: payload, ScriptFrom: loc[0], ScriptTo: loc[1]}, nil
	}
	return jsIsland{}, lastErr
}

// RecoverInteractiveVideo rewrites the legacy script assigning an object to
// InteractiveVideo into a JSON script element. On failure the original content
// is returned along with the error.
func RecoverInteractiveVideo(content string) (string, error) {
	island, err := findJSIsland(content)
	if err != nil {
		return content, err
	}
	if island.Modern {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	b.WriteString(content[:island.ScriptFrom])
	fmt.Fprintf(&b, `<script id="%s" type="application/json">`, InteractiveVideoScriptID)
	b.Write(escapeScriptClose(island.JSON))
	b.WriteString(`</script>`)
	b.WriteString(content[island.ScriptTo:])
	return b.String(), nil
}

// assignedObject returns the object literal assigned to InteractiveVideo in a
// script body.
func assignedObject(script string) (string, bool) {
	for _, loc := range assignmentPattern.FindAllStringIndex(script, -1) {
		i := loc[1]
		if i < len(script) && script[i] == '=' {
			continue
		}
		for i < len(script) && isJSSpace(script[i]) {
			i++
		}
		if i >= len(script) || script[i] != '{' {
			continue
		}
		end, ok := scanBalanced(script, i)
		if !ok {
			return "", false
		}
		return script[i:end], true
	}
	return "", false
}

// scanBalanced returns the index just past the brace matching the one at
// start. Braces inside strings and comments do not count.
func scanBalanced(s string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'', '`':
			i = skipString(s, i)
		case '/':
			if next := skipComment(s, i); next > i {
				i = next - 1
			}
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// skipString returns the index of the quote closing the string opened at i,
// or the last index of s for an unterminated string.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(s) - 1
}

// skipComment returns the index just past a comment starting at i, or i when
// no comment starts there.
func skipComment(s string, i int) int {
	if i+1 >= len(s) || s[i] != '/' {
		return i
	}
	switch s[i+1] {
	case '/':
		end := strings.IndexByte(s[i:], '\n')
		if end < 0 {
			return len(s)
		}
		return i + end
	case '*':
		end := strings.Index(s[i+2:], "*/")
		if end < 0 {
			return len(s)
		}
		return i + 2 + end + 2
	}
	return i
}

// stripJSComments removes // and /* */ comments outside strings.
func stripJSComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'', '`':
			end := skipString(s, i)
			b.WriteString(s[i : end+1])
			i = end
		case '/':
			if next := skipComment(s, i); next > i {
				i = next - 1
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// stripTrailingCommas removes commas directly followed by a closing brace or
// bracket, outside strings.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'', '`':
			end := skipString(s, i)
			b.WriteString(s[i : end+1])
			i = end
		case ',':
			j := i + 1
			for j < len(s) && isJSSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// repairQuotes rewrites a JavaScript object literal into JSON: single-quoted
// strings become double-quoted, stray inner quotes are escaped, raw control
// characters are escaped and bare keys are quoted. A quote only closes a
// string when the next significant character could follow a value.
func repairQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	var quote byte
	last := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote == 0 {
			switch {
			case c == '"' || c == '\'':
				quote = c
				b.WriteByte('"')
			case isIdentStart(c) && (last == '{' || last == ','):
				j := i
				for j < len(s) && isIdentPart(s[j]) {
					j++
				}
				k := j
				for k < len(s) && isJSSpace(s[k]) {
					k++
				}
				if k < len(s) && s[k] == ':' {
					b.WriteByte('"')
					b.WriteString(s[i:j])
					b.WriteByte('"')
				} else {
					b.WriteString(s[i:j])
				}
				i = j - 1
			default:
				b.WriteByte(c)
			}
			if !isJSSpace(c) {
				last = c
			}
			continue
		}

		switch {
		case c == '\\' && i+1 < len(s):
			if s[i+1] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
			}
			i++
		case c == quote:
			if closesString(s, i+1) {
				b.WriteByte('"')
				quote = 0
				last = '"'
			} else if c == '"' {
				b.WriteString(`\"`)
			} else {
				b.WriteByte(c)
			}
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closesString reports whether a quote followed by s[from:] ends a string.
func closesString(s string, from int) bool {
	for j := from; j < len(s); j++ {
		if isJSSpace(s[j]) {
			continue
		}
		switch s[j] {
		case ':', ',', '}', ']':
			return true
		}
		return false
	}
	return true
}

// normalizeJSON turns an object literal into compact JSON, attempting one
// repair pass when the cleaned literal is not valid JSON.
func normalizeJSON(candidate string) ([]byte, error) {
	cleaned := stripTrailingCommas(stripJSComments(strings.TrimSpace(candidate)))
	if !json.Valid([]byte(cleaned)) {
		cleaned = stripTrailingCommas(repairQuotes(cleaned))
		if !json.Valid([]byte(cleaned)) {
			return nil, fmt.Errorf("%w: not valid JSON after repair", ErrMalformedPayload)
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(cleaned)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return compact.Bytes(), nil
}

// escapeScriptClose keeps a JSON payload from terminating its script element.
func escapeScriptClose(payload []byte) []byte {
	return bytes.ReplaceAll(payload, []byte("</"), []byte(`<\/`))
}

func isJSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return isASCIILetter(c) || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
