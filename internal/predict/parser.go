package predict

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatError reports a completion whose text did not decode into a
// prediction. Content carries the original text for server-side logging; it
// must not be echoed to API callers.
type FormatError struct {
	Content string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("prediction format: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParsePrediction decodes the completion service's text into a Result.
// Models routinely wrap the JSON in a markdown code fence, so one is
// stripped before decoding. Decoding is the only validation performed: a
// response that parses but omits a key yields a Result with empty fields,
// passed through as-is.
func ParsePrediction(text string) (Result, error) {
	cleaned := stripFence(strings.TrimSpace(text))

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Result{}, &FormatError{Content: text, Err: err}
	}
	return result, nil
}

// stripFence removes one surrounding markdown code fence, including an
// optional language tag on the opening line.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimSpace(s)
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
