/*
Package recovery converts unreliable model output text into a typed event
record. Model output may be wrapped in prose or code fences, truncated by an
output-token cap, or syntactically broken; recovery keeps whatever structure
is still usable and only gives up when not a single recognizable field
remains.
*/
package recovery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// Status classifies how a model response was turned into a record.
type Status string

const (
	StatusParseSuccess  Status = "parse_success"
	StatusParseFallback Status = "parse_fallback"
	StatusParseError    Status = "parse_error"
)

// Result is the outcome of parsing one model response. RecoveredJSON is the
// best-effort text that was fed to the decoder and DecodeErr is the
// structural failure that forced fallback extraction, both kept for
// telemetry.
type Result struct {
	Record        types.EventRecord
	RecoveredJSON string
	Status        Status
	DecodeErr     error
}

// DecodeDocument decodes best-effort JSON text into an untyped tree.
func DecodeDocument(jsonStr string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuralDecode, err)
	}
	return doc, nil
}

// ParseModelText runs the full recovery chain on one model response:
// safety check, best-effort JSON recovery, decode, and, if decode still
// fails, independent per-field fallback extraction.
func ParseModelText(resp types.ModelResponse) (Result, error) {
	if resp.FinishReason == types.FinishReasonSafety {
		return Result{Status: StatusParseError}, ErrBlockedBySafety
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return Result{Status: StatusParseError}, fmt.Errorf("model response contained no text: %w", ErrNoUsableSignal)
	}

	jsonStr := BestEffortJSON(text)

	doc, decodeErr := DecodeDocument(jsonStr)
	if decodeErr == nil {
		return Result{
			Record:        ProjectRecord(doc),
			RecoveredJSON: jsonStr,
			Status:        StatusParseSuccess,
		}, nil
	}

	source := jsonStr
	if source == "" {
		source = text
	}
	rec, err := FallbackExtract(source)
	if err != nil {
		return Result{RecoveredJSON: jsonStr, Status: StatusParseError},
			fmt.Errorf("structural decode failed: %w", err)
	}

	return Result{
		Record:        rec,
		RecoveredJSON: jsonStr,
		Status:        StatusParseFallback,
		DecodeErr:     decodeErr,
	}, nil
}
