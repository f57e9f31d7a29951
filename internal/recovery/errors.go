package recovery

import "errors"

var (
	// ErrStructuralDecode means no complete structure could be produced and
	// closer synthesis still failed to decode. Callers escalate to the
	// fallback field extractor.
	ErrStructuralDecode = errors.New("model output has no decodable structure")

	// ErrNoUsableSignal means the fallback extractor found none of the
	// recognizable event fields. Fatal for the analysis.
	ErrNoUsableSignal = errors.New("no usable event fields in model output")

	// ErrBlockedBySafety means the model finished with a SAFETY reason.
	// Fatal for the analysis, no recovery attempted.
	ErrBlockedBySafety = errors.New("model response blocked by safety filters")
)
