package recovery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// FallbackExtract pulls a minimal set of known fields straight out of raw
// text with per-field pattern matching. It is the last line of defense when
// the recovered document still fails to decode; each field is independent,
// so one garbled field never blocks another.
func FallbackExtract(text string) (types.EventRecord, error) {
	rec := types.EventRecord{
		EventName:          readStringField(text, "eventName"),
		Date:               readStringField(text, "date"),
		StartDate:          readStringField(text, "startDate"),
		EndDate:            readStringField(text, "endDate"),
		Location:           readStringField(text, "location"),
		Description:        readStringField(text, "description"),
		EstimatedAttendees: readNumberField(text, "estimatedAttendees"),
	}

	if rec.EventName == "" && rec.Date == "" && rec.Location == "" && rec.Description == "" {
		return types.EventRecord{}, fmt.Errorf("fallback extraction: %w", ErrNoUsableSignal)
	}

	if rec.EventName == "" {
		rec.EventName = types.DefaultEventName
	}
	return rec, nil
}

func readStringField(text, key string) string {
	re := regexp.MustCompile(`(?s)"` + key + `"\s*:\s*"(.*?)"`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.ReplaceAll(m[1], `\n`, " ")
	v = strings.ReplaceAll(v, `\"`, `"`)
	return strings.TrimSpace(v)
}

func readNumberField(text, key string) int {
	re := regexp.MustCompile(`"` + key + `"\s*:\s*(\d+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
