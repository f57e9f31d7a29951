/*
Package types defines the event record produced by an analysis, the page
signals an analysis consumes, and the raw model response that sits between
the two.
*/
package types

// Finish reasons reported by the model caller. A SAFETY finish is fatal for
// the analysis; MAX_TOKENS tells the recovery parser to expect truncation.
const (
	FinishReasonStop      = "STOP"
	FinishReasonMaxTokens = "MAX_TOKENS"
	FinishReasonSafety    = "SAFETY"
)

// ModelResponse is the raw output of a single model call. Text is consumed
// exactly once by the recovery parser and never persisted.
type ModelResponse struct {
	Text         string
	FinishReason string
}

// DefaultEventName is used when no source supplies an event name.
const DefaultEventName = "Unknown Event"

// EventRecord is the canonical output of one page analysis.
type EventRecord struct {
	EventName          string           `json:"eventName"`
	Date               string           `json:"date,omitempty"`
	StartDate          string           `json:"startDate,omitempty"`
	EndDate            string           `json:"endDate,omitempty"`
	Location           string           `json:"location,omitempty"`
	Description        string           `json:"description,omitempty"`
	EstimatedAttendees int              `json:"estimatedAttendees,omitempty"`
	People             []Person         `json:"people"`
	Sponsors           []Sponsor        `json:"sponsors"`
	ExpectedPersonas   []Persona        `json:"expectedPersonas"`
	NextBestActions    []NextBestAction `json:"nextBestActions"`
	RelatedEvents      []RelatedEvent   `json:"relatedEvents"`
}

// Person is one attendee roster entry.
type Person struct {
	Name            string `json:"name"`
	Role            string `json:"role,omitempty"`
	Title           string `json:"title,omitempty"`
	Company         string `json:"company,omitempty"`
	Persona         string `json:"persona,omitempty"`
	LinkedIn        string `json:"linkedin,omitempty"`
	LinkedInMessage string `json:"linkedinMessage,omitempty"`
	IceBreaker      string `json:"iceBreaker,omitempty"`
}

type Sponsor struct {
	Name string `json:"name"`
	Tier string `json:"tier,omitempty"`
}

// Persona is an expected-attendee bucket with generated outreach text.
type Persona struct {
	Persona              string   `json:"persona"`
	Likelihood           string   `json:"likelihood,omitempty"`
	Count                string   `json:"count,omitempty"`
	LinkedInMessage      string   `json:"linkedinMessage,omitempty"`
	IceBreaker           string   `json:"iceBreaker,omitempty"`
	ConversationStarters []string `json:"conversationStarters,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	PainPoints           []string `json:"painPoints,omitempty"`
}

type NextBestAction struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Reason   string `json:"reason,omitempty"`
}

// RelatedEvent is only ever passed through from model output; the URL must
// have been observed on the page, never synthesized.
type RelatedEvent struct {
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Date      string `json:"date,omitempty"`
	Relevance string `json:"relevance,omitempty"`
}

// PageSignals is everything independently scraped from the page. It is
// read-only for the duration of one reconciliation.
type PageSignals struct {
	URL               string            `json:"url"`
	Title             string            `json:"title"`
	Meta              map[string]string `json:"meta,omitempty"`
	StructuredData    []map[string]any  `json:"structuredData,omitempty"`
	MainText          string            `json:"mainText,omitempty"`
	SessionBlocks     []SessionBlock    `json:"sessionBlocks,omitempty"`
	SpeakerDirectory  []SpeakerEntry    `json:"speakerDirectory,omitempty"`
	SponsorCandidates []string          `json:"sponsorCandidates,omitempty"`
}

// SessionBlock is one agenda entry harvested from the page.
type SessionBlock struct {
	Title        string `json:"title"`
	Time         string `json:"time,omitempty"`
	SpeakersText string `json:"speakersText,omitempty"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description,omitempty"`
}

// SpeakerEntry is one speaker-directory candidate harvested from the page.
type SpeakerEntry struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl,omitempty"`
	Context    string `json:"context,omitempty"`
}
